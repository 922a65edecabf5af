package domain

// Order is owned by the order service. No relationship to Item is modeled;
// productName is free text. Quantity is a float64 so any JSON number on the
// wire round-trips unchanged; callers are not held to whole units.
type Order struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	TotalPrice  float64 `json:"totalPrice"`
}

// OrderUpdate carries a partial update. Nil fields are left untouched.
type OrderUpdate struct {
	ProductName *string  `json:"productName"`
	Quantity    *float64 `json:"quantity"`
	TotalPrice  *float64 `json:"totalPrice"`
}
