package domain

// Item is a catalog entry owned by the item service. The ID is assigned by
// the store on create and is opaque to callers.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ItemUpdate carries a partial update. Nil fields are left untouched.
type ItemUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}
