package order

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-shop-microservices/internal/domain"
)

const collectionName = "orders"

type orderDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ProductName string             `bson:"productName"`
	Quantity    float64            `bson:"quantity"`
	TotalPrice  float64            `bson:"totalPrice"`
}

func (d *orderDocument) toDomain() *domain.Order {
	return &domain.Order{
		ID:          d.ID.Hex(),
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		TotalPrice:  d.TotalPrice,
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates an order repository backed by the "orders"
// collection of db.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		collection: db.Collection(collectionName),
	}
}

func (r *mongoRepository) Create(ctx context.Context, order *domain.Order) error {
	doc := orderDocument{
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
		TotalPrice:  order.TotalPrice,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	order.ID = oid.Hex()

	return nil
}

func (r *mongoRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	// An id that is no valid ObjectID cannot match any stored document, so it
	// reports the same way a missing id does. The memory implementation
	// answers identically.
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var doc orderDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *mongoRepository) Update(
	ctx context.Context,
	id string,
	update *domain.OrderUpdate,
) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	set := bson.M{}
	if update.ProductName != nil {
		set["productName"] = *update.ProductName
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.TotalPrice != nil {
		set["totalPrice"] = *update.TotalPrice
	}
	if len(set) == 0 {
		return r.Get(ctx, id)
	}

	var doc orderDocument
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var doc orderDocument
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete order: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *mongoRepository) List(ctx context.Context) ([]*domain.Order, error) {
	// ObjectIDs are time-ordered, so sorting by _id keeps insertion order.
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].toDomain())
	}

	return orders, nil
}
