package item

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

const collectionName = "items"

type itemDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
}

func (d *itemDocument) toDomain() *domain.Item {
	return &domain.Item{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates an item repository backed by the "items"
// collection of db.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		collection: db.Collection(collectionName),
	}
}

func (r *mongoRepository) Create(ctx context.Context, item *domain.Item) error {
	doc := itemDocument{
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	item.ID = oid.Hex()

	return nil
}

func (r *mongoRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	// An id that is no valid ObjectID cannot match any stored document, so it
	// reports the same way a missing id does. The memory implementation
	// answers identically.
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	var doc itemDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *mongoRepository) Update(
	ctx context.Context,
	id string,
	update *domain.ItemUpdate,
) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if len(set) == 0 {
		return r.Get(ctx, id)
	}

	var doc itemDocument
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	var doc itemDocument
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete item: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *mongoRepository) List(ctx context.Context) ([]*domain.Item, error) {
	// ObjectIDs are time-ordered, so sorting by _id keeps insertion order.
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]*domain.Item, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toDomain())
	}

	return items, nil
}
