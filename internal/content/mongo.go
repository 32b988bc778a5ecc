package content

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements Repository on a MongoDB collection. Documents
// use a string _id (ObjectID hex) so ids travel unchanged through JSON.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	// index active-document lookups; deliberately NOT a unique partial index,
	// the single-active invariant stays soft (see Store.CreateVersion)
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: FieldIsActive, Value: 1}, {Key: FieldCreatedAt, Value: -1}}}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepository{col: col}
}

func (r *MongoRepository) GetActive(ctx context.Context) (Document, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: FieldCreatedAt, Value: -1}})
	var doc Document
	if err := r.col.FindOne(ctx, bson.M{FieldIsActive: true}, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Document, error) {
	var doc Document
	if err := r.col.FindOne(ctx, bson.M{FieldID: id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (r *MongoRepository) Insert(ctx context.Context, doc Document) (Document, error) {
	d := cloneDocument(doc)
	d[FieldID] = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	d[FieldCreatedAt] = now
	d[FieldUpdatedAt] = now
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *MongoRepository) DeactivateAll(ctx context.Context) error {
	_, err := r.col.UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{FieldIsActive: false}})
	return err
}

func (r *MongoRepository) UpdateByID(ctx context.Context, id string, set Document) (Document, error) {
	s := cloneDocument(set)
	s[FieldUpdatedAt] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc Document
	if err := r.col.FindOneAndUpdate(ctx, bson.M{FieldID: id}, bson.M{"$set": bson.M(s)}, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
