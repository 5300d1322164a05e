package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store, CounterStore and SearchStore over one MongoDB collection
type MongoStore[T any] struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoStore creates a store for the named collection
func NewMongoStore[T any](db *mongo.Database, collection string) *MongoStore[T] {
	return &MongoStore[T]{collection: db.Collection(collection), now: time.Now}
}

// List returns the documents matching the filter, newest first unless OldestFirst is set
func (r *MongoStore[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	order := -1
	if opts.OldestFirst {
		order = 1
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: order}, {Key: "_id", Value: order}})
	if opts.Limit > 0 {
		findOptions.SetSkip(opts.Skip).SetLimit(opts.Limit)
	}

	cursor, err := r.collection.Find(ctx, toBSON(opts.Filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindOne returns the first document matching the filter
func (r *MongoStore[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var doc T
	err := r.collection.FindOne(ctx, toBSON(filter)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// GetByID retrieves a document by its hex id. A malformed id is reported as not found.
func (r *MongoStore[T]) GetByID(ctx context.Context, id string) (*T, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.FindOne(ctx, Filter{"_id": objID})
}

// Create stamps the document with an id and timestamps and inserts it
func (r *MongoStore[T]) Create(ctx context.Context, doc *T) error {
	if s, ok := any(doc).(models.Stampable); ok {
		s.Stamp(r.now())
	}
	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// Update sets the given fields, refreshes updated_at and returns the new version
func (r *MongoStore[T]) Update(ctx context.Context, id string, fields Fields) (*T, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": r.setDocument(fields)}, opts).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, ErrDuplicate
	case err != nil:
		return nil, err
	}
	return &doc, nil
}

// UpdateWhere sets the given fields on every matching document
func (r *MongoStore[T]) UpdateWhere(ctx context.Context, filter Filter, fields Fields) (int64, error) {
	res, err := r.collection.UpdateMany(ctx, toBSON(filter), bson.M{"$set": r.setDocument(fields)})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes a document and returns what was removed
func (r *MongoStore[T]) Delete(ctx context.Context, id string) (*T, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc T
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// DeleteKeys removes every document whose id is in keys
func (r *MongoStore[T]) DeleteKeys(ctx context.Context, keys []string) (int64, error) {
	ids := make(bson.A, 0, len(keys))
	for _, key := range keys {
		if objID, err := primitive.ObjectIDFromHex(key); err == nil {
			ids = append(ids, objID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Restore re-inserts previously removed documents with their original ids
func (r *MongoStore[T]) Restore(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	items := make([]interface{}, len(docs))
	for i := range docs {
		items[i] = docs[i]
	}
	_, err := r.collection.InsertMany(ctx, items, options.InsertMany().SetOrdered(false))
	if mongo.IsDuplicateKeyError(err) {
		// already present
		return nil
	}
	return err
}

// Count returns the number of documents matching the filter
func (r *MongoStore[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	return r.collection.CountDocuments(ctx, toBSON(filter))
}

// Increment atomically adds delta to a counter field
func (r *MongoStore[T]) Increment(ctx context.Context, id string, field string, delta int) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}

	filter := bson.M{"_id": objID}
	if delta < 0 {
		filter[field] = bson.M{"$gte": -delta}
	}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 && delta > 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

// Search matches query as a case-insensitive literal substring of any of the fields
func (r *MongoStore[T]) Search(ctx context.Context, query string, fields ...string) ([]T, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	clauses := make(bson.A, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, bson.M{field: pattern})
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"$or": clauses}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *MongoStore[T]) setDocument(fields Fields) bson.M {
	set := bson.M{"updated_at": r.now()}
	for key, value := range fields {
		set[key] = value
	}
	return set
}

func toBSON(filter Filter) bson.M {
	out := bson.M{}
	for key, value := range filter {
		switch v := value.(type) {
		case In:
			out[key] = bson.M{"$in": append(bson.A{}, v...)}
		case []Filter:
			clauses := make(bson.A, 0, len(v))
			for _, clause := range v {
				clauses = append(clauses, toBSON(clause))
			}
			out[key] = clauses
		default:
			out[key] = v
		}
	}
	return out
}
