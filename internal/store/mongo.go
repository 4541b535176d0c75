package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoCollection adapts a single MongoDB collection to the Store
// interface. It owns the translation between opaque hex identifiers
// and bson.ObjectID, so nothing above this layer sees a native id.
type MongoCollection struct {
	coll *mongo.Collection
}

// NewMongoCollection wraps coll as a Store.
func NewMongoCollection(coll *mongo.Collection) *MongoCollection {
	return &MongoCollection{coll: coll}
}

// FindOne decodes the first matching document into out.
func (m *MongoCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	f, err := toBSON(filter)
	if err != nil {
		return err
	}
	if err := m.coll.FindOne(ctx, f).Decode(out); err != nil {
		return classify(err)
	}
	return nil
}

// Find decodes all matching documents into out, which must be a pointer
// to a slice. Results are ordered by _id so pagination is stable.
func (m *MongoCollection) Find(ctx context.Context, filter Filter, skip, limit int64, out any) error {
	f, err := toBSON(filter)
	if err != nil {
		return err
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if skip > 0 {
		opts = opts.SetSkip(skip)
	}
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := m.coll.Find(ctx, f, opts)
	if err != nil {
		return classify(err)
	}
	if err := cur.All(ctx, out); err != nil {
		return classify(err)
	}
	return nil
}

// InsertOne stores doc and returns the generated id as hex.
func (m *MongoCollection) InsertOne(ctx context.Context, doc any) (string, error) {
	res, err := m.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", classify(err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type %T", ErrUnavailable, res.InsertedID)
	}
	return oid.Hex(), nil
}

// UpdateOne applies a $set of fields to the first matching document.
func (m *MongoCollection) UpdateOne(ctx context.Context, filter Filter, set Fields) (int64, error) {
	f, err := toBSON(filter)
	if err != nil {
		return 0, err
	}
	res, err := m.coll.UpdateOne(ctx, f, bson.M{"$set": bson.M(set)})
	if err != nil {
		return 0, classify(err)
	}
	return res.MatchedCount, nil
}

// DeleteOne removes the first matching document.
func (m *MongoCollection) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	f, err := toBSON(filter)
	if err != nil {
		return 0, err
	}
	res, err := m.coll.DeleteOne(ctx, f)
	if err != nil {
		return 0, classify(err)
	}
	return res.DeletedCount, nil
}

// toBSON converts a Filter to a bson document, marshalling "_id" hex
// strings to ObjectIDs. A malformed hex id cannot match any document,
// so it maps to ErrNoDocuments rather than an internal failure.
func toBSON(filter Filter) (bson.M, error) {
	f := make(bson.M, len(filter))
	for k, v := range filter {
		if k == "_id" {
			hex, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: _id filter must be a string", ErrNoDocuments)
			}
			oid, err := bson.ObjectIDFromHex(hex)
			if err != nil {
				return nil, ErrNoDocuments
			}
			f[k] = oid
			continue
		}
		f[k] = v
	}
	return f, nil
}

// classify maps driver errors onto the store error taxonomy. Anything
// that is neither "no documents" nor a unique-index violation is
// treated as the store being unavailable; callers must never mistake a
// degraded store for an absent record.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case err == mongo.ErrNoDocuments:
		return ErrNoDocuments
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
