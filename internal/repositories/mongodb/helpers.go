package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// updateOne runs an update and reports mongo.ErrNoDocuments when nothing matched
func updateOne(ctx context.Context, coll *mongo.Collection, filter, update bson.M) error {
	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func pageSkip(page, limit int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * limit)
}

// fieldUpdate builds a $set/$unset update. Empty values are unset so that
// clearing an omitempty field reaches the store.
type fieldUpdate struct {
	set   bson.M
	unset bson.M
}

func newFieldUpdate() *fieldUpdate {
	return &fieldUpdate{set: bson.M{}, unset: bson.M{}}
}

func (u *fieldUpdate) Set(key string, value interface{}) *fieldUpdate {
	u.set[key] = value
	return u
}

// SetOrUnset writes value, or removes key when empty is true
func (u *fieldUpdate) SetOrUnset(key string, value interface{}, empty bool) *fieldUpdate {
	if empty {
		u.unset[key] = ""
		return u
	}
	return u.Set(key, value)
}

func (u *fieldUpdate) Doc() bson.M {
	doc := bson.M{}
	if len(u.set) > 0 {
		doc["$set"] = u.set
	}
	if len(u.unset) > 0 {
		doc["$unset"] = u.unset
	}
	return doc
}
