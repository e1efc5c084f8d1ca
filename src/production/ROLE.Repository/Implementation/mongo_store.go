package implementation

import (
	"context"
	"fmt"
	"time"

	interfaces "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Repository/Interfaces"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoWriteTimeout = 5 * time.Second
	mongoReadTimeout  = 10 * time.Second
)

// MongoStore implements the document store contract on top of MongoDB.
// Documents are keyed by ObjectID; the key is stripped from data on read
// and exposed as Document.ID.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Add(ctx context.Context, collection string, data map[string]any) (interfaces.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(data))
	if err != nil {
		return interfaces.Document{}, fmt.Errorf("insert into %s: %w", collection, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return interfaces.Document{}, fmt.Errorf("insert into %s: unexpected id type %T", collection, res.InsertedID)
	}

	// Re-read the written snapshot: the store, not the local echo, is the
	// source of truth for computed fields.
	doc, found, err := s.Get(ctx, collection, oid.Hex())
	if err != nil {
		return interfaces.Document{}, err
	}
	if !found {
		return interfaces.Document{}, fmt.Errorf("read back %s/%s: document missing after insert", collection, oid.Hex())
	}
	return doc, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (interfaces.Document, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a document; absence is ordinary.
		return interfaces.Document{}, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, mongoReadTimeout)
	defer cancel()

	var raw bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return interfaces.Document{}, false, nil
	}
	if err != nil {
		return interfaces.Document{}, false, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	delete(raw, "_id")
	return interfaces.Document{ID: id, Data: fromBSONMap(raw)}, true, nil
}

func (s *MongoStore) RunQuery(ctx context.Context, q interfaces.Query) ([]interfaces.Document, error) {
	filter := bson.M{}
	for _, f := range q.Filters() {
		addCondition(filter, f.Field, f.Op, f.Value)
	}

	opts := options.Find()
	sort, hasSort := q.SortKey()
	if hasSort {
		dir := 1
		if sort.Direction == interfaces.Descending {
			dir = -1
		}
		// _id tiebreak keeps cursor resumption deterministic for equal
		// sort-field values.
		opts.SetSort(bson.D{{Key: sort.Field, Value: dir}, {Key: "_id", Value: dir}})
	}

	filter = applyCursor(filter, q, sort, hasSort)

	if q.LimitValue() > 0 {
		opts.SetLimit(int64(q.LimitValue()))
	}
	if q.OffsetValue() > 0 {
		opts.SetSkip(int64(q.OffsetValue()))
	}

	ctx, cancel := context.WithTimeout(ctx, mongoReadTimeout)
	defer cancel()

	cur, err := s.db.Collection(q.Collection()).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection(), err)
	}
	defer cur.Close(ctx)

	var docs []interfaces.Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("query %s: decode: %w", q.Collection(), err)
		}
		id := ""
		if oid, ok := raw["_id"].(primitive.ObjectID); ok {
			id = oid.Hex()
		}
		delete(raw, "_id")
		docs = append(docs, interfaces.Document{ID: id, Data: fromBSONMap(raw)})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection(), err)
	}
	return docs, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	_, err = s.db.Collection(collection).UpdateByID(ctx, oid, bson.M{"$set": bson.M(partial)})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, mongoWriteTimeout)
	defer cancel()

	_, err = s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// applyCursor translates "resume strictly after" cursors into range
// conditions on the sort field, with an _id tiebreak for document cursors.
func applyCursor(filter bson.M, q interfaces.Query, sort interfaces.Sort, hasSort bool) bson.M {
	strictOp := "$gt"
	if hasSort && sort.Direction == interfaces.Descending {
		strictOp = "$lt"
	}

	if doc, ok := q.AfterDocument(); ok {
		if !hasSort {
			if oid, err := primitive.ObjectIDFromHex(doc.ID); err == nil {
				addRawCondition(filter, "_id", strictOp, oid)
			}
			return filter
		}
		value := doc.Data[sort.Field]
		or := []bson.M{{sort.Field: bson.M{strictOp: value}}}
		if oid, err := primitive.ObjectIDFromHex(doc.ID); err == nil {
			or = append(or, bson.M{sort.Field: value, "_id": bson.M{strictOp: oid}})
		}
		if len(filter) == 0 {
			return bson.M{"$or": or}
		}
		return bson.M{"$and": []bson.M{filter, {"$or": or}}}
	}

	if value, ok := q.AfterValue(); ok && hasSort {
		addRawCondition(filter, sort.Field, strictOp, value)
	}
	return filter
}

func addCondition(filter bson.M, field string, op interfaces.Op, value any) {
	switch op {
	case interfaces.OpEqual:
		filter[field] = value
	case interfaces.OpGreaterOrEqual:
		addRawCondition(filter, field, "$gte", value)
	case interfaces.OpLessOrEqual:
		addRawCondition(filter, field, "$lte", value)
	}
}

// addRawCondition merges an operator condition into the filter, keeping any
// condition already present on the same field (e.g. $gte and $lte together).
func addRawCondition(filter bson.M, field, mongoOp string, value any) {
	sub, ok := filter[field].(bson.M)
	if !ok {
		sub = bson.M{}
		filter[field] = sub
	}
	sub[mongoOp] = value
}
