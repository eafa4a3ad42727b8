package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/muthuvelan/orderdeskbackend/apperr"
)

// MongoStore maps tables to collections and the equality predicate to a
// plain filter document. Rows keep the same flattened field names as the
// file driver, so the two are interchangeable behind the Store interface.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (ms *MongoStore) CreateTable(ctx context.Context, table string) error {
	// Collections spring into existence on first insert; nothing to do.
	return nil
}

func (ms *MongoStore) ReadTable(ctx context.Context, table string) ([]Row, error) {
	cursor, err := ms.db.Collection(table).Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Persistence("read", table, err)
	}
	defer cursor.Close(ctx)

	rows := make([]Row, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperr.Persistence("read", table, err)
		}
		delete(doc, "_id")
		rows = append(rows, Row(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Persistence("read", table, err)
	}
	return rows, nil
}

func (ms *MongoStore) InsertRow(ctx context.Context, table string, row Row) error {
	if _, err := ms.db.Collection(table).InsertOne(ctx, bson.M(row)); err != nil {
		return apperr.Persistence("insert", table, err)
	}
	return nil
}

func (ms *MongoStore) UpdateRows(ctx context.Context, table string, where Row, patch Row) (int64, error) {
	res, err := ms.db.Collection(table).UpdateMany(ctx, bson.M(where), bson.M{"$set": bson.M(patch)})
	if err != nil {
		return 0, apperr.Persistence("update", table, err)
	}
	return res.MatchedCount, nil
}

func (ms *MongoStore) DeleteRows(ctx context.Context, table string, where Row) (int64, error) {
	res, err := ms.db.Collection(table).DeleteMany(ctx, bson.M(where))
	if err != nil {
		return 0, apperr.Persistence("delete", table, err)
	}
	return res.DeletedCount, nil
}
