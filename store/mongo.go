// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/katalvlaran/lvfst/fst"
)

// MongoStore keeps one document per key.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a store over a collection of client. dbName
// defaults to "lvfst" and collName to "automata".
func NewMongoStore(client *mongo.Client, dbName, collName string) *MongoStore {
	if dbName == "" {
		dbName = "lvfst"
	}
	if collName == "" {
		collName = "automata"
	}
	return &MongoStore{coll: client.Database(dbName).Collection(collName)}
}

type mongoFstDoc struct {
	Key      string `bson:"_id"`
	Semiring string `bson:"semiring"`
	States   int    `bson:"states"`
	Arcs     int    `bson:"arcs"`
	Data     []byte `bson:"data"`
}

// Save upserts the key's document.
func (s *MongoStore) Save(ctx context.Context, key string, f *fst.Fst) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := encode(f)
	if err != nil {
		return err
	}
	doc := mongoFstDoc{
		Key:      key,
		Semiring: f.Semiring().String(),
		States:   f.NumStates(),
		Arcs:     f.TotalArcs(),
		Data:     data,
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

// Load finds the key's document.
func (s *MongoStore) Load(ctx context.Context, key string) (*fst.Fst, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	var doc mongoFstDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, err
	}
	return decode(doc.Data)
}

// Delete removes the key's document.
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound(key)
	}
	return nil
}
