package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	perrors "github.com/matzehuels/procview/pkg/errors"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "procview"
	DefaultMongoCollection = "documents"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string
	Database   string // defaults to DefaultMongoDatabase
	Collection string // defaults to DefaultMongoCollection
}

// MongoStore keeps one BSON document per record, keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "mongo uri")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, perrors.Wrap(perrors.ErrCodeNetwork, err, "connect to mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get finds the record whose _id is id.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := perrors.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeNetwork, err, "mongo find %s", id)
	}
	return &rec, nil
}

// Put upserts rec by _id.
func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	if err := prepare(rec); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeNetwork, err, "mongo replace %s", rec.ID)
	}
	return nil
}

// Delete removes the record for id. Deleting a missing id is not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := perrors.ValidateDocumentID(id); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return perrors.Wrap(perrors.ErrCodeNetwork, err, "mongo delete %s", id)
	}
	return nil
}

// List returns all records sorted by updated_at descending, then _id.
func (s *MongoStore) List(ctx context.Context) ([]*Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeNetwork, err, "mongo find")
	}
	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeNetwork, err, "mongo decode")
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
