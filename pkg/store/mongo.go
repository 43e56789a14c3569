package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	moltexterrors "github.com/moltext/moltext/pkg/errors"
	"github.com/moltext/moltext/pkg/observability"
)

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	// URI is the MongoDB connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database is the database name. Defaults to "moltext".
	Database string

	// Collection is the collection name. Defaults to "molecules".
	Collection string
}

// MongoStore is a MongoDB-backed molecule library for server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and prepares the library collection.
// The connection is verified with a ping before returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "moltext"
	}
	if cfg.Collection == "" {
		cfg.Collection = "molecules"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, moltexterrors.Wrap(moltexterrors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, moltexterrors.Wrap(moltexterrors.ErrCodeStore, err, "ping mongodb")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, idx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, moltexterrors.Wrap(moltexterrors.ErrCodeStore, err, "create name index")
	}

	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	return s.findOne(ctx, bson.M{"_id": id}, id)
}

func (s *MongoStore) GetByName(ctx context.Context, name string) (*Record, error) {
	return s.findOne(ctx, bson.M{"name": name}, name)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, key string) (*Record, error) {
	start := time.Now()
	var rec Record
	err := s.coll.FindOne(ctx, filter).Decode(&rec)
	observability.Store().OnQuery(ctx, "mongo", "get", time.Since(start))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(key)
		}
		observability.Store().OnError(ctx, "mongo", "get", err)
		return nil, moltexterrors.Wrap(moltexterrors.ErrCodeStore, err, "find record %s", key)
	}
	return &rec, nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Record, error) {
	start := time.Now()
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		observability.Store().OnError(ctx, "mongo", "list", err)
		return nil, moltexterrors.Wrap(moltexterrors.ErrCodeStore, err, "list records")
	}
	defer cur.Close(ctx)

	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		observability.Store().OnError(ctx, "mongo", "list", err)
		return nil, moltexterrors.Wrap(moltexterrors.ErrCodeStore, err, "decode records")
	}
	observability.Store().OnQuery(ctx, "mongo", "list", time.Since(start))
	return out, nil
}

func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	if err := moltexterrors.ValidateMoleculeName(rec.Name); err != nil {
		return err
	}

	stamp(rec)
	start := time.Now()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		observability.Store().OnError(ctx, "mongo", "put", err)
		return moltexterrors.Wrap(moltexterrors.ErrCodeStore, err, "store record %s", rec.Name)
	}
	observability.Store().OnWrite(ctx, "mongo", "put", time.Since(start))
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		observability.Store().OnError(ctx, "mongo", "delete", err)
		return moltexterrors.Wrap(moltexterrors.ErrCodeStore, err, "delete record %s", id)
	}
	observability.Store().OnWrite(ctx, "mongo", "delete", time.Since(start))
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
