package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/squiggle/pkg/cache"
	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "squiggle"
	DefaultMongoCollection = "tokens"
)

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// MongoStore stores one document per token: {_id: tokenID, seed: hex}.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

type tokenDoc struct {
	ID        string    `bson:"_id"`
	Seed      string    `bson:"seed"`
	CreatedAt time.Time `bson:"created_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
// Transient connection failures are retried with backoff.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetTimeout(opts.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "mongo connect")
	}

	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "mongo ping")
	}

	return &MongoStore{
		client:  client,
		coll:    client.Database(opts.Database).Collection(opts.Collection),
		timeout: opts.Timeout,
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, tokenID string) (squiggle.Seed, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc tokenDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": tokenID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return squiggle.Seed{}, notFound(tokenID)
	}
	if err != nil {
		return squiggle.Seed{}, errors.Wrap(errors.ErrCodeStorage, err, "mongo find")
	}
	seed, err := squiggle.ParseSeed(doc.Seed)
	if err != nil {
		return squiggle.Seed{}, errors.Wrap(errors.ErrCodeStorage, err, "stored seed for token %s", tokenID)
	}
	return seed, nil
}

func (s *MongoStore) Put(ctx context.Context, tokenID string, seed squiggle.Seed) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, tokenDoc{
		ID:        tokenID,
		Seed:      seed.String(),
		CreatedAt: time.Now().UTC(),
	})
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "mongo insert")
	}

	existing, gerr := s.Get(ctx, tokenID)
	if gerr != nil {
		return gerr
	}
	if existing != seed {
		return conflict(tokenID)
	}
	return nil
}

func (s *MongoStore) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeStorage, err, "mongo count")
	}
	return int(n), nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
