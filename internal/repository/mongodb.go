// Package repository stores the container catalog and the request log in
// MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	containersCollection = "containers"
	logsCollection       = "logs"
)

// MongoConfig tunes the client connection pool.
type MongoConfig struct {
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
	// ServerSelectionTimeout bounds every operation while no server is
	// reachable, which is what trips the circuit breakers.
	ServerSelectionTimeout time.Duration
	// Compressors are offered in order; an empty list disables compression.
	Compressors []string
}

// DefaultMongoConfig suits a single service instance. Simulation traffic
// only reads the catalog on cache misses, so the pool stays small.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            20,
		MinPoolSize:            2,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		Compressors:            []string{"zstd", "snappy"},
	}
}

func (cfg MongoConfig) clientOptions(uri string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName("loadsim").
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(5 * time.Minute).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetRetryReads(true).
		SetRetryWrites(true)
	if len(cfg.Compressors) > 0 {
		opts.SetCompressors(cfg.Compressors)
	}
	return opts
}

// MongoDB holds the client and the two collections the service uses.
type MongoDB struct {
	Client     *mongo.Client
	Database   *mongo.Database
	Containers *mongo.Collection
	Logs       *mongo.Collection
}

func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and ensures the indexes exist. The
// client is disconnected again when any of those steps fails.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:     client,
		Database:   db,
		Containers: db.Collection(containersCollection),
		Logs:       db.Collection(logsCollection),
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	if err := m.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

// logIndexes back the lookups exposed by LogQueryOptions. The TTL index on
// timestamp is owned by SetLogsTTL.
var logIndexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "request_id", Value: 1}}},
	{Keys: bson.D{{Key: "simulation_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	{Keys: bson.D{{Key: "container", Value: 1}, {Key: "timestamp", Value: -1}}},
	{Keys: bson.D{{Key: "action_type", Value: 1}, {Key: "timestamp", Value: -1}}},
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	codeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := m.Containers.Indexes().CreateOne(ctx, codeIndex); err != nil {
		return fmt.Errorf("containers index: %w", err)
	}
	if _, err := m.Logs.Indexes().CreateMany(ctx, logIndexes); err != nil {
		return fmt.Errorf("logs indexes: %w", err)
	}
	return nil
}

// Server codes for an index that already exists with different options.
const (
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

// SetLogsTTL (re)creates the expiry index on the log timestamp so entries
// older than ttl are removed by the server.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	seconds := int32(ttl / time.Second)
	if seconds <= 0 {
		return fmt.Errorf("logs ttl must be at least one second, got %s", ttl)
	}

	// A previous TTL cannot be altered in place.
	_, _ = m.Logs.Indexes().DropOne(ctx, "timestamp_1")

	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(seconds),
	})
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.Code == codeIndexOptionsConflict || cmdErr.Code == codeIndexKeySpecsConflict) {
		return nil
	}
	return err
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary with a two second budget.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
