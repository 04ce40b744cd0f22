package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// LogEntryDocument is a request or audit log as stored in the logs collection.
type LogEntryDocument struct {
	model.LogEntry `bson:",inline"`
}

// LogsRepository stores request and audit logs.
type LogsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs, now: time.Now}
}

// Create inserts one document, assigning an ID and timestamp when missing.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	entry.Stamp(r.now())
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts documents in one unordered bulk write.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	now := r.now()
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		entry.Stamp(now)
		docs[i] = entry
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns matching documents, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]*LogEntryDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, logFilter(opts), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := []*LogEntryDocument{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of matching documents.
func (r *LogsRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, logFilter(opts))
}

func logFilter(opts model.LogQueryOptions) bson.M {
	filter := bson.M{}
	exact := []struct {
		field, value string
	}{
		{"request_id", opts.RequestID},
		{"simulation_id", opts.SimulationID},
		{"container", opts.Container},
		{"actor", opts.Actor},
		{"level", opts.Level},
		{"action_type", opts.ActionType},
		{"method", opts.Method},
	}
	for _, f := range exact {
		if f.value != "" {
			filter[f.field] = f.value
		}
	}

	if opts.Path != "" {
		filter["path"] = bson.M{"$regex": regexp.QuoteMeta(opts.Path), "$options": "i"}
	}

	if opts.StartTime != nil || opts.EndTime != nil {
		window := bson.M{}
		if opts.StartTime != nil {
			window["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			window["$lte"] = *opts.EndTime
		}
		filter["timestamp"] = window
	}
	return filter
}
