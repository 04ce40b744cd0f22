//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hyperkh65/loadsim/internal/circuitbreaker"
	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/testutil"
)

func logDoc(entry model.LogEntry) *LogEntryDocument {
	return &LogEntryDocument{LogEntry: entry}
}

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)

	fixed := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := NewLogsRepository(db)
	repo.now = func() time.Time { return fixed }

	t.Run("create stamps missing id and timestamp", func(t *testing.T) {
		doc := logDoc(model.LogEntry{
			Level:        "info",
			Message:      "HTTP request",
			RequestID:    "req-20ft",
			Method:       "POST",
			Path:         "/api/simulations",
			StatusCode:   201,
			Duration:     4,
			SimulationID: "sim-20ft",
			Container:    "20ft",
		})
		require.NoError(t, repo.Create(ctx, doc))
		assert.False(t, doc.ID.IsZero())
		assert.Equal(t, fixed, doc.Timestamp)
	})

	t.Run("create many", func(t *testing.T) {
		require.NoError(t, repo.CreateMany(ctx, nil))
		require.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{
			logDoc(model.LogEntry{Level: "warn", Message: "HTTP request", Path: "/api/simulations", StatusCode: 422, Timestamp: fixed.Add(-time.Hour)}),
			logDoc(model.LogEntry{Level: "info", Message: "Container stored", ActionType: "container_upsert", Actor: "ab12****", Container: "20rf", Timestamp: fixed.Add(time.Minute)}),
		}))
	})

	t.Run("query by simulation id round trips the entry", func(t *testing.T) {
		docs, err := repo.Query(ctx, model.LogQueryOptions{SimulationID: "sim-20ft"})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "20ft", docs[0].Container)
		assert.Equal(t, 201, docs[0].StatusCode)
		assert.True(t, docs[0].Timestamp.Equal(fixed))
	})

	t.Run("newest first with paging", func(t *testing.T) {
		docs, err := repo.Query(ctx, model.LogQueryOptions{Limit: 2})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "container_upsert", docs[0].ActionType)
		assert.Equal(t, "sim-20ft", docs[1].SimulationID)

		docs, err = repo.Query(ctx, model.LogQueryOptions{Skip: 2})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, 422, docs[0].StatusCode)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		docs, err := repo.Query(ctx, model.LogQueryOptions{Container: "53ft"})
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("count", func(t *testing.T) {
		since := fixed.Add(-time.Minute)
		tests := []struct {
			opts model.LogQueryOptions
			want int64
		}{
			{opts: model.LogQueryOptions{}, want: 3},
			{opts: model.LogQueryOptions{Level: "info"}, want: 2},
			{opts: model.LogQueryOptions{Actor: "ab12****"}, want: 1},
			{opts: model.LogQueryOptions{StartTime: &since}, want: 2},
		}
		for _, tt := range tests {
			n, err := repo.Count(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n, "%+v", tt.opts)
		}
	})

	t.Run("duplicate id in a batch still stores the rest", func(t *testing.T) {
		id := primitive.NewObjectID()
		err := repo.CreateMany(ctx, []*LogEntryDocument{
			logDoc(model.LogEntry{ID: id, Level: "info", RequestID: "dup"}),
			logDoc(model.LogEntry{ID: id, Level: "info", RequestID: "dup"}),
			logDoc(model.LogEntry{Level: "info", RequestID: "dup"}),
		})
		assert.Error(t, err)

		n, err := repo.Count(ctx, model.LogQueryOptions{RequestID: "dup"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)

	cb := circuitbreaker.New(circuitbreaker.Config{
		Name:             "logs-it",
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
	})
	wrapped := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, wrapped.Create(ctx, logDoc(model.LogEntry{Level: "info", SimulationID: "sim-cb"})))
	docs, err := wrapped.Query(ctx, model.LogQueryOptions{SimulationID: "sim-cb"})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "closed", cb.GetStats().State)

	// A disconnected client fails the read and trips the breaker; later
	// writes are dropped without reaching the database.
	closed, err := NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	require.NoError(t, closed.Close(ctx))
	wrapped = NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(closed), cb)

	_, err = wrapped.Count(ctx, model.LogQueryOptions{})
	require.Error(t, err)
	require.True(t, cb.IsOpen())

	require.NoError(t, wrapped.Create(ctx, logDoc(model.LogEntry{Level: "info", SimulationID: "sim-cb"})))
	_, err = wrapped.Query(ctx, model.LogQueryOptions{})
	assert.True(t, errors.Is(err, circuitbreaker.ErrCircuitOpen))
}
