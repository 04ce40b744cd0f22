//go:build !integration

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

func TestLogFilter(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name string
		opts model.LogQueryOptions
		want bson.M
	}{
		{
			name: "empty options match everything",
			want: bson.M{},
		},
		{
			name: "simulation lookup",
			opts: model.LogQueryOptions{SimulationID: "0b6f", Container: "40hc"},
			want: bson.M{"simulation_id": "0b6f", "container": "40hc"},
		},
		{
			name: "audit by actor",
			opts: model.LogQueryOptions{Actor: "ab12****", ActionType: "container_upsert", Level: "info"},
			want: bson.M{"actor": "ab12****", "action_type": "container_upsert", "level": "info"},
		},
		{
			name: "path is a quoted case-insensitive regex",
			opts: model.LogQueryOptions{Method: "GET", Path: "/api/simulations/export.pdf"},
			want: bson.M{
				"method": "GET",
				"path":   bson.M{"$regex": `/api/simulations/export\.pdf`, "$options": "i"},
			},
		},
		{
			name: "open ended time window",
			opts: model.LogQueryOptions{StartTime: &start},
			want: bson.M{"timestamp": bson.M{"$gte": start}},
		},
		{
			name: "closed time window",
			opts: model.LogQueryOptions{RequestID: "req-9", StartTime: &start, EndTime: &end},
			want: bson.M{"request_id": "req-9", "timestamp": bson.M{"$gte": start, "$lte": end}},
		},
		{
			name: "paging does not filter",
			opts: model.LogQueryOptions{Limit: 10, Skip: 20},
			want: bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logFilter(tt.opts))
		})
	}
}
