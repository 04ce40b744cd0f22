package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log levels stored in LogEntry.Level.
const (
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// LogEntry is an operational log document: one HTTP request or one audited
// catalog change. Simulation results are never stored here; a request that
// produced a simulation only carries its ID and container code.
type LogEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Level     string             `bson:"level" json:"level"`
	Message   string             `bson:"message" json:"message"`

	RequestID  string `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string `bson:"method,omitempty" json:"method,omitempty"`
	Path       string `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string `bson:"error,omitempty" json:"error,omitempty"`

	SimulationID string `bson:"simulation_id,omitempty" json:"simulation_id,omitempty"`
	Container    string `bson:"container,omitempty" json:"container,omitempty"`

	// Actor is the masked API key, or "anonymous".
	Actor      string                 `bson:"actor,omitempty" json:"actor,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"` // "container_upsert"
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// LogLevelForStatus maps an HTTP status code to a stored log level.
func LogLevelForStatus(status int) string {
	switch {
	case status >= 500:
		return LogLevelError
	case status >= 400:
		return LogLevelWarn
	default:
		return LogLevelInfo
	}
}

// Stamp fills in a missing ID and timestamp.
func (e *LogEntry) Stamp(now time.Time) {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
}

// WithField sets one entry in Fields, allocating the map on first use.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields merges fields into Fields.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	for k, v := range fields {
		e.WithField(k, v)
	}
	return e
}

// LogQueryOptions filters stored log entries. Zero values match everything;
// Path is a case-insensitive substring match, the other strings are exact.
type LogQueryOptions struct {
	RequestID    string
	SimulationID string
	Container    string
	Actor        string
	Level        string
	ActionType   string
	Method       string
	Path         string
	StartTime    *time.Time
	EndTime      *time.Time
	Limit        int
	Skip         int
}
