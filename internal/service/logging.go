package service

import (
	"context"
	"time"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/repository"
)

// LoggingService persists request and audit logs.
type LoggingService interface {
	// CreateLog stores a single log entry.
	CreateLog(ctx context.Context, entry *model.LogEntry) error

	// CreateLogs stores multiple log entries in bulk.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error

	// QueryLogs returns entries matching opts, newest first.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)

	// CountLogs returns the number of entries matching opts.
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements LoggingService on top of the logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
	now  func() time.Time
}

// NewLoggingService creates a new logging service implementation.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo, now: time.Now}
}

// CreateLog stamps entry with an ID and timestamp when missing, then stores it.
// The caller's entry receives the assigned ID.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, s.document(entry))
}

// CreateLogs stores entries in bulk. An empty slice is a no-op.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]*repository.LogEntryDocument, len(entries))
	for i, entry := range entries {
		docs[i] = s.document(entry)
	}
	return s.repo.CreateMany(ctx, docs)
}

// QueryLogs returns entries matching opts, newest first.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	docs, err := s.repo.Query(ctx, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LogEntry, 0, len(docs))
	for _, doc := range docs {
		if doc != nil {
			entries = append(entries, doc.LogEntry)
		}
	}
	return entries, nil
}

// CountLogs returns the number of entries matching opts.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, opts)
}

func (s *LoggingServiceImpl) document(entry *model.LogEntry) *repository.LogEntryDocument {
	entry.Stamp(s.now())
	return &repository.LogEntryDocument{LogEntry: *entry}
}
