package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/logger"
	"github.com/hyperkh65/loadsim/internal/metrics"
	"github.com/hyperkh65/loadsim/internal/service"
)

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the size of the log entry channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines processing logs.
	NumWorkers int
	// WriteTimeout bounds a single database write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the defaults used when nothing is configured.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

func (c AsyncLoggerConfig) withDefaults() AsyncLoggerConfig {
	d := DefaultAsyncLoggerConfig()
	if c.BufferSize <= 0 {
		c.BufferSize = d.BufferSize
	}
	if c.NumWorkers <= 0 {
		c.NumWorkers = d.NumWorkers
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	return c
}

// AsyncLoggerStats is a snapshot of the logger counters.
type AsyncLoggerStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Failed   int64 `json:"failed"`
}

// AsyncLogger writes request logs through a bounded queue and a fixed pool of
// workers. Entries are dropped when the queue is full.
type AsyncLogger struct {
	loggingService service.LoggingService
	entryCh        chan *model.LogEntry
	wg             sync.WaitGroup
	stopOnce       sync.Once
	stopCh         chan struct{}
	writeTimeout   time.Duration

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts a logger. It returns nil when loggingService is nil.
// Non-positive config values fall back to DefaultAsyncLoggerConfig.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}
	cfg = cfg.withDefaults()

	al := &AsyncLogger{
		loggingService: loggingService,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
		writeTimeout:   cfg.WriteTimeout,
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.worker()
	}

	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()

	for {
		select {
		case entry := <-al.entryCh:
			al.write(entry)
		case <-al.stopCh:
			for {
				select {
				case entry := <-al.entryCh:
					al.write(entry)
				default:
					return
				}
			}
		}
	}
}

func (al *AsyncLogger) write(entry *model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	if err := al.loggingService.CreateLog(ctx, entry); err != nil {
		al.failed.Add(1)
		metrics.RecordLogEntry("failed")
		log := logger.Logger()
		log.Warn().Err(err).Str("request_id", entry.RequestID).Msg("Failed to store log entry")
		return
	}
	al.written.Add(1)
	metrics.RecordLogEntry("written")
}

// Log enqueues entry and reports whether it was accepted.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	select {
	case <-al.stopCh:
		al.drop()
		return false
	default:
	}

	select {
	case al.entryCh <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.drop()
		return false
	}
}

func (al *AsyncLogger) drop() {
	al.dropped.Add(1)
	metrics.RecordLogEntry("dropped")
}

// Stop drains the queue and waits for the workers. It is safe to call twice.
func (al *AsyncLogger) Stop() {
	al.stopOnce.Do(func() {
		close(al.stopCh)
		al.wg.Wait()
	})
}

// Stats returns the current counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}

var (
	globalAsyncLogger   *AsyncLogger
	globalAsyncLoggerMu sync.RWMutex
)

// InitAsyncLogger installs the logger used by RequestLogger, replacing and
// stopping any previous one.
func InitAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
	}
	globalAsyncLogger = NewAsyncLogger(loggingService, cfg)
}

// GetAsyncLogger returns the installed logger, or nil.
func GetAsyncLogger() *AsyncLogger {
	globalAsyncLoggerMu.RLock()
	defer globalAsyncLoggerMu.RUnlock()
	return globalAsyncLogger
}

// StopAsyncLogger stops and removes the installed logger.
func StopAsyncLogger() {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
		globalAsyncLogger = nil
	}
}
