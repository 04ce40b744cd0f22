package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/logger"
	"github.com/hyperkh65/loadsim/internal/service"
)

const (
	simulationIDKey ContextKey = "simulation_id"
	containerKey    ContextKey = "simulation_container"
)

// SetSimulation tags the request with the simulation it produced so the
// request log can be joined with the X-Simulation-ID response header.
func SetSimulation(c *gin.Context, id, container string) {
	c.Set(string(simulationIDKey), id)
	SetContainer(c, container)
}

// SetContainer tags the request with the container code it used or changed.
func SetContainer(c *gin.Context, code string) {
	c.Set(string(containerKey), code)
}

func contextString(c *gin.Context, key ContextKey) string {
	return c.GetString(string(key))
}

var consoleLevels = map[string]zerolog.Level{
	model.LogLevelInfo:  zerolog.InfoLevel,
	model.LogLevelWarn:  zerolog.WarnLevel,
	model.LogLevelError: zerolog.ErrorLevel,
}

// RequestLogger writes one line per request to the console and, when
// loggingService is set, stores the same entry in the logs collection
// through the async logger (or a goroutine when none is running).
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		entry := &model.LogEntry{
			Timestamp:    time.Now(),
			Level:        model.LogLevelForStatus(status),
			Message:      "HTTP request",
			RequestID:    GetRequestID(c),
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			StatusCode:   status,
			Duration:     time.Since(start).Milliseconds(),
			IP:           c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			SimulationID: contextString(c, simulationIDKey),
			Container:    contextString(c, containerKey),
			Actor:        GetActor(c),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}

		console := logger.Logger()
		event := console.WithLevel(consoleLevels[entry.Level]).
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", status).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent)
		if entry.SimulationID != "" {
			event = event.Str("simulation_id", entry.SimulationID).Str("container", entry.Container)
		}
		if entry.Error != "" {
			event = event.Str("error", entry.Error)
		}
		event.Msg(entry.Message)

		if loggingService == nil {
			return
		}
		if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
			asyncLogger.Log(entry)
			return
		}
		store(loggingService, entry)
	}
}
