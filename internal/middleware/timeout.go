package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/domain/dto"
	"github.com/hyperkh65/loadsim/internal/i18n"
	"github.com/hyperkh65/loadsim/internal/logger"
)

// TimeoutConfig holds configuration for the timeout middleware.
type TimeoutConfig struct {
	// Timeout is the maximum duration for request processing.
	Timeout time.Duration
	// ExemptPrefixes lists path prefixes served without a deadline, such as
	// the metrics and documentation endpoints.
	ExemptPrefixes []string
}

// DefaultTimeoutConfig returns a 30 second timeout with no exemptions.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{Timeout: 30 * time.Second}
}

func (cfg TimeoutConfig) exempt(path string) bool {
	for _, p := range cfg.ExemptPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Timeout aborts requests that run longer than cfg.Timeout with a 504. The
// handler keeps running in the background until it returns; its late writes
// are discarded by gin once the response is committed.
func Timeout(cfg TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Timeout <= 0 || cfg.exempt(c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		var (
			mu       sync.Mutex
			finished bool
		)
		done := make(chan struct{})

		go func() {
			defer func() {
				_ = recover()
				close(done)
			}()
			c.Next()
			mu.Lock()
			finished = true
			mu.Unlock()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			mu.Lock()
			defer mu.Unlock()
			if finished || c.Writer.Written() {
				return
			}

			requestID := GetRequestID(c)
			log := logger.Logger()
			log.Warn().
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Dur("timeout", cfg.Timeout).
				Msg("Request timed out")

			message := i18n.GetTranslator().Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusGatewayTimeout,
				dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(requestID))
		}
	}
}

// TimeoutWithDuration creates a timeout middleware with no exemptions.
func TimeoutWithDuration(timeout time.Duration) gin.HandlerFunc {
	return Timeout(TimeoutConfig{Timeout: timeout})
}
