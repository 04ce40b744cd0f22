package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/circuitbreaker"
	"github.com/hyperkh65/loadsim/internal/domain/dto"
	"github.com/hyperkh65/loadsim/internal/i18n"
	"github.com/hyperkh65/loadsim/internal/logger"
	"github.com/hyperkh65/loadsim/internal/service"
)

type errorMapping struct {
	target error
	status int
	code   string
	key    string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, i18n.ErrKeyUnavailable},
	{service.ErrRepositoryNotConfigured, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, i18n.ErrKeyUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, dto.ErrCodeTimeout, i18n.ErrKeyTimeout},
}

func classify(err error) (int, string, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, m.key
		}
	}
	return http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError
}

// ErrorHandler renders errors a handler attached with c.Error but did not
// answer itself. Catalog outages become a 503, expired deadlines a 504 and
// anything else a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		requestID := GetRequestID(c)

		log := logger.Logger()
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}

		status, code, key := classify(err)
		message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
		c.JSON(status, dto.NewError(code, message).WithRequestID(requestID))
	}
}
