package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/domain/dto"
	"github.com/hyperkh65/loadsim/internal/i18n"
	"github.com/hyperkh65/loadsim/internal/logger"
)

// Recovery turns a panic into a localized 500 response and logs it with the
// stack. The panic value is also attached to the gin context so RequestLogger
// stores it with the request.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestID := GetRequestID(c)
			log := logger.Logger()
			log.Error().
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("PANIC recovered")
			_ = c.Error(fmt.Errorf("panic: %v", rec))

			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
		}()
		c.Next()
	}
}
