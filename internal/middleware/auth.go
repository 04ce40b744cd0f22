package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/domain/dto"
	"github.com/hyperkh65/loadsim/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
	// ActorKey is the context key holding the masked key of an authenticated caller.
	ActorKey = "actor"
)

// APIKeyAuth returns a middleware that guards catalog writes with API keys.
// It checks the X-API-Key header first, then falls back to api_key query parameter.
// If validKeys is nil or empty, authentication is disabled and the actor is "anonymous".
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Set(ActorKey, "anonymous")
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		if key == "" {
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(i18n.ErrKeyAPIKeyRequired, locale)).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		if !keyAllowed(validKeys, key) {
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(i18n.ErrKeyInvalidAPIKey, locale)).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		c.Set(ActorKey, MaskKey(key))
		c.Next()
	}
}

func keyAllowed(validKeys map[string]bool, key string) bool {
	found := false
	for k, ok := range validKeys {
		if ok && subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			found = true
		}
	}
	return found
}

// MaskKey keeps the first four characters of an API key and hides the rest.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}

// GetActor returns the masked key set by APIKeyAuth, or "" when the request
// did not pass through it.
func GetActor(c *gin.Context) string {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(string); ok {
			return actor
		}
	}
	return ""
}
