package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for the idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the replay store.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a response can be replayed.
	IdempotencyKeyTTL = 5 * time.Minute

	defaultReplayCapacity = 1024
)

type cachedResponse struct {
	statusCode  int
	contentType string
	body        []byte
	storedAt    time.Time
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	TTL      time.Duration
	Capacity int
	Enabled  bool
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:      IdempotencyKeyTTL,
		Capacity: defaultReplayCapacity,
		Enabled:  true,
	}
}

// Idempotency replays the stored 2xx response of a POST or PUT that carries
// an Idempotency-Key already seen with the same caller, path and body.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	store := newReplayStore(cfg.TTL, cfg.Capacity)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		fp, err := fingerprintRequest(key, GetActor(c), c.Request)
		if err != nil {
			c.Next()
			return
		}

		if resp, ok := store.get(fp); ok {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(resp.statusCode, resp.contentType, resp.body)
			c.Abort()
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status >= 200 && status < 300 {
			store.set(fp, &cachedResponse{
				statusCode:  status,
				contentType: rec.Header().Get("Content-Type"),
				body:        rec.body.Bytes(),
			})
		}
	}
}

// fingerprintRequest hashes the key with the caller, method, path and body,
// and restores the body for the handler.
func fingerprintRequest(key, actor string, req *http.Request) (string, error) {
	h := sha256.New()
	for _, part := range []string{key, actor, req.Method, req.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
