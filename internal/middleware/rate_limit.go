package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyperkh65/loadsim/internal/domain/dto"
	"github.com/hyperkh65/loadsim/internal/i18n"
)

const defaultNumShards = 16

type window struct {
	tokens  int
	resetAt time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	windows map[string]*window
}

// RateLimiter is a fixed-window limiter whose state is split across shards
// to keep lock contention low under concurrent simulations.
type RateLimiter struct {
	shards   []*limiterShard
	rate     int
	window   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// RateLimiterStats reports how many identifiers are currently tracked.
type RateLimiterStats struct {
	Tracked  int   `json:"tracked"`
	PerShard []int `json:"per_shard"`
}

// NewRateLimiter creates a limiter allowing rate requests per window.
func NewRateLimiter(rate int, per time.Duration) *RateLimiter {
	return NewShardedRateLimiter(rate, per, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with a custom shard count.
func NewShardedRateLimiter(rate int, per time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	rl := &RateLimiter{
		shards: make([]*limiterShard, numShards),
		rate:   rate,
		window: per,
		stopCh: make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{windows: make(map[string]*window)}
	}

	go rl.sweep()
	return rl
}

func (rl *RateLimiter) shard(identifier string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identifier))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// take consumes one token for identifier.
func (rl *RateLimiter) take(identifier string) (allowed bool, remaining int) {
	s := rl.shard(identifier)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, ok := s.windows[identifier]
	if !ok || !now.Before(w.resetAt) {
		s.windows[identifier] = &window{tokens: rl.rate - 1, resetAt: now.Add(rl.window)}
		return true, rl.rate - 1
	}
	if w.tokens <= 0 {
		return false, 0
	}
	w.tokens--
	return true, w.tokens
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.limit(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// ActorRateLimit limits requests per authenticated API key, falling back to
// the client IP. It must run after APIKeyAuth.
func (rl *RateLimiter) ActorRateLimit() gin.HandlerFunc {
	return rl.limit(actorIdentifier)
}

func actorIdentifier(c *gin.Context) string {
	if actor := GetActor(c); actor != "" && actor != "anonymous" {
		return "key:" + actor
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) limit(identify func(*gin.Context) string) gin.HandlerFunc {
	limit := strconv.Itoa(rl.rate)
	retryAfter := strconv.Itoa(int(rl.window.Seconds() + 0.5))

	return func(c *gin.Context) {
		allowed, remaining := rl.take(identify(c))
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", retryAfter)
			msg := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, msg).WithRequestID(GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictExpired(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// evictExpired forgets identifiers whose window ended more than one window ago.
func (rl *RateLimiter) evictExpired(now time.Time) {
	for _, s := range rl.shards {
		s.mu.Lock()
		for id, w := range s.windows {
			if now.Sub(w.resetAt) > rl.window {
				delete(s.windows, id)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked identifiers.
func (rl *RateLimiter) Stats() RateLimiterStats {
	stats := RateLimiterStats{PerShard: make([]int, len(rl.shards))}
	for i, s := range rl.shards {
		s.mu.Lock()
		stats.PerShard[i] = len(s.windows)
		s.mu.Unlock()
		stats.Tracked += stats.PerShard[i]
	}
	return stats
}
