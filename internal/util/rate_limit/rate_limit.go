package rate_limit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/valkey-io/valkey-go"
)

// RateLimiter is a token bucket shared by all backend instances through Valkey.
// Buckets are addressed by an arbitrary key such as "signin:<client ip>".
type RateLimiter struct {
	client valkey.Client
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// Limit refills PerSecond tokens every second up to Burst.
type Limit struct {
	PerSecond int
	Burst     int
}

type Result struct {
	Allowed       bool
	Remaining     int
	ResetTime     time.Time
	RetryAfterSec int
}

const (
	checkTimeout = 2 * time.Second
	bucketTTLSec = 300
)

// Refills whole tokens for the elapsed milliseconds, takes one token if present
// and returns {allowed, remaining, ms until full}. refilled_at advances only by
// the time converted into tokens so slower callers keep their partial credit.
var tokenBucket = valkey.NewLuaScript(`
local bucket = redis.call('HMGET', KEYS[1], 'tokens', 'refilled_at')
local now = tonumber(ARGV[1])
local per_second = tonumber(ARGV[2])
local burst = tonumber(ARGV[3])

local tokens = tonumber(bucket[1]) or burst
local refilled_at = tonumber(bucket[2]) or now

local added = math.floor(math.max(0, now - refilled_at) * per_second / 1000)
if added > 0 then
    tokens = math.min(burst, tokens + added)
    refilled_at = refilled_at + math.floor(added * 1000 / per_second)
end
if tokens >= burst then
    refilled_at = now
end

local allowed = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'refilled_at', refilled_at)
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[4]))

local ms_to_full = 0
if tokens < burst then
    ms_to_full = math.max(0, math.ceil((burst - tokens) * 1000 / per_second) - (now - refilled_at))
end

return {allowed, tokens, ms_to_full}
`)

func NewRateLimiter(client valkey.Client, prefix string, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
		logger: logger,
		now:    time.Now,
	}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	limit = limit.normalized()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	now := r.now()

	values, err := tokenBucket.Exec(
		ctx,
		r.client,
		[]string{r.prefix + key},
		[]string{
			strconv.FormatInt(now.UnixMilli(), 10),
			strconv.Itoa(limit.PerSecond),
			strconv.Itoa(limit.Burst),
			strconv.Itoa(bucketTTLSec),
		},
	).AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	if len(values) != 3 {
		return nil, fmt.Errorf("unexpected rate limit reply of %d values", len(values))
	}

	result := &Result{
		Allowed:   values[0] == 1,
		Remaining: int(values[1]),
		ResetTime: now.Add(time.Duration(values[2]) * time.Millisecond),
	}
	if !result.Allowed {
		result.RetryAfterSec = max(int(math.Ceil(1/float64(limit.PerSecond))), 1)
	}

	return result, nil
}

// Guard answers 429 with Retry-After and returns false when key is over limit.
// A nil limiter or a Valkey failure lets the request through.
func (r *RateLimiter) Guard(ctx *gin.Context, key string, limit Limit) bool {
	if r == nil {
		return true
	}

	result, err := r.Allow(ctx.Request.Context(), key, limit)
	if err != nil {
		r.logger.Warn("rate limit check skipped", "key", key, "error", err)
		return true
	}

	if !result.Allowed {
		ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
		ctx.AbortWithStatusJSON(
			http.StatusTooManyRequests,
			gin.H{"error": "Rate limit exceeded. Please try again later."},
		)
		return false
	}

	return true
}

func (r *RateLimiter) Reset(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	return r.client.Do(ctx, r.client.B().Del().Key(r.prefix+key).Build()).Error()
}

func (l Limit) normalized() Limit {
	if l.PerSecond <= 0 {
		l.PerSecond = 1
	}
	if l.Burst <= 0 {
		l.Burst = max(l.PerSecond*5, 5)
	}

	return l
}
