package security

import (
	"context"
	"fmt"
	"time"

	"go-jobboard-gateway/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter throttles document uploads with two sliding windows kept in
// Redis sorted sets: a short per-IP window and a daily per-user window.
type UploadLimiter struct {
	perIPMinute int
	perUserDay  int
}

// KEYS[1] window key, ARGV[1] limit, ARGV[2] window seconds, ARGV[3] now.
// Prunes entries older than the window, then admits and records the upload
// only when the count is still under the limit. Returns 1 when admitted.
const slidingWindowScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

if redis.call('ZCARD', key) >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

func NewUploadLimiter(perIPMinute, perUserDay int) *UploadLimiter {
	if perIPMinute <= 0 {
		perIPMinute = 10
	}
	if perUserDay <= 0 {
		perUserDay = 50
	}
	return &UploadLimiter{perIPMinute: perIPMinute, perUserDay: perUserDay}
}

// AllowUpload reports whether this upload may proceed. When denied, the
// second return value is the suggested Retry-After in seconds. Without a
// Redis connection the limiter cannot count, so it admits the upload and
// surfaces the condition through the error.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip, userID string) (bool, int, error) {
	client := redis.Client()
	if client == nil {
		return true, 0, fmt.Errorf("upload limiter disabled: redis not connected")
	}

	now := time.Now().Unix()

	allowed, err := ul.admit(ctx, client, "ratelimit:upload:ip:"+ip, ul.perIPMinute, 60, now)
	if err != nil {
		return false, 60, fmt.Errorf("upload limit check: %w", err)
	}
	if !allowed {
		return false, 60, nil
	}

	if userID != "" {
		allowed, err = ul.admit(ctx, client, "ratelimit:upload:user:"+userID, ul.perUserDay, 86400, now)
		if err != nil {
			return false, 3600, fmt.Errorf("upload limit check: %w", err)
		}
		if !allowed {
			return false, 3600, nil
		}
	}

	return true, 0, nil
}

func (ul *UploadLimiter) admit(ctx context.Context, client *goredis.Client, key string, limit, window int, now int64) (bool, error) {
	result, err := client.Eval(ctx, slidingWindowScript, []string{key}, limit, window, now).Result()
	if err != nil {
		return false, err
	}
	n, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected script result %T", result)
	}
	return n == 1, nil
}
