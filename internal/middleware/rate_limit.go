package middleware

import (
	"time"

	"practice_backend/internal/util"
	"practice_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const rateLimitKeyPrefix = "practice:ratelimit:"

// RedisRateLimit 按客户端 IP 计数，窗口内超过 limit 次返回 429。
// Redis 不可用时放行。
func RedisRateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := rateLimitKeyPrefix + c.ClientIP()

		pipe := rdb.Pipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.WithContext(ctx).Warn("rate limit store unavailable, request allowed",
				zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if incr.Val() > int64(limit) {
			logger.WithContext(ctx).Info("rate limited", zap.String("client_ip", c.ClientIP()), zap.Int64("count", incr.Val()))
			util.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
