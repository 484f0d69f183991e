package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimit ограничивает каждый IP фиксированным окном на Redis INCR/EXPIRE.
// При недоступном Redis лимитер пропускает запрос: деградация без отказа.
func RateLimit(client *redis.Client, requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logrus.Warnf("Rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		// Первый запрос в окне задает срок жизни ключа.
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logrus.Warnf("Failed to set rate limit window: %v", err)
			}
		}

		if count > int64(requests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests from this IP, please try again later",
			})
			return
		}

		c.Next()
	}
}
