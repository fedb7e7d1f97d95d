package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mernspace/auth-service/internal/util"
)

// RateLimit counts requests per client IP per route in redis and blocks the
// client for BlockTime once the limit is exceeded. Redis being down fails
// open: losing rate limiting is better than losing logins.
func RateLimit(rdb *redis.Client, cfg *util.RateLimiterConfig, log *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := "ratelimit:" + c.RealIP() + ":" + c.Path()
			blockKey := key + ":block"

			blocked, err := rdb.Exists(ctx, blockKey).Result()
			if err != nil {
				log.Errorw("rate limiter unavailable", "error", err)
				return next(c)
			}
			if blocked > 0 {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, try again later")
			}

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Errorw("rate limiter unavailable", "error", err)
				return next(c)
			}
			if count == 1 {
				if err := rdb.Expire(ctx, key, cfg.Interval).Err(); err != nil {
					log.Errorw("failed to set rate limit window", "error", err)
				}
			}

			if count > int64(cfg.Limit) {
				if err := rdb.Set(ctx, blockKey, "1", cfg.BlockTime).Err(); err != nil {
					log.Errorw("failed to set rate limit block", "error", err)
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, try again later")
			}

			return next(c)
		}
	}
}
