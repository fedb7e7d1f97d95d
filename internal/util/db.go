package util

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

// NewDBConnection opens the postgres pool and pings it so a bad DSN fails at
// startup rather than on the first query. The returned cleanup closes the pool.
func NewDBConnection(logger *zap.SugaredLogger, cfg *DBConfig) (*sql.DB, func(), error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, nil, err
	}
	logger.Info("Connected to postgres")

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Errorf("closing postgres pool: %v", err)
		}
	}
	return db, cleanup, nil
}

// NewRedisClient builds the client used by the rate limiter. Connectivity is
// not checked here: the limiter fails open, so redis being down must not keep
// the service from starting.
func NewRedisClient(logger *zap.SugaredLogger, cfg *RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	logger.Infof("Redis client configured for %s", cfg.Addr)

	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Errorf("closing redis client: %v", err)
		}
	}
	return client, cleanup, nil
}
