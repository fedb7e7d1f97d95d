package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/mernspace/auth-service/internal/api"
	"github.com/mernspace/auth-service/internal/controller"
	"github.com/mernspace/auth-service/internal/migrations"
	"github.com/mernspace/auth-service/internal/service"
	"github.com/mernspace/auth-service/internal/storage/postgres"
	"github.com/mernspace/auth-service/internal/util"

	_ "github.com/lib/pq"
)

func main() {
	ctx := context.Background()
	logger := util.NewZapLogger()

	db, dbCleanup, err := util.NewDBConnection(logger, util.NewDBConfig())
	if err != nil {
		logger.Fatal(zap.Error(err))
	}
	if err := migrations.RunMigrations(db, logger); err != nil {
		logger.Fatal(zap.Error(err))
	}

	redisClient, redisCleanup, err := util.NewRedisClient(logger, util.NewRedisConfig())
	if err != nil {
		logger.Fatal(zap.Error(err))
	}

	storage := postgres.NewStorage(db)
	cleanupFuncs := []func(){dbCleanup, redisCleanup}

	tokenService := service.NewTokenService(util.NewTokenConfig())
	credentialService := service.NewCredentialService()
	authService := service.NewAuthService(storage, tokenService, credentialService, logger)
	userService := service.NewUserService(storage, credentialService, logger)
	tenantService := service.NewTenantService(storage, logger)

	controller := controller.NewController(logger, authService, userService, tenantService, tokenService, util.NewCookieConfig())

	apiServer := api.NewAPI(
		controller,
		tokenService,
		authService,
		redisClient,
		util.NewServerConfig(),
		util.NewRateLimiterConfig(),
		logger,
		cleanupFuncs,
	)
	apiServer.Run(ctx)
}
