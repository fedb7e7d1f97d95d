package api

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	middleware "github.com/oapi-codegen/echo-middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mernspace/auth-service/internal/controller"
	"github.com/mernspace/auth-service/internal/models"
	"github.com/mernspace/auth-service/internal/service"
	"github.com/mernspace/auth-service/internal/util"
)

const (
	shutdownTimeout = 5 * time.Second
)

type API struct {
	server          *echo.Echo
	controller      *controller.Controller
	tokens          *service.TokenService
	auth            *service.AuthService
	redis           *redis.Client
	rateCfg         *util.RateLimiterConfig
	log             *zap.SugaredLogger
	gracefulTimeout time.Duration
	cleanupFuncs    []func()
}

func NewAPI(
	c *controller.Controller,
	tokens *service.TokenService,
	auth *service.AuthService,
	redisClient *redis.Client,
	sc *util.ServerConfig,
	rateCfg *util.RateLimiterConfig,
	l *zap.SugaredLogger,
	cleanupFuncs []func(),
) *API {
	e := echo.New()

	e.Server.Addr = sc.ServerAddr
	e.Server.WriteTimeout = sc.WriteTimeout
	e.Server.ReadTimeout = sc.ReadTimeout
	e.Server.IdleTimeout = sc.IdleTimeout
	e.HTTPErrorHandler = ErrorHandler(l)

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     sc.CORSOrigins,
		AllowCredentials: true,
	}))

	return &API{
		server:          e,
		controller:      c,
		tokens:          tokens,
		auth:            auth,
		redis:           redisClient,
		rateCfg:         rateCfg,
		log:             l,
		gracefulTimeout: sc.GracefulTimeout,
		cleanupFuncs:    cleanupFuncs,
	}
}

// Echo exposes the underlying router so tests can drive it with httptest.
func (a *API) Echo() *echo.Echo {
	return a.server
}

func (a *API) Run(ctxBackground context.Context) {
	ctx, stop := signal.NotifyContext(ctxBackground, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	swagger, err := controller.GetSwagger()
	if err != nil {
		a.log.Fatalf("Failed to load OpenAPI specification: %v", err)
	}
	swagger.Servers = nil

	a.server.Use(echomiddleware.RequestLoggerWithConfig(GetLoggerMiddlewareConfig(a)))
	a.server.Use(middleware.OapiRequestValidator(swagger))

	a.RegisterRoutes()

	a.ListenGracefulShutdown(ctx)
}

// RegisterRoutes wires the endpoint table: auth flows behind the token
// middlewares, tenant and user management behind ADMIN-only RBAC.
func (a *API) RegisterRoutes() {
	e := a.server
	c := a.controller

	rateLimit := RateLimit(a.redis, a.rateCfg, a.log)
	authenticate := Authenticate(a.tokens)
	validateRefresh := ValidateRefreshToken(a.tokens, a.auth)
	parseRefresh := ParseRefreshToken(a.tokens)
	adminOnly := RequireRole(models.RoleAdmin)

	e.GET("/ping", c.CheckServer)

	auth := e.Group("/auth")
	auth.POST("/register", c.Register, rateLimit)
	auth.POST("/login", c.Login, rateLimit)
	auth.GET("/self", c.Self, authenticate)
	auth.POST("/refresh", c.Refresh, validateRefresh)
	auth.POST("/logout", c.Logout, authenticate, parseRefresh)

	tenants := e.Group("/tenants", authenticate, adminOnly)
	tenants.POST("", c.CreateTenant)
	tenants.GET("", c.ListTenants)
	tenants.GET("/:id", c.GetTenant)
	tenants.PATCH("/:id", c.UpdateTenant)
	tenants.DELETE("/:id", c.DeleteTenant)

	users := e.Group("/users", authenticate, adminOnly)
	users.POST("", c.CreateUser)
	users.GET("", c.ListUsers)
	users.GET("/:id", c.GetUser)
	users.PATCH("/:id", c.UpdateUser)
	users.DELETE("/:id", c.DeleteUser)
}

func (a *API) ListenGracefulShutdown(ctx context.Context) {
	go func() {
		err := a.server.Start(a.server.Server.Addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()
	a.log.Infof("Listening on: %s", a.server.Server.Addr)

	<-ctx.Done()
	a.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	if err != nil {
		a.log.Errorf("shutdown: %v", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	longShutdown := make(chan struct{}, 1)

	go func() {
		time.Sleep(a.gracefulTimeout)
		longShutdown <- struct{}{}
	}()

	select {
	case <-shutdownCtx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			a.log.Info("server shutdown completed")
		} else {
			a.log.Errorf("server shutdown: %v", ctx.Err())
		}
	case <-longShutdown:
		a.log.Infof("finished")
	}
}

func GetLoggerMiddlewareConfig(a *API) echomiddleware.RequestLoggerConfig {
	return echomiddleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,

		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", c.Request().Method,
				"uri", v.URI,
				"status", v.Status,
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				a.log.Errorw("Request", fields...)
			} else {
				a.log.Infow("Request", fields...)
			}
			return nil
		},
	}
}
