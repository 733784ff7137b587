package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/airline-booking/internal/config"
	"github.com/iliyamo/airline-booking/internal/database"
	"github.com/iliyamo/airline-booking/internal/handler"
	"github.com/iliyamo/airline-booking/internal/logging"
	"github.com/iliyamo/airline-booking/internal/middleware"
	"github.com/iliyamo/airline-booking/internal/repository"
	"github.com/iliyamo/airline-booking/internal/router"
	"github.com/iliyamo/airline-booking/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.Env)

	db, err := database.Open(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	logger.Info("connected to database")

	// Redis is optional: without it the cache and rate limiter are no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	alloc := repository.NewIDAllocator(db, cfg.IDLockTimeout)
	aircraftRepo := repository.NewAircraftRepo(db)
	airportRepo := repository.NewAirportRepo(db, alloc)
	crewRepo := repository.NewCrewRepo(db, alloc)
	flightRepo := repository.NewFlightRepo(db, alloc)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)

	publisher := service.NewAMQPPublisher(cfg.AMQPURL)
	orders := service.NewOrderService(db, flightRepo, orderRepo, publisher, logger)

	aircraftH := handler.NewAircraftHandler(aircraftRepo, logger)
	airportH := handler.NewAirportHandler(airportRepo, logger)
	flightH := handler.NewFlightHandler(flightRepo, crewRepo, logger)
	orderH := handler.NewOrderHandler(orders, orderRepo, userRepo, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.ContextTimeout(cfg.RequestTimeout))

	cache := middleware.NewRedisCache(cacheCfg, rdb, logger)
	invalidate := middleware.NewCacheInvalidator(cacheCfg, rdb, logger)
	limit := middleware.NewTokenBucket(rlCfg, rdb, logger)

	router.RegisterRoutes(e, db)
	router.RegisterIdentity(e, orderH, cfg.JWTSecret)
	router.RegisterCatalog(e, aircraftH, airportH, flightH, cache)
	router.RegisterAdmin(e, aircraftH, airportH, flightH, cfg.JWTSecret, invalidate)
	router.RegisterOrders(e, orderH, cfg.JWTSecret, limit, invalidate)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.WithField("addr", srv.Addr).WithField("env", cfg.Env).Info("listening")
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited")
}
