package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/docdesk/internal/app"
	"github.com/iliyamo/docdesk/internal/auth"
	"github.com/iliyamo/docdesk/internal/config"
	"github.com/iliyamo/docdesk/internal/handler"
	"github.com/iliyamo/docdesk/internal/logger"
	"github.com/iliyamo/docdesk/internal/middleware"
	"github.com/iliyamo/docdesk/internal/router"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply pending migrations before serving")
	flag.Parse()

	cfg := config.Load()
	log, closeLog, err := logger.New(logger.Config{Level: cfg.LogLevel, FilePath: cfg.LogFile})
	if err != nil {
		stdlog.Fatal(err)
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.New(ctx, cfg, log, reg)
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}
	defer func() { _ = a.Close() }()

	if *migrate {
		if err := a.Migrate(ctx, log); err != nil {
			log.WithError(err).Fatal("migrations failed")
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(
		middleware.RequestID(),
		middleware.Identify(auth.NewEmployeeVerifier(cfg.JWTSecret), auth.NewCustomerVerifier(cfg.JWTSecret)),
		middleware.Logger(log),
	)
	e.GET("/healthz", handler.Health(a.DB))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	var limiter echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		defer func() { _ = rdb.Close() }()
		limiter = middleware.NewTokenBucket(cfg.RateLimit, rdb, log)
	} else {
		log.Warn("redis unavailable; rate limiting disabled")
	}
	router.Register(e, a.Routes, limiter)

	go func() {
		addr := ":" + cfg.Port
		log.WithField("env", cfg.Env).Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdown); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
