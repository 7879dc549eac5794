package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pzwatch/go-pizza-index/internal/api"
	"github.com/pzwatch/go-pizza-index/internal/broadcast"
	"github.com/pzwatch/go-pizza-index/internal/config"
	"github.com/pzwatch/go-pizza-index/internal/correlation"
	"github.com/pzwatch/go-pizza-index/internal/logging"
	"github.com/pzwatch/go-pizza-index/internal/newsfeed"
	"github.com/pzwatch/go-pizza-index/internal/places"
	"github.com/pzwatch/go-pizza-index/internal/repository"
	"github.com/pzwatch/go-pizza-index/internal/scheduler"
	"github.com/pzwatch/go-pizza-index/internal/tracker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Fan-out of newly persisted news events, feeding the correlation detector
	broadcaster := broadcast.NewBroadcaster()

	newsCollector := newsfeed.NewCollector(db, broadcaster,
		newsfeed.NewNewsAPISource(cfg.News.NewsAPIKey, cfg.News.NewsAPIURL, cfg.News.PageSize),
		newsfeed.NewNYTSource(cfg.News.NYTKey, cfg.News.NYTURL),
		newsfeed.NewRSSSource("BBC", cfg.News.FeedURL, cfg.News.PageSize),
	)

	placesClient := places.NewClient(cfg.Places.APIKey, cfg.Places.DetailsURL)
	pizzaCollector := tracker.NewCollector(db, placesClient, cfg.Places.WorkerCount)

	detector := correlation.NewDetector(db, broadcaster, cfg.Correlation.MinScore, cfg.Correlation.Window)
	detector.Start(ctx)

	sched := scheduler.New(
		scheduler.Job{
			Name:     "pizza",
			Interval: cfg.Places.CollectInterval,
			Run: func(ctx context.Context) error {
				_, err := pizzaCollector.Collect(ctx)
				return err
			},
		},
		scheduler.Job{
			Name:     "news",
			Interval: cfg.News.CollectInterval,
			Run: func(ctx context.Context) error {
				_, err := newsCollector.Collect(ctx)
				return err
			},
		},
	)
	sched.Start(ctx)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5)) // 5 req/s global limit

	handler := api.NewHandler(db, pizzaCollector, newsCollector)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	sched.Stop()
	detector.Stop()
	broadcaster.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
