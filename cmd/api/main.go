package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobpulse/internal/app"
	"jobpulse/internal/config"
	"jobpulse/internal/counterstore"
	redisstore "jobpulse/internal/counterstore/redis"
	"jobpulse/internal/database"
	apphttp "jobpulse/internal/http"
	"jobpulse/internal/http/handlers"
	"jobpulse/internal/http/metrics"
	httpmw "jobpulse/internal/http/middleware"
	"jobpulse/internal/http/response"
	"jobpulse/internal/integration/recommender"
	"jobpulse/internal/notify"
	"jobpulse/internal/observability"
	"jobpulse/internal/repository/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	counters := redisstore.New(counterstore.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer counters.Close()

	postingRepo := postgres.NewPostingRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	candidateRepo := postgres.NewCandidateRepository(db)
	employerRepo := postgres.NewEmployerRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	webhook := notify.NewWebhookClient(cfg.NotifyBaseURL, cfg.NotifyAPIKey, &http.Client{Timeout: cfg.NotifyTimeout})
	var inApp notify.InAppNotifier = notify.Nop{}
	if cfg.NATSURL != "" {
		natsNotifier, err := notify.NewNATSNotifier(cfg.NATSURL, logger)
		if err != nil {
			log.Fatal(err)
		}
		defer natsNotifier.Close()
		inApp = natsNotifier
	}
	recommenderClient := recommender.NewClient(cfg.RecommenderURL, &http.Client{Timeout: cfg.NotifyTimeout})

	quotaService := app.NewQuotaService(subscriptionRepo, postingRepo)
	postingService := app.NewPostingService(postingRepo, applicationRepo, quotaService, counters, logger)
	boostService := app.NewBoostService(postingRepo, counters)
	analyticsService := app.NewAnalyticsService(postingRepo, applicationRepo, candidateRepo, counters)
	matchingService := app.NewMatchingService(postingRepo, applicationRepo, candidateRepo, recommenderClient, webhook, logger)
	sweeperService := app.NewSweeperService(postingRepo, employerRepo, webhook, inApp, webhook, logger)
	eventService := app.NewEventService(eventRepo)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		PostingHandler:   handlers.NewPostingHandler(postingService, boostService),
		AnalyticsHandler: handlers.NewAnalyticsHandler(analyticsService),
		MatchingHandler:  handlers.NewMatchingHandler(matchingService),
		EventHandler:     handlers.NewEventHandler(eventService),
		AdminHandler:     handlers.NewAdminHandler(sweeperService),
		MetricsHandler:   handlers.NewMetricsHandler(collector),
		AuthMiddleware:   httpmw.NewAuthMiddleware(),
		Metrics:          collector,
		Logger:           logger,
		ViewLimiter:      httpmw.NewRedisLimiter(counters.Client()),
		ViewRateLimit:    cfg.ViewRateLimit,
		ViewRateWindow:   cfg.ViewRateWindow,
		RequestTimeout:   cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go func() {
		if err := sweeperService.Run(sweepCtx, cfg.SweepInterval); err != nil && err != context.Canceled {
			logger.Error("sweeper stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	stopSweeper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
