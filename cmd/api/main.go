package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/cache"
	"jobboard/internal/config"
	"jobboard/internal/database"
	apphttp "jobboard/internal/http"
	"jobboard/internal/http/handlers"
	httpmw "jobboard/internal/http/middleware"
	"jobboard/internal/notify"
	"jobboard/internal/observability"
	"jobboard/internal/repository/postgres"
	"jobboard/internal/security"
)

func main() {
	cfg := config.Load()
	zapLogger := observability.NewZap(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zapLogger.Sync() }()
	logger := observability.NewLogger(zapLogger)

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	redisClient := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword)

	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	jobTypeRepo := postgres.NewJobTypeRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	publisher := notify.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic, logger)
	defer func() { _ = publisher.Close() }()
	jobCache := cache.NewJobCache(redisClient)

	authService := app.NewAuthService(userRepo, authRepo, publisher, jwtProvider, logger, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := app.NewUserService(userRepo, authRepo, logger)
	companyService := app.NewCompanyService(companyRepo, logger)
	jobService := app.NewJobService(jobRepo, categoryRepo, jobTypeRepo, locationRepo, companyRepo, jobCache, logger)
	refdataService := app.NewRefDataService(categoryRepo, jobTypeRepo, locationRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, publisher, logger)

	var rateLimiter httpmw.Limiter
	if redisLimiter := httpmw.NewRedisLimiter(redisClient); redisLimiter != nil {
		rateLimiter = redisLimiter
	} else {
		rateLimiter = httpmw.NewRateLimiter()
	}

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		UserHandler:        handlers.NewUserHandler(userService),
		CompanyHandler:     handlers.NewCompanyHandler(companyService),
		JobHandler:         handlers.NewJobHandler(jobService),
		RefDataHandler:     handlers.NewRefDataHandler(refdataService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		RateLimiter:        rateLimiter,
		Logger:             zapLogger,
		RequestTimeout:     cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
