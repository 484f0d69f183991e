package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/restobook/restaurant-backend/config"
	repository "github.com/restobook/restaurant-backend/internal/database/postgres"
	cache "github.com/restobook/restaurant-backend/internal/database/redis"
	"github.com/restobook/restaurant-backend/internal/service"
	"github.com/restobook/restaurant-backend/internal/transport"
	"github.com/restobook/restaurant-backend/pkg/auth"
	"github.com/restobook/restaurant-backend/pkg/postgres"
	"github.com/restobook/restaurant-backend/pkg/rabbitmq"
	"github.com/restobook/restaurant-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12}, // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	bookingRepo := repository.NewBookingRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Redis обслуживает и rate limiter, и кэш продуктов.
	// Без него приложение работает, но медленнее и без лимитов.
	var redisClient = redis.NewRedisClient(&cfg.Redis)
	var cacheRepo *cache.CacheRepository
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Warnf("Redis unavailable: %v. Continuing without cache and rate limiting...", err)
		redisClient = nil
	} else {
		cacheRepo = cache.NewCacheRepository(redisClient, cfg.Redis.CacheTTL)
		defer redisClient.Close()
		logrus.Info("Redis connected")
	}

	// Initialize notification publisher
	var publisher service.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		rmq, err := rabbitmq.NewPublisher(rabbitmq.Config{
			URL:       cfg.RabbitMQ.URL,
			QueueName: cfg.RabbitMQ.QueueName,
		})
		if err != nil {
			logrus.Errorf("Failed to initialize RabbitMQ: %v. Continuing without notifications...", err)
		} else {
			publisher = rmq
			defer rmq.Close()
			logrus.Info("RabbitMQ publisher initialized")
		}
	} else {
		logrus.Warn("RabbitMQ URL not provided, booking notifications disabled")
	}

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Initialize services
	bookingService := service.NewBookingService(bookingRepo, publisher)
	productService := service.NewProductService(productRepo, cacheRepo)
	authService := service.NewAuthService(userRepo, tokenManager)

	// Initialize handlers
	bookingHandler := transport.NewBookingHandler(bookingService)
	productHandler := transport.NewProductHandler(productService)
	authHandler := transport.NewAuthHandler(authService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := transport.InitRoutes(cfg, bookingHandler, productHandler, authHandler, tokenManager, redisClient)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
