package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hamperhouse/pkg/logger"
	"hamperhouse/storefront-service/internal/app/storefront/config"
	"hamperhouse/storefront-service/internal/app/storefront/handler"
	"hamperhouse/storefront-service/internal/app/storefront/infrastructure"
	apiclient "hamperhouse/storefront-service/internal/app/storefront/infrastructure/http"
	"hamperhouse/storefront-service/internal/app/storefront/infrastructure/messaging"
	"hamperhouse/storefront-service/internal/app/storefront/processor"
	"hamperhouse/storefront-service/internal/app/storefront/repository"
	"hamperhouse/storefront-service/internal/app/storefront/service"
	"hamperhouse/storefront-service/internal/app/storefront/util"
)

const serviceName = "storefront-service"

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Log.Level)

	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Без Redis витрина работает, но каждый запрос идет в API
	var tagCache repository.TagCache
	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Error().Err(err).Msg("Redis unavailable, serving without cache")
	} else {
		defer redisClient.Close()
		tagCache = repository.NewRedisTagCache(redisClient, cfg.Redis.TTL)
		logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")
	}

	// === ПОДКЛЮЧЕНИЕ К MONGODB (журнал аудита) ===
	var auditRepo repository.AuditRepository
	if cfg.MongoDB.URI != "" {
		mongoClient, err := connectMongoDB(cfg.MongoDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
			}
		}()
		auditRepo = repository.NewAuditRepository(mongoClient.Database(cfg.MongoDB.Database))
		logger.Info().Str("database", cfg.MongoDB.Database).Msg("Connected to MongoDB")
	} else {
		logger.Warn().Msg("MONGO_URI is not set, admin audit log disabled")
	}

	// === KAFKA PRODUCER ===
	var publisher infrastructure.MessagePublisher
	if cfg.Kafka.Enabled {
		kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
		logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")
	}

	// === REST API КАТАЛОГА ===
	resolver := apiclient.NewBaseURLResolver(cfg.API.InternalURL, cfg.API.PublicURL)
	apiClient := apiclient.NewAPIClient(resolver.Resolve(apiclient.ExecServer), cfg.API.Timeout)
	defer apiClient.Close()
	mediaBase := resolver.Resolve(apiclient.ExecBrowser)

	// === ИНИЦИАЛИЗАЦИЯ СЕРВИСОВ ===
	catalogService := service.NewCatalogService(apiClient, tagCache, service.CatalogSettings{
		MediaBaseURL:  mediaBase,
		FeaturedLimit: cfg.Catalog.FeaturedLimit,
		RelatedLimit:  cfg.Catalog.RelatedLimit,
		Campaigns:     cfg.Catalog.Campaigns,
		CampaignOrder: config.Campaigns,
	})
	adminService := service.NewAdminService(apiClient, tagCache, auditRepo, publisher, mediaBase)
	contactService, err := service.NewContactService(apiClient, publisher)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize contact form validator")
	}

	if cfg.Admin.PasswordHash == "" {
		logger.Warn().Msg("ADMIN_PASSWORD_HASH is not set, admin login disabled")
	}
	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	authService := service.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, jwtManager)

	// === ПРОГРЕВ КЕША ===
	var warmer *processor.CacheWarmer
	if tagCache != nil && cfg.Cron.WarmCache != "" {
		warmer = processor.NewCacheWarmer(catalogService, cfg.Cron.WarmRPS)
		if err := warmer.Start(ctx, cfg.Cron.WarmCache); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start cache warmer")
		}
		go func() {
			if _, err := warmer.WarmOnce(ctx); err != nil {
				logger.Warn().Err(err).Msg("Initial cache warm-up incomplete")
			}
		}()
	}

	// === HTTP СЕРВЕР ===
	router := handler.SetupRoutes(
		handler.NewPageHandler(catalogService, resolver),
		handler.NewContactHandler(contactService),
		handler.NewAuthHandler(authService),
		handler.NewAdminHandler(adminService),
		handler.NewAuthMiddleware(authService),
		cfg.Server.AllowedOrigins,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("api", resolver.Resolve(apiclient.ExecServer)).
			Msg("Starting Storefront Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Storefront Service...")

	cancel()
	if warmer != nil {
		warmer.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Storefront Service stopped gracefully")
}

// connectRedis устанавливает соединение с Redis
func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	var err error
	for i := 0; i < 5; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().Int("attempt", i+1).Err(err).Msg("Failed to connect to Redis, retrying...")
		time.Sleep(2 * time.Second)
	}

	_ = client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after 5 attempts: %w", err)
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		client, err = pingMongoDB(clientOptions)
		if err == nil {
			return client, nil
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}

func pingMongoDB(clientOptions *options.ClientOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}
