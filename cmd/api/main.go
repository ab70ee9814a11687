package main

import (
	"context"
	"log"
	"net/http"

	"github.com/Nest-Microservices-dTv/payments-ms/internal/bus"
	"github.com/Nest-Microservices-dTv/payments-ms/internal/config"
	"github.com/Nest-Microservices-dTv/payments-ms/internal/payment"
	"github.com/Nest-Microservices-dTv/payments-ms/internal/store"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	provider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	publisher := bus.NewKafkaPublisher(cfg.KafkaBrokers, cfg.PaymentTopic, cfg.PublishTimeout)
	defer publisher.Close()

	var ledger store.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer pgStore.Close()
		ledger = pgStore
		log.Println("Connected to database successfully")
	} else {
		ledger = store.NewMemoryStore()
		log.Println("DATABASE_URL not set, payment ledger is in-memory only")
	}

	api := &apiConfig{
		config:    cfg,
		provider:  provider,
		publisher: publisher,
		ledger:    ledger,
	}

	mux := http.NewServeMux()

	sessionHandler := http.Handler(http.HandlerFunc(api.createPaymentSessionHandler))
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Unable to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Unable to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis successfully")

		sessionHandler = RateLimitMiddleware(redisClient, cfg.RateLimit)(sessionHandler)
	}

	mux.Handle("POST /api/v1/payments/create-payment-session", sessionHandler)

	// Webhook route has no auth middleware: requests are authenticated by
	// signature against the raw body.
	mux.HandleFunc("POST /api/v1/payments/webhook", api.stripeWebhookHandler)

	mux.HandleFunc("GET /healthz", api.healthzHandler)

	handler := middlewareCors(RequestIDMiddleware(LoggingMiddleware(RecoveryMiddleware(mux))))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("Payments service starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
