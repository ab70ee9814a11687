package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nest-Microservices-dTv/payments-ms/internal/jobs"
	"github.com/Nest-Microservices-dTv/payments-ms/internal/store"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		if err = godotenv.Load("../../.env"); err != nil {
			log.Println("Warning: .env file not found in current directory or project root")
		}
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx := context.Background()
	ledger, err := store.NewPostgresStore(ctx, dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer ledger.Close()

	log.Println("Connected to database successfully")

	c := cron.New(cron.WithSeconds())

	// Daily reconciliation summary at 02:00 UTC.
	_, err = c.AddFunc("0 0 2 * * *", func() {
		log.Println("Starting daily payment reconciliation summary...")

		jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := jobs.LogPaymentSummary(jobCtx, ledger, 24*time.Hour); err != nil {
			log.Printf("ERROR: Failed to summarize payments: %v", err)
			return
		}

		log.Println("Daily reconciliation summary completed")
	})
	if err != nil {
		log.Fatalf("Failed to schedule reconciliation job: %v", err)
	}

	c.Start()
	log.Println("Cron scheduler started successfully")
	log.Println("Scheduled jobs:")
	log.Println("1. Payment reconciliation summary: every day at 02:00 UTC")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down cron scheduler...")

	stopCtx := c.Stop()
	<-stopCtx.Done()

	log.Println("Cron scheduler stopped successfully")
}
