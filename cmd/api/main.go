package main

import (
	"log"
	"os"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/routes"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
)

func main() {
	// Initialize database and seed singleton rows
	config.InitDB()
	if err := business.Bootstrap(config.DB); err != nil {
		log.Fatal("Bootstrap failed:", err)
	}

	// Initialize RabbitMQ (optional, events fan out to the queue when configured)
	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()

		publisher, err := config.NewPublisher()
		if err != nil {
			log.Fatal("Create publisher failed:", err)
		}
		defer publisher.Close()

		business.RegisterEventSink(func(event models.SettlementEvent) {
			if err := publisher.Publish(config.QueueSettlementEvents, event); err != nil {
				log.Printf("Publish settlement event failed: %v", err)
			}
		})
		log.Println("RabbitMQ initialized successfully")
	} else {
		log.Println("RabbitMQ not configured, skipping initialization")
	}

	// Wire the websocket event stream
	handlers.InitEventStream()

	// Set up router
	r := routes.SetupRouter()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
