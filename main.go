package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := repositories.OpenDatabase(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	opts := []services.Option{}
	eventsStatus := "disabled"
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.EventsQueue})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()

		if err := mqClient.ConsumeProductEvents(logProductEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
		opts = append(opts, services.WithPublisher(mqClient))
		eventsStatus = "connected"
	}

	facade := services.NewProductFacade(repositories.NewGORMProductStore(db), opts...)
	app := newApp(facade, eventsStatus)

	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// newApp wires the HTTP routes over the facade.
func newApp(facade *services.ProductFacade, eventsStatus string) *fiber.App {
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(facade).RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": eventsStatus,
		})
	})
	return app
}

func logProductEvent(event models.ProductEvent) error {
	log.Printf("Received %s for product %d (event %s)", event.Type, event.ProductID, event.ID)
	return nil
}
