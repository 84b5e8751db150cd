package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"omareats/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer app.Close()

	// Kitchen tickets are printed from the order queue when a broker is configured.
	if err := app.StartKitchenConsumer(); err != nil {
		log.Printf("Failed to start kitchen consumer: %v", err)
	}

	log.Printf("Starting server on port %s (cart backend: %s, order endpoint: %s)",
		cfg.AppPort, cfg.CartBackend, cfg.OrderEndpoint)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(shutdownTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
