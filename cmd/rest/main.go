package main

import (
	"context"
	"log"

	"birthplan-agent-be/internal/bootstrap"
	"birthplan-agent-be/internal/config"
	"birthplan-agent-be/internal/server"
	"birthplan-agent-be/internal/tracer"
	"birthplan-agent-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (only the gorm store needs it)
	var gormDB *gorm.DB
	if cfg.App.SessionStore == "gorm" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Delivery Service...")
		if err := container.DeliveryService.Consume(context.Background()); err != nil {
			log.Printf("Background Delivery Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
