package main

import (
	"context"
	"log"

	"kb-assist-be/internal/bootstrap"
	"kb-assist-be/internal/config"
	"kb-assist-be/internal/server"
	"kb-assist-be/internal/tracer"
	"kb-assist-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Indexer Service...")
		if err := container.IndexerService.Consume(context.Background()); err != nil {
			log.Printf("Background Indexer Error: %v", err)
		}
	}()

	// 5. Initial corpus load (queues documents for indexing)
	if _, err := container.CorpusService.Reload(context.Background()); err != nil {
		log.Printf("[WARN] Initial corpus load failed: %v", err)
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
