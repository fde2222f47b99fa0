package main

import (
	"context"
	"log"

	"db-qa-be/internal/bootstrap"
	"db-qa-be/internal/config"
	"db-qa-be/internal/server"
	"db-qa-be/internal/tracer"
	"db-qa-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.Open(cfg.Database.Kind, cfg.Database.DSN(), cfg.App.Debug)
	if err != nil {
		log.Panicf("Unable to connect to database: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.SysLogger.Sync()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
