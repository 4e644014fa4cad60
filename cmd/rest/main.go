package main

import (
	"context"
	"log"

	"inspire-it-be/internal/bootstrap"
	"inspire-it-be/internal/config"
	"inspire-it-be/internal/server"
	"inspire-it-be/internal/tracer"
	"inspire-it-be/pkg/database"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Open the document index DB when the pgvector variant is configured
	var gormDB *gorm.DB
	if cfg.Search.Provider == "pgvector" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Search.DatabaseDSN)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Verify search backend connectivity; a failure aborts startup
	if err := container.VerifyBackend(context.Background()); err != nil {
		log.Panicf("Search backend unreachable: %v", err)
	}
	color.Green("✅ Search backend connected (%s)", cfg.Search.Provider)

	// 6. Initialize and run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
