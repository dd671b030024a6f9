package main

import (
	"context"
	"log"

	"aurora-fiscalizacao-be/internal/bootstrap"
	"aurora-fiscalizacao-be/internal/config"
	"aurora-fiscalizacao-be/internal/model"
	"aurora-fiscalizacao-be/internal/server"
	"aurora-fiscalizacao-be/internal/tracer"
	"aurora-fiscalizacao-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (disabled unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database (optional; the bot degrades to in-memory stores)
	var gormDB *gorm.DB
	if cfg.Database.Host != "" {
		db, err := database.NewGormDB(database.GormConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		if err := db.AutoMigrate(&model.ProtocolStatusRecord{}, &model.DialogueEventLog{}); err != nil {
			log.Printf("[WARN] AutoMigrate failed: %v", err)
		}
		gormDB = db
	} else {
		log.Println("[INFO] DB_HOST not set, running without a database")
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Intake Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
