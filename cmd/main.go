package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/weworkhere/server/cmd/api"
	"github.com/weworkhere/server/cmd/models"
	"github.com/weworkhere/server/config"
	"github.com/weworkhere/server/db"
	"github.com/weworkhere/server/service/category"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations(cfg)
			return
		case "seed":
			runSeed(cfg)
			return
		default:
			log.Fatalf("Unknown command: %s", os.Args[1])
		}
	}

	startServer(cfg)
}

func openDatabase(cfg *config.Config) *gorm.DB {
	DB, err := db.NewPSQLStorage(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Database initialization error: %v", err)
	}
	return DB
}

func closeDatabase(DB *gorm.DB) {
	sqlDB, _ := DB.DB()
	sqlDB.Close()
	log.Println("Database connection closed")
}

func runMigrations(cfg *config.Config) {
	DB := openDatabase(cfg)
	defer closeDatabase(DB)
	log.Println("Connected to the database for migrations")

	if err := performMigrations(DB, cfg); err != nil {
		log.Fatalf("Migration error: %v", err)
	}
	log.Println("Migrations completed successfully")
}

func performMigrations(DB *gorm.DB, cfg *config.Config) error {
	migrations := []struct {
		model interface{}
		name  string
	}{
		{&models.User{}, "User"},
		{&models.Category{}, "Category"},
		{&models.Post{}, "Post"},
		{&models.PostImage{}, "PostImage"},
		{&models.Comment{}, "Comment"},
		{&models.Reaction{}, "Reaction"},
	}

	log.Println("Starting database migrations...")
	for _, m := range migrations {
		log.Printf("Migrating %s table...", m.name)
		if err := DB.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}

	if err := createDirectoryIfNotExist(cfg.UploadDir); err != nil {
		return err
	}
	log.Printf("Directory %s created/verified", cfg.UploadDir)

	return nil
}

func createDirectoryIfNotExist(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("could not create directory %s: %w", path, err)
		}
	}
	return nil
}

func runSeed(cfg *config.Config) {
	DB := openDatabase(cfg)
	defer closeDatabase(DB)

	if err := category.Seed(DB); err != nil {
		log.Fatalf("Seed error: %v", err)
	}
	log.Println("Default categories seeded")
}

func startServer(cfg *config.Config) {
	DB := openDatabase(cfg)
	defer closeDatabase(DB)
	log.Println("Connected to the database")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	server := api.NewApiServer(":"+cfg.ServerPort, DB, cfg)

	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Printf("Server running on port %s", cfg.ServerPort)

	<-quit
	log.Println("Shutting down server...")
}
