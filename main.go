package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/HarshaLokesh/phronetic-ai/internal/config"
	"github.com/HarshaLokesh/phronetic-ai/internal/database"
	"github.com/HarshaLokesh/phronetic-ai/internal/router"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; environment variables override config.yaml either way
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log, err := setupLogger(cfg.Log)
	if err != nil {
		logrus.Fatalf("setup logger: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	r := router.SetupRouter(cfg, db, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.WithField("addr", addr).Info("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func setupLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	return log, nil
}
