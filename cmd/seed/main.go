package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/learnhub/learnhub-api/config"
	"github.com/learnhub/learnhub-api/internal/database/postgres"
	"github.com/learnhub/learnhub-api/pkg/db"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Creates an admin account. Intended for initial provisioning:
//
//	seed -username admin -password secret
func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -username <name> -password <password>")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: 2,
		MinConns: 1,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("Failed to hash password", zap.Error(err))
	}

	client := postgres.NewClient(pool)
	admin, err := client.CreateAdmin(ctx, *username, string(hash))
	if err != nil {
		logger.Fatal("Failed to create admin", zap.Error(err))
	}

	logger.Info("Admin account created",
		zap.Int("id", admin.ID),
		zap.String("username", admin.Username),
	)
}
