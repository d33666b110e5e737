package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"bookbrowser/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, reset, status, version, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if *command == "create" {
		if *name == "" {
			log.Fatal("Name is required for 'create' command")
		}
		if err := goose.Create(nil, cfg.MigrationsDir, *name, "sql"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		fmt.Printf("Migration created: %s\n", *name)
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	if err := run(ctx, *command, func(ctx context.Context, cmd string) error {
		return goose.RunContext(ctx, cmd, db, cfg.MigrationsDir)
	}); err != nil {
		log.Fatalf("Migration %s failed: %v", *command, err)
	}
	fmt.Printf("Migration %s completed (dir=%s)\n", *command, cfg.MigrationsDir)
}

var commands = map[string]bool{
	"up":      true,
	"down":    true,
	"reset":   true,
	"status":  true,
	"version": true,
}

func run(ctx context.Context, command string, exec func(ctx context.Context, cmd string) error) error {
	if !commands[command] {
		return fmt.Errorf("unknown command %q: use up, down, reset, status, version, create", command)
	}
	return exec(ctx, command)
}
