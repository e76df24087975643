package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/shared/database"
)

func main() {
	var driver string
	var command string

	flag.StringVar(&driver, "driver", "", "Database driver (postgres, sqlite); defaults to DB_DRIVER")
	flag.StringVar(&command, "cmd", "up", "Migration command (up, down, steps, version, force)")
	flag.Parse()

	// Load config
	cfg := config.LoadConfig()
	if driver == "" {
		driver = cfg.DBDriver
	}

	db, target, err := open(driver, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Printf("🔄 Running %s migrations", driver)
	log.Printf("💾 Database: %s", target)

	// Closing the migrate instance also closes db
	m, err := database.NewMigrator(driver, db)
	if err != nil {
		log.Fatalf("❌ Failed to create migrate instance: %v", err)
	}
	defer m.Close()

	// Execute command
	switch command {
	case "up":
		log.Println("⬆️  Running UP migrations...")
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("❌ Migration UP failed: %v", err)
		}
		log.Println("✅ Migrations UP completed!")

	case "down":
		log.Println("⬇️  Running DOWN migrations...")
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("❌ Migration DOWN failed: %v", err)
		}
		log.Println("✅ Migrations DOWN completed!")

	case "steps":
		n, err := intArg()
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		if err := m.Steps(n); err != nil {
			log.Fatalf("❌ Migration STEPS %d failed: %v", n, err)
		}
		log.Printf("✅ Migrated %d step(s)", n)

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("❌ Failed to get version: %v", err)
		}
		log.Printf("📌 Current version: %d (dirty: %t)", version, dirty)

	case "force":
		forceVersion, err := intArg()
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		if err := m.Force(forceVersion); err != nil {
			log.Fatalf("❌ Force failed: %v", err)
		}
		log.Printf("✅ Forced version to: %d", forceVersion)

	default:
		log.Fatalf("❌ Unknown command: %s (use: up, down, steps, version, force)", command)
	}
}

// open returns the connection and a loggable description of it
func open(driver string, cfg *config.Config) (*sql.DB, string, error) {
	switch driver {
	case config.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, "", errors.New("DATABASE_URL is empty")
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open postgres: %w", err)
		}
		return db, maskDatabaseURL(cfg.DatabaseURL), nil
	case config.DriverSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open sqlite: %w", err)
		}
		return db, cfg.SQLitePath, nil
	default:
		return nil, "", fmt.Errorf("nothing to migrate for driver %q (use postgres or sqlite)", driver)
	}
}

func intArg() (int, error) {
	if len(flag.Args()) < 1 {
		return 0, errors.New("please provide a number as the first argument")
	}
	n, err := strconv.Atoi(flag.Arg(0))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", flag.Arg(0), err)
	}
	return n, nil
}

// maskDatabaseURL hides password in database URL for logging
func maskDatabaseURL(url string) string {
	if len(url) < 20 {
		return "***"
	}
	return url[:20] + "***" + url[len(url)-10:]
}
