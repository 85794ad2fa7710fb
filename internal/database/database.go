package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Service wraps the connection pool used by every repository.
type Service interface {
	Health() map[string]string
	Pool() *pgxpool.Pool
	Close()
}

type service struct {
	pool *pgxpool.Pool
}

var (
	database = os.Getenv("DB_DATABASE")
	password = os.Getenv("DB_PASSWORD")
	username = os.Getenv("DB_USERNAME")
	port     = os.Getenv("DB_PORT")
	host     = os.Getenv("DB_HOST")
	sslMode  = os.Getenv("DB_SSLMODE")

	dbInstance *service
)

func connString(scheme string) string {
	ssl := sslMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s?sslmode=%s", scheme, username, password, host, port, database, ssl)
}

func New() Service {
	if dbInstance != nil {
		return dbInstance
	}

	pool, err := pgxpool.New(context.Background(), connString("postgres"))
	if err != nil {
		log.Fatal(err)
	}

	if err := runMigrations(); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	dbInstance = &service{pool: pool}
	return dbInstance
}

func runMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	// The pgx/v5 migrate driver registers itself under the pgx5 scheme.
	m, err := migrate.NewWithSourceInstance("iofs", src, connString("pgx5"))
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	poolStats := s.pool.Stat()
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["total_connections"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["idle_connections"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["acquired_connections"] = strconv.Itoa(int(poolStats.AcquiredConns()))

	return stats
}

func (s *service) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *service) Close() {
	log.Printf("Disconnected from database: %s", database)
	s.pool.Close()
}
