package db

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is nil when DATABASE_URL is unset or unreachable; callers fall back
// to the live position feed when no store is available.
var Pool *pgxpool.Pool

var (
	newPool = pgxpool.New
	pingDB  = func(ctx context.Context, pool *pgxpool.Pool) error {
		return pool.Ping(ctx)
	}
)

// InitPostgres connects using DATABASE_URL. The position store is
// optional: failure here disables persistence, not the service.
func InitPostgres(ctx context.Context) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set, position store disabled")
		return
	}

	pool, err := newPool(ctx, dsn)
	if err != nil {
		log.Printf("invalid DATABASE_URL: %v, position store disabled", err)
		return
	}
	if err := pingDB(ctx, pool); err != nil {
		log.Printf("Postgres unreachable: %v, position store disabled", err)
		pool.Close()
		return
	}

	Pool = pool
	log.Println("Connected to Postgres")
}
