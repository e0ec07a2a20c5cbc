package repository

import (
	"context"

	"conviction-radar/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

// Raw records are stored exactly as fed, including their original date
// strings. Normalization happens in the engine on every run, never at
// write time, so a fix to the parser retroactively applies to stored
// datasets. Computed signals are never persisted.
const createPositionsTable = `
CREATE TABLE IF NOT EXISTS positions (
    symbol           TEXT             NOT NULL,
    option_type      TEXT             NOT NULL,
    strike           DOUBLE PRECISION NOT NULL,
    expiry           TEXT             NOT NULL,
    contracts        DOUBLE PRECISION NOT NULL,
    trade_date       TEXT             NOT NULL,
    original_premium DOUBLE PRECISION,
    current_premium  DOUBLE PRECISION,
    premium          DOUBLE PRECISION,
    PRIMARY KEY (symbol, option_type, strike, expiry, trade_date)
);

CREATE INDEX IF NOT EXISTS idx_positions_symbol
    ON positions (symbol);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PositionRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewPositionRepository(pool PgxPool, tracer trace.Tracer) *PositionRepository {
	return &PositionRepository{pool: pool, tracer: tracer}
}

func (r *PositionRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "position-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createPositionsTable)
	return err
}

func (r *PositionRepository) UpsertRecords(ctx context.Context, records []domain.RawTradeRecord) error {
	if len(records) == 0 {
		return nil
	}

	_, span := r.tracer.Start(ctx, "position-repo.upsert-records")
	defer span.End()

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO positions (symbol, option_type, strike, expiry, contracts, trade_date, original_premium, current_premium, premium)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (symbol, option_type, strike, expiry, trade_date) DO UPDATE SET
			     contracts = EXCLUDED.contracts,
			     original_premium = EXCLUDED.original_premium,
			     current_premium = EXCLUDED.current_premium,
			     premium = EXCLUDED.premium`,
			rec.Symbol, rec.Type, rec.Strike, rec.Expiry, rec.Contracts, rec.TradeDate,
			rec.OriginalPremium, rec.CurrentPremium, rec.Premium,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// ListTradeRecords returns the full stored dataset in a deterministic
// order so repeated engine runs over the same store produce identical
// reports.
func (r *PositionRepository) ListTradeRecords(ctx context.Context) ([]domain.RawTradeRecord, error) {
	_, span := r.tracer.Start(ctx, "position-repo.list-trade-records")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT symbol, option_type, strike, expiry, contracts, trade_date, original_premium, current_premium, premium
		 FROM positions
		 ORDER BY symbol, trade_date, option_type, strike, expiry`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RawTradeRecord
	for rows.Next() {
		var rec domain.RawTradeRecord
		if err := rows.Scan(&rec.Symbol, &rec.Type, &rec.Strike, &rec.Expiry, &rec.Contracts, &rec.TradeDate,
			&rec.OriginalPremium, &rec.CurrentPremium, &rec.Premium); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
