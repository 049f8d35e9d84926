package storage

import (
	"context"
	"fmt"
	"math"
	"realtor-scraper/config"
	"realtor-scraper/models"
	"realtor-scraper/scraper/realtor"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresWriter appends each run's listings to an archive table. Rows are
// never updated or deduplicated; run_id and position identify them.
type PostgresWriter struct {
	pool *pgxpool.Pool
}

func NewPostgresWriter(ctx context.Context, cfg config.Postgres) (*PostgresWriter, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		cfg.SSLMode,
	)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	return &PostgresWriter{pool: pool}, nil
}

func (w *PostgresWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

func (w *PostgresWriter) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	sql := `
	CREATE TABLE IF NOT EXISTS realtor_listings (
		id BIGSERIAL PRIMARY KEY,
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		price TEXT,
		square_footage TEXT,
		square_feet INTEGER,
		street TEXT,
		city TEXT,
		province TEXT,
		link TEXT,
		scraped_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_realtor_listings_run ON realtor_listings(run_id);
	CREATE INDEX IF NOT EXISTS idx_realtor_listings_city ON realtor_listings(city);
	`

	if _, err := w.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

const insertSQL = `
	INSERT INTO realtor_listings (run_id, position, price, square_footage, square_feet, street, city, province, link)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

// WriteBatch inserts listings in one batch, in output order.
func (w *PostgresWriter) WriteBatch(ctx context.Context, runID string, listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	batch := &pgx.Batch{}
	for i, l := range listings {
		batch.Queue(insertSQL, archiveRow(runID, i, l)...)
	}

	results := w.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range listings {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
	}

	return nil
}

// archiveRow maps a listing to insert arguments. NotAvailable values and
// areas that do not fit the column are stored as NULL.
func archiveRow(runID string, position int, l models.Listing) []any {
	var sqft any
	if n, ok := realtor.SquareFeet(l.SquareFootage); ok && n <= math.MaxInt32 {
		sqft = n
	}
	return []any{
		runID,
		position,
		nullable(l.Price),
		nullable(l.SquareFootage),
		sqft,
		nullable(l.Street),
		nullable(l.City),
		nullable(l.Province),
		nullable(l.Link),
	}
}

func nullable(s string) any {
	if s == models.NotAvailable {
		return nil
	}
	return s
}
