// Package main provides a CLI tool that creates the database schema and
// optionally seeds demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"dukkan/internal/core/id"
	"dukkan/internal/infrastructure/storage/postgres"
	"dukkan/pkg/logger"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cat_products (
		id          UUID PRIMARY KEY,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		name        TEXT NOT NULL,
		code        TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		stock       BIGINT NOT NULL DEFAULT 0,
		min_stock   BIGINT NOT NULL DEFAULT 0,
		price       NUMERIC(14,2) NOT NULL DEFAULT 0,
		cost_price  NUMERIC(14,2) NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		unit        TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS cat_customers (
		id          UUID PRIMARY KEY,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL,
		email       TEXT NOT NULL DEFAULT '',
		address     TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		total_spent NUMERIC(14,2) NOT NULL DEFAULT 0,
		visit_count BIGINT NOT NULL DEFAULT 0,
		last_visit  TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_cat_customers_phone
		ON cat_customers (phone)`,

	`CREATE TABLE IF NOT EXISTS reg_till_sessions (
		id             UUID PRIMARY KEY,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		opening_date   TIMESTAMPTZ NOT NULL,
		closing_date   TIMESTAMPTZ,
		opening_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		expected_cash  NUMERIC(14,2) NOT NULL DEFAULT 0,
		actual_cash    NUMERIC(14,2),
		difference     NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_cash_in  NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_cash_out NUMERIC(14,2) NOT NULL DEFAULT 0,
		status         TEXT NOT NULL,
		opened_by      TEXT NOT NULL DEFAULT '',
		closed_by      TEXT,
		notes          TEXT NOT NULL DEFAULT ''
	)`,
	// The application serializes opens through row locks; this index
	// backstops the single-open-session rule at the storage level.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_till_single_open
		ON reg_till_sessions (status) WHERE status = 'open'`,

	`CREATE TABLE IF NOT EXISTS reg_till_entries (
		id           UUID PRIMARY KEY,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL,
		session_id   UUID NOT NULL REFERENCES reg_till_sessions(id) ON DELETE CASCADE,
		type         TEXT NOT NULL,
		amount       NUMERIC(14,2) NOT NULL,
		category     TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		related_id   TEXT,
		related_type TEXT NOT NULL DEFAULT '',
		performed_by TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_till_entries_session
		ON reg_till_entries (session_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS reg_stock_movements (
		id             UUID PRIMARY KEY,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		product_id     UUID NOT NULL,
		product_name   TEXT NOT NULL DEFAULT '',
		product_code   TEXT NOT NULL DEFAULT '',
		type           TEXT NOT NULL,
		quantity       BIGINT NOT NULL,
		previous_stock BIGINT NOT NULL,
		new_stock      BIGINT NOT NULL,
		reason         TEXT NOT NULL DEFAULT '',
		related_id     TEXT,
		related_type   TEXT NOT NULL DEFAULT '',
		notes          TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_product
		ON reg_stock_movements (product_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS doc_sales (
		id             UUID PRIMARY KEY,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		customer_id    UUID NOT NULL,
		customer_name  TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		product_id     UUID NOT NULL,
		product_name   TEXT NOT NULL DEFAULT '',
		product_code   TEXT NOT NULL DEFAULT '',
		quantity       BIGINT NOT NULL,
		unit_price     NUMERIC(14,2) NOT NULL,
		total_price    NUMERIC(14,2) NOT NULL,
		type           TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		installments   INTEGER NOT NULL DEFAULT 1,
		notes          TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS doc_service_tickets (
		id             UUID PRIMARY KEY,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		customer_id    UUID,
		customer_name  TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		brand          TEXT NOT NULL DEFAULT '',
		model          TEXT NOT NULL DEFAULT '',
		problem        TEXT NOT NULL DEFAULT '',
		work_done      TEXT NOT NULL DEFAULT '',
		solution       TEXT NOT NULL DEFAULT '',
		parts_cost     NUMERIC(14,2) NOT NULL DEFAULT 0,
		labor_cost     NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_cost     NUMERIC(14,2) NOT NULL DEFAULT 0,
		status         TEXT NOT NULL,
		received_date  TIMESTAMPTZ NOT NULL,
		delivery_date  TIMESTAMPTZ,
		notes          TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS doc_service_parts (
		ticket_id    UUID NOT NULL REFERENCES doc_service_tickets(id) ON DELETE CASCADE,
		product_id   UUID NOT NULL,
		product_name TEXT NOT NULL DEFAULT '',
		product_code TEXT NOT NULL DEFAULT '',
		quantity     BIGINT NOT NULL,
		unit_price   NUMERIC(14,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_service_parts_ticket
		ON doc_service_parts (ticket_id)`,

	`CREATE TABLE IF NOT EXISTS doc_receivables (
		id             UUID PRIMARY KEY,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		customer_id    UUID NOT NULL,
		customer_name  TEXT NOT NULL DEFAULT '',
		customer_phone TEXT NOT NULL DEFAULT '',
		amount         NUMERIC(14,2) NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		kind           TEXT NOT NULL,
		status         TEXT NOT NULL,
		due_date       TIMESTAMPTZ,
		paid_date      TIMESTAMPTZ,
		notes          TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS sys_audit (
		id                 UUID PRIMARY KEY,
		entity_type        TEXT NOT NULL,
		entity_id          TEXT NOT NULL DEFAULT '',
		action             TEXT NOT NULL,
		user_name          TEXT NOT NULL DEFAULT '',
		changes            BYTEA,
		changes_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		created_at         TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sys_sequences (
		key         TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL DEFAULT 0
	)`,
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DUKKAN_DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DUKKAN_DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := applySchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema is up to date")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func applySchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM cat_products`).Scan(&count); err != nil {
		return fmt.Errorf("check products: %w", err)
	}
	if count > 0 {
		log.Info("demo data already present, skipping")
		return nil
	}

	now := time.Now()

	products := []struct {
		name     string
		code     string
		category string
		stock    int64
		minStock int64
		price    decimal.Decimal
		cost     decimal.Decimal
	}{
		{"Screen protector", "ACC-001", "accessories", 40, 10, decimal.NewFromInt(150), decimal.NewFromInt(60)},
		{"USB-C cable 1m", "ACC-002", "accessories", 25, 5, decimal.NewFromInt(120), decimal.NewFromInt(45)},
		{"Phone battery A54", "PRT-001", "parts", 8, 3, decimal.NewFromInt(650), decimal.NewFromInt(400)},
		{"Wireless earbuds", "ACC-003", "accessories", 12, 4, decimal.NewFromInt(900), decimal.NewFromInt(550)},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_products (id, created_at, updated_at, name, code, category,
				stock, min_stock, price, cost_price, description, unit)
			VALUES ($1, $2, $2, $3, $4, $5, $6, $7, $8, $9, '', 'pcs')`,
			id.New(), now, p.name, p.code, p.category, p.stock, p.minStock, p.price, p.cost,
		)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.code, err)
		}
	}
	log.Infow("seeded products", "count", len(products))

	customers := []struct {
		first, last, phone string
	}{
		{"Ayşe", "Yılmaz", "+90 532 000 11 22"},
		{"Mehmet", "Demir", "+90 541 333 44 55"},
	}
	for _, c := range customers {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_customers (id, created_at, updated_at, first_name, last_name,
				phone, email, address, notes, total_spent, visit_count)
			VALUES ($1, $2, $2, $3, $4, $5, '', '', '', 0, 0)`,
			id.New(), now, c.first, c.last, c.phone,
		)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", c.phone, err)
		}
	}
	log.Infow("seeded customers", "count", len(customers))

	return nil
}
