package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para el perfil single-node
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea las dos tablas si no existen. Sin FK en child_id:
// la referencia queda sin enforcement igual que en los otros backends.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS children (
		id BIGSERIAL PRIMARY KEY,
		full_name TEXT NOT NULL DEFAULT '',
		national_id TEXT NOT NULL DEFAULT '',
		smart_id TEXT NOT NULL DEFAULT '',
		birth_date DATE,
		gender TEXT NOT NULL DEFAULT '',
		mother_id TEXT NOT NULL DEFAULT '',
		father_id TEXT NOT NULL DEFAULT '',
		governorate TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return fmt.Errorf("create children table: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS medical_files (
		id BIGSERIAL PRIMARY KEY,
		child_id BIGINT NOT NULL,
		record_date DATE,
		weight DOUBLE PRECISION,
		height DOUBLE PRECISION,
		bmi DOUBLE PRECISION,
		vaccinations TEXT NOT NULL DEFAULT '',
		diagnoses TEXT NOT NULL DEFAULT '',
		medications TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		files TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return fmt.Errorf("create medical_files table: %w", err)
	}

	return nil
}
