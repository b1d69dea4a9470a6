package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // driver sqlite puro Go
)

// Open abre (o crea) la base sqlite y asegura el esquema. Es el mismo
// esquema de dos tablas del prototipo: children y medical_files. Nota:
// child_id no lleva FOREIGN KEY a propósito, la referencia queda sin
// enforcement (gap conocido, ver DESIGN.md).
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = "eohealth_main.db"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Un solo writer: sqlite serializa escrituras; más conexiones solo
	// suman SQLITE_BUSY en este perfil de uso.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS children (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT,
		national_id TEXT,
		smart_id TEXT,
		birth_date TEXT,
		gender TEXT,
		mother_id TEXT,
		father_id TEXT,
		governorate TEXT,
		created_at TEXT
	)`); err != nil {
		return fmt.Errorf("create children table: %w", err)
	}

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS medical_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		child_id INTEGER,
		record_date TEXT,
		weight REAL,
		height REAL,
		bmi REAL,
		vaccinations TEXT,
		diagnoses TEXT,
		medications TEXT,
		notes TEXT,
		files TEXT,
		created_at TEXT
	)`); err != nil {
		return fmt.Errorf("create medical_files table: %w", err)
	}

	return nil
}
