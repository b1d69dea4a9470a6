package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eohealth-registry/internal/adapters/storage"
	"eohealth-registry/internal/domain/children"
)

const (
	dateLayout = "2006-01-02"
)

type ChildrenRepo struct {
	db *sql.DB
}

func NewChildrenRepo(db *sql.DB) *ChildrenRepo {
	return &ChildrenRepo{db: db}
}

func (r *ChildrenRepo) Create(ctx context.Context, c children.Child) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO children (
			full_name, national_id, smart_id,
			birth_date, gender, mother_id, father_id, governorate,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.FullName,
		c.NationalID,
		c.SmartID,
		c.BirthDate.Format(dateLayout),
		c.Gender,
		c.MotherID,
		c.FatherID,
		c.Governorate,
		c.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, storage.Wrap("children insert", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storage.Wrap("children insert id", err)
	}
	return id, nil
}

func (r *ChildrenRepo) SetSmartID(ctx context.Context, id int64, smartID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE children SET smart_id = ? WHERE id = ?`, smartID, id)
	if err != nil {
		return false, storage.Wrap("children set smart id", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storage.Wrap("children set smart id", err)
	}
	return n > 0, nil
}

func (r *ChildrenRepo) GetByID(ctx context.Context, id int64) (children.Child, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, national_id, smart_id,
		       birth_date, gender, mother_id, father_id, governorate,
		       created_at
		FROM children
		WHERE id = ?
	`, id)

	c, err := scanChild(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return children.Child{}, storage.ErrNotFound
		}
		return children.Child{}, storage.Wrap("children get", err)
	}
	return c, nil
}

func (r *ChildrenRepo) List(ctx context.Context) ([]children.Child, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, national_id, smart_id,
		       birth_date, gender, mother_id, father_id, governorate,
		       created_at
		FROM children
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, storage.Wrap("children list", err)
	}
	defer rows.Close()

	out := make([]children.Child, 0)
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, storage.Wrap("children scan", err)
		}
		out = append(out, c)
	}
	return out, storage.Wrap("children list", rows.Err())
}

func (r *ChildrenRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM children`)
	return storage.Wrap("children delete all", err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChild(row rowScanner) (children.Child, error) {
	var c children.Child
	var birthDate, createdAt string

	if err := row.Scan(
		&c.ID,
		&c.FullName,
		&c.NationalID,
		&c.SmartID,
		&birthDate,
		&c.Gender,
		&c.MotherID,
		&c.FatherID,
		&c.Governorate,
		&createdAt,
	); err != nil {
		return children.Child{}, err
	}

	// fechas guardadas como texto, igual que el prototipo
	if t, err := time.Parse(dateLayout, birthDate); err == nil {
		c.BirthDate = t
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}
