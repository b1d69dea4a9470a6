package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eohealth-registry/internal/adapters/storage"
	"eohealth-registry/internal/domain/children"
)

type ChildrenRepo struct {
	db *sql.DB
}

func NewChildrenRepo(db *sql.DB) *ChildrenRepo {
	return &ChildrenRepo{db: db}
}

func (r *ChildrenRepo) Create(ctx context.Context, c children.Child) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO children (
			full_name, national_id, smart_id,
			birth_date, gender, mother_id, father_id, governorate,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		c.FullName,
		c.NationalID,
		c.SmartID,
		c.BirthDate,
		c.Gender,
		c.MotherID,
		c.FatherID,
		c.Governorate,
		c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, storage.Wrap("children insert", err)
	}
	return id, nil
}

func (r *ChildrenRepo) SetSmartID(ctx context.Context, id int64, smartID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE children SET smart_id = $1 WHERE id = $2`, smartID, id)
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
		WHERE id = $1
	`, id)

	var c children.Child
	var bd sql.NullTime
	if err := row.Scan(
		&c.ID,
		&c.FullName,
		&c.NationalID,
		&c.SmartID,
		&bd,
		&c.Gender,
		&c.MotherID,
		&c.FatherID,
		&c.Governorate,
		&c.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return children.Child{}, storage.ErrNotFound
		}
		return children.Child{}, storage.Wrap("children get", err)
	}
	if bd.Valid {
		c.BirthDate = bd.Time
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
		var c children.Child
		var bd sql.NullTime
		if err := rows.Scan(
			&c.ID,
			&c.FullName,
			&c.NationalID,
			&c.SmartID,
			&bd,
			&c.Gender,
			&c.MotherID,
			&c.FatherID,
			&c.Governorate,
			&c.CreatedAt,
		); err != nil {
			return nil, storage.Wrap("children scan", err)
		}
		if bd.Valid {
			c.BirthDate = bd.Time
		}
		out = append(out, c)
	}
	return out, storage.Wrap("children list", rows.Err())
}

func (r *ChildrenRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM children`)
	return storage.Wrap("children delete all", err)
}
