package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"eohealth-registry/internal/adapters/storage"
	"eohealth-registry/internal/domain/medical"
)

type MedicalRepo struct {
	db *sql.DB
}

func NewMedicalRepo(db *sql.DB) *MedicalRepo {
	return &MedicalRepo{db: db}
}

func (r *MedicalRepo) Create(ctx context.Context, e medical.Entry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_files (
			child_id, record_date,
			weight, height, bmi,
			vaccinations, diagnoses, medications, notes,
			files, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ChildID,
		e.RecordDate.Format(dateLayout),
		toNullFloat(e.Weight),
		toNullFloat(e.Height),
		toNullFloat(e.BMI),
		e.Vaccinations,
		e.Diagnoses,
		e.Medications,
		e.Notes,
		strings.Join(e.Files, ","),
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, storage.Wrap("medical insert", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storage.Wrap("medical insert id", err)
	}
	return id, nil
}

func (r *MedicalRepo) ListByChild(ctx context.Context, childID int64) ([]medical.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, child_id, record_date,
		       weight, height, bmi,
		       vaccinations, diagnoses, medications, notes,
		       files, created_at
		FROM medical_files
		WHERE child_id = ?
		ORDER BY id DESC
	`, childID)
	if err != nil {
		return nil, storage.Wrap("medical list", err)
	}
	defer rows.Close()

	out := make([]medical.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, storage.Wrap("medical scan", err)
		}
		out = append(out, e)
	}
	return out, storage.Wrap("medical list", rows.Err())
}

func (r *MedicalRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medical_files`)
	return storage.Wrap("medical delete all", err)
}

func scanEntry(row rowScanner) (medical.Entry, error) {
	var e medical.Entry
	var recordDate, createdAt, files string
	var weight, height, bmi sql.NullFloat64

	if err := row.Scan(
		&e.ID,
		&e.ChildID,
		&recordDate,
		&weight,
		&height,
		&bmi,
		&e.Vaccinations,
		&e.Diagnoses,
		&e.Medications,
		&e.Notes,
		&files,
		&createdAt,
	); err != nil {
		return medical.Entry{}, err
	}

	if t, err := time.Parse(dateLayout, recordDate); err == nil {
		e.RecordDate = t
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		e.CreatedAt = t
	}

	e.Weight = fromNullFloat(weight)
	e.Height = fromNullFloat(height)
	e.BMI = fromNullFloat(bmi)

	if files != "" {
		e.Files = strings.Split(files, ",")
	}
	return e, nil
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
