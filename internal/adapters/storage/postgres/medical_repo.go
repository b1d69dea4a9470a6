package postgres

import (
	"context"
	"database/sql"
	"strings"

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
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO medical_files (
			child_id, record_date,
			weight, height, bmi,
			vaccinations, diagnoses, medications, notes,
			files, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		e.ChildID,
		e.RecordDate,
		toNullFloat(e.Weight),
		toNullFloat(e.Height),
		toNullFloat(e.BMI),
		e.Vaccinations,
		e.Diagnoses,
		e.Medications,
		e.Notes,
		strings.Join(e.Files, ","),
		e.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, storage.Wrap("medical insert", err)
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
		WHERE child_id = $1
		ORDER BY id DESC
	`, childID)
	if err != nil {
		return nil, storage.Wrap("medical list", err)
	}
	defer rows.Close()

	out := make([]medical.Entry, 0)
	for rows.Next() {
		var e medical.Entry
		var rd sql.NullTime
		var weight, height, bmi sql.NullFloat64
		var files string

		if err := rows.Scan(
			&e.ID,
			&e.ChildID,
			&rd,
			&weight,
			&height,
			&bmi,
			&e.Vaccinations,
			&e.Diagnoses,
			&e.Medications,
			&e.Notes,
			&files,
			&e.CreatedAt,
		); err != nil {
			return nil, storage.Wrap("medical scan", err)
		}

		if rd.Valid {
			e.RecordDate = rd.Time
		}
		e.Weight = fromNullFloat(weight)
		e.Height = fromNullFloat(height)
		e.BMI = fromNullFloat(bmi)
		if files != "" {
			e.Files = strings.Split(files, ",")
		}
		out = append(out, e)
	}
	return out, storage.Wrap("medical list", rows.Err())
}

func (r *MedicalRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medical_files`)
	return storage.Wrap("medical delete all", err)
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
