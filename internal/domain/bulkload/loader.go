// Package bulkload ingesta lotes de filas externas (xlsx) reusando el
// mismo camino de alta en dos fases que el registro interactivo, y arma
// los exports (csv / xlsx) de la tabla completa.
package bulkload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"eohealth-registry/internal/domain/children"
)

var (
	// ErrMissingColumn corta el import completo antes de procesar
	// cualquier fila (validación all-or-nothing a nivel columnas).
	ErrMissingColumn = errors.New("missing required column")

	ErrEmptyFile = errors.New("empty import file")
)

var requiredColumns = []string{"full_name", "national_id"}

type Result struct {
	Inserted int
	Skipped  int
}

type Loader struct {
	children *children.Service
}

func NewLoader(childrenSvc *children.Service) *Loader {
	return &Loader{children: childrenSvc}
}

// ImportXLSX procesa la primera hoja: fila 1 es header. Columnas
// requeridas: full_name, national_id; opcionales: birth_date, gender,
// mother_id, father_id, governorate. Filas sin nombre o national id se
// saltean (contadas en Skipped); el resto de los defaults los aplica
// children.Service.Register (birth_date vacía = hoy).
func (l *Loader) ImportXLSX(ctx context.Context, r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Result{}, ErrEmptyFile
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var res Result
	for _, row := range rows[1:] {
		fullName := cell(row, "full_name")
		nationalID := cell(row, "national_id")
		if fullName == "" || nationalID == "" {
			res.Skipped++
			continue
		}

		var bd time.Time
		if raw := cell(row, "birth_date"); raw != "" {
			if t, err := time.Parse("2006-01-02", raw); err == nil {
				bd = t
			}
		}

		_, err := l.children.Register(ctx, children.RegisterInput{
			FullName:    fullName,
			NationalID:  nationalID,
			BirthDate:   bd,
			Gender:      cell(row, "gender"),
			MotherID:    cell(row, "mother_id"),
			FatherID:    cell(row, "father_id"),
			Governorate: cell(row, "governorate"),
		})
		if err != nil {
			if errors.Is(err, children.ErrInvalidInput) {
				res.Skipped++
				continue
			}
			// falla de storage a mitad del lote: se devuelve el parcial
			return res, err
		}
		res.Inserted++
	}

	return res, nil
}
