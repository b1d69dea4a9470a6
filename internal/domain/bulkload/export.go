package bulkload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"eohealth-registry/internal/domain/children"
)

// Columnas del export, en el orden exacto de la tabla persistida.
var exportHeader = []string{
	"id", "full_name", "national_id", "smart_id",
	"birth_date", "gender", "mother_id", "father_id", "governorate",
	"created_at",
}

func exportRow(c children.Child) []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.FullName,
		c.NationalID,
		c.SmartID,
		c.BirthDate.Format("2006-01-02"),
		c.Gender,
		c.MotherID,
		c.FatherID,
		c.Governorate,
		c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// ExportCSV vuelca la tabla completa, columna por columna, en el orden
// de listado recibido (más reciente primero).
func ExportCSV(w io.Writer, list []children.Child) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, c := range list {
		if err := cw.Write(exportRow(c)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportXLSX arma el mismo dump como planilla (hoja "children").
func ExportXLSX(list []children.Child) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "children"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, exportHeader); err != nil {
		return nil, err
	}
	for i, c := range list {
		if err := writeRow(f, sheet, i+2, exportRow(c)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
