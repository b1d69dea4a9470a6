package bulkload

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"eohealth-registry/internal/domain/children"
)

func exportFixture() []children.Child {
	bd := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 16, 10, 30, 0, 0, time.UTC)
	return []children.Child{
		{
			ID: 2, FullName: "Mariam Hassan", NationalID: "N2",
			SmartID: "EOH-20240316-000002", BirthDate: bd,
			Gender: string(children.GenderFemale), Governorate: "Giza",
			CreatedAt: created,
		},
		{
			ID: 1, FullName: "Ahmed Ali", NationalID: "N1",
			SmartID: "EOH-20240316-000001", BirthDate: bd,
			Gender: string(children.GenderMale), MotherID: "M1", FatherID: "F1",
			CreatedAt: created,
		},
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, exportFixture()); err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(records))
	}
	if got := strings.Join(records[0], ","); got != strings.Join(exportHeader, ",") {
		t.Fatalf("header = %q", got)
	}
	// conserva el orden de listado (más reciente primero)
	if records[1][0] != "2" || records[2][0] != "1" {
		t.Fatalf("row order: %v / %v", records[1], records[2])
	}
	if records[1][3] != "EOH-20240316-000002" {
		t.Fatalf("smart_id = %q", records[1][3])
	}
	if records[2][4] != "2024-03-15" {
		t.Fatalf("birth_date = %q", records[2][4])
	}
}

func TestExportXLSX_RoundTrip(t *testing.T) {
	data, err := ExportXLSX(exportFixture())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("children")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][1] != "full_name" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][1] != "Mariam Hassan" || rows[2][1] != "Ahmed Ali" {
		t.Fatalf("rows out of order: %v / %v", rows[1], rows[2])
	}
}

func TestDemoChildren(t *testing.T) {
	demo := DemoChildren()
	if len(demo) == 0 {
		t.Fatal("demo set is empty")
	}
	for i, in := range demo {
		if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.NationalID) == "" {
			t.Fatalf("demo row %d misses required fields: %+v", i, in)
		}
	}
}
