package children

import (
	"testing"
	"time"
)

func TestGenerateSmartID_Format(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

	got := GenerateSmartID(1, now)
	want := "EOH-20240110-000001"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGenerateSmartID_ZeroPadding(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	if got := GenerateSmartID(42, now); got != "EOH-20240110-000042" {
		t.Fatalf("got %q", got)
	}
	if got := GenerateSmartID(1234567, now); got != "EOH-20240110-1234567" {
		// más de 6 dígitos no se trunca, solo deja de padear
		t.Fatalf("got %q", got)
	}
}

func TestGenerateSmartID_DeterministicSameDay(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	later := time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)

	if GenerateSmartID(7, now) != GenerateSmartID(7, later) {
		t.Fatal("same id on same UTC day must generate identical strings")
	}
}

func TestGenerateSmartID_DistinctIDs(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	if GenerateSmartID(1, now) == GenerateSmartID(2, now) {
		t.Fatal("different ids must generate different strings")
	}
}

func TestGenerateSmartID_UsesUTCDate(t *testing.T) {
	// 23:30 del 1ro en UTC-3 ya es día 2 en UTC
	loc := time.FixedZone("UTC-3", -3*60*60)
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, loc)

	if got := GenerateSmartID(1, now); got != "EOH-20250602-000001" {
		t.Fatalf("got %q, want UTC date segment", got)
	}
}
