package artifacts

import (
	"bytes"
	"testing"
	"time"

	"eohealth-registry/internal/domain/children"
)

func sampleChild() children.Child {
	return children.Child{
		ID:          4,
		FullName:    "أحمد علي",
		NationalID:  "T10000001",
		SmartID:     "EOH-20240316-000004",
		BirthDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Gender:      string(children.GenderMale),
		Governorate: "Cairo",
	}
}

func TestPayloads(t *testing.T) {
	c := sampleChild()

	if got := CardPayload(c); got != "EOH-20240316-000004|T10000001" {
		t.Fatalf("card payload = %q", got)
	}
	if got := RegistrationPayload(c); got != "EOH-20240316-000004|أحمد علي|T10000001" {
		t.Fatalf("registration payload = %q", got)
	}
}

func TestQRPNG(t *testing.T) {
	png, err := QRPNG(CardPayload(sampleChild()))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("not a png, first bytes: %x", png[:8])
	}
}

func TestCertificate(t *testing.T) {
	// sin Amiri ni un fontsDir: cae a DejaVu del sistema o a la core, y
	// en ambos casos el render tiene que salir.
	r := NewRenderer(t.TempDir())

	pdf, err := r.Certificate(sampleChild())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("not a pdf, first bytes: %q", pdf[:8])
	}

	// el renderer es reutilizable: un segundo render no puede fallar ni
	// devolver vacío.
	again, err := r.Certificate(sampleChild())
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if len(again) == 0 {
		t.Fatal("second render empty")
	}
}

func TestShapeArabic(t *testing.T) {
	if got := shapeArabic("plain latin"); got != "plain latin" {
		t.Fatalf("latin text must pass through, got %q", got)
	}
	if got := shapeArabic(""); got != "" {
		t.Fatalf("empty in, %q out", got)
	}
	// texto árabe: el resultado shapeado nunca es vacío
	if got := shapeArabic("شهادة الميلاد"); got == "" {
		t.Fatal("shaping returned empty string")
	}
}
