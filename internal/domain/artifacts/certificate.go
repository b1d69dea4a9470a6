package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"eohealth-registry/internal/domain/children"
)

var ErrRender = errors.New("render failure")

// Ruta típica de DejaVu en linux, como fallback si no hay Amiri local.
const dejavuLinuxPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"

// Renderer compone el certificado de nacimiento bilingüe (A4, PDF).
// Es una función pura del snapshot del Child: regenerarlo las veces que
// haga falta es seguro (el cache write-once de files.Store es solo una
// optimización).
type Renderer struct {
	fontPath string // "" => font core sin soporte árabe (degradado)
}

// NewRenderer resuelve la fuente una sola vez: prefiere Amiri en fontsDir,
// después DejaVu del sistema, y si no hay ninguna renderiza igual con la
// font core (los valores árabes salen ilegibles pero nada falla).
func NewRenderer(fontsDir string) *Renderer {
	r := &Renderer{}

	if fontsDir != "" {
		amiri := filepath.Join(fontsDir, "Amiri-Regular.ttf")
		if _, err := os.Stat(amiri); err == nil {
			r.fontPath = amiri
			return r
		}
	}
	if _, err := os.Stat(dejavuLinuxPath); err == nil {
		r.fontPath = dejavuLinuxPath
	}
	return r
}

// Certificate renderiza la página: título centrado, seis filas rotuladas
// (label inglés a la izquierda, valor shapeado a la derecha), QR con el
// CardPayload abajo a la izquierda y footer centrado.
func (r *Renderer) Certificate(c children.Child) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	font := "Helvetica"
	if r.fontPath != "" {
		pdf.AddUTF8Font("certfont", "", r.fontPath)
		font = "certfont"
	}

	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont(font, "", 20)
	pdf.SetXY(0, 15)
	pdf.CellFormat(pageW, 12, shapeArabic("Birth Certificate (Digital) — شهادة الميلاد الرقمية"), "", 0, "C", false, 0, "")

	lines := []struct {
		label string
		value string
	}{
		{"Child Name:", c.FullName},
		{"National ID:", c.NationalID},
		{"Birth Date:", c.BirthDate.Format("2006-01-02")},
		{"Gender:", c.Gender},
		{"Governorate:", c.Governorate},
		{"Smart Health ID:", c.SmartID},
	}

	pdf.SetFont(font, "", 12)
	startY := 45.0
	gap := 15.0
	for i, ln := range lines {
		y := startY + float64(i)*gap
		pdf.SetXY(15, y)
		pdf.CellFormat(80, 8, ln.label, "", 0, "L", false, 0, "")
		pdf.SetXY(105, y)
		pdf.CellFormat(pageW-120, 8, shapeArabic(ln.value), "", 0, "R", false, 0, "")
	}

	if png, err := QRPNG(CardPayload(c)); err == nil {
		opt := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("card-qr", opt, bytes.NewReader(png))
		pdf.ImageOptions("card-qr", 15, pageH-75, 45, 45, false, opt, 0, "")
	}

	pdf.SetFont(font, "", 11)
	pdf.SetXY(0, pageH-20)
	pdf.CellFormat(pageW, 8, "Issued by: EoHealth Egypt — Electronic Office for Health (Prototype)", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
