package artifacts

import (
	"unicode"

	"github.com/abdullahdiaa/garabic"
)

// shapeArabic aplica reshaping + reordenado bidi al texto árabe para que
// el motor de layout (que escribe LTR) lo muestre bien. Si el shaping
// falla por cualquier motivo se usa el texto tal cual; nunca corta el
// render del certificado.
func shapeArabic(s string) (out string) {
	if s == "" || !containsArabic(s) {
		return s
	}

	defer func() {
		if recover() != nil {
			out = s
		}
	}()

	return garabic.Shape(s)
}

func containsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
