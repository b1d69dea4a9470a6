package i18n

import "testing"

func TestParseLang(t *testing.T) {
	cases := []struct {
		in   string
		want Lang
	}{
		{"en", LangEnglish},
		{"EN", LangEnglish},
		{" en ", LangEnglish},
		{"ar", LangArabic},
		{"", LangArabic},
		{"fr", LangArabic}, // desconocido cae al default
	}
	for _, c := range cases {
		if got := ParseLang(c.in); got != c.want {
			t.Errorf("ParseLang(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestT(t *testing.T) {
	if got := T(LangEnglish, "registered"); got != "Registered successfully" {
		t.Fatalf("en registered = %q", got)
	}
	if got := T(LangArabic, "registered"); got != "تم التسجيل" {
		t.Fatalf("ar registered = %q", got)
	}
	// key desconocida: se devuelve la key misma
	if got := T(LangArabic, "no_such_key"); got != "no_such_key" {
		t.Fatalf("missing key = %q", got)
	}
}
