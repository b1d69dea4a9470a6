package middleware

import (
	"context"
	"net/http"

	"eohealth-registry/internal/platform/i18n"
)

type ctxKey string

const langKey ctxKey = "lang"

// LangContext resuelve el idioma del request y lo deja en el context:
// - header X-Lang (ar|en), o query ?lang=
// - default: ar (igual que el prototipo)
// Los handlers leen con GetLang; el core nunca ve estado global de sesión.
func LangContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Lang")
		if raw == "" {
			raw = r.URL.Query().Get("lang")
		}
		ctx := context.WithValue(r.Context(), langKey, i18n.ParseLang(raw))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetLang(ctx context.Context) i18n.Lang {
	if v, ok := ctx.Value(langKey).(i18n.Lang); ok {
		return v
	}
	return i18n.LangArabic
}
