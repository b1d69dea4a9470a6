package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"eohealth-registry/internal/adapters/storage"
	"eohealth-registry/internal/domain/children"
	"eohealth-registry/internal/middleware"
	"eohealth-registry/internal/platform/i18n"
	"eohealth-registry/internal/platform/logger"
)

// CertificateCache es el cache write-once por child id (files.Store).
type CertificateCache interface {
	CertificateOnce(childID int64, render func() ([]byte, error)) ([]byte, error)
}

// RegisterRoutes monta la tarjeta digital (QR) y la descarga del
// certificado de nacimiento.
func RegisterRoutes(r chi.Router, childrenSvc *children.Service, renderer *Renderer, certs CertificateCache, log logger.Logger) {
	r.Get("/children/{childID}/card", cardHandler(childrenSvc, log))
	r.Get("/children/{childID}/certificate", certificateHandler(childrenSvc, renderer, certs, log))
}

func cardHandler(childrenSvc *children.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.GetLang(r.Context())

		c, ok := loadChild(w, r, childrenSvc, log, lang)
		if !ok {
			return
		}

		png, err := QRPNG(CardPayload(c))
		if err != nil {
			log.Warn("card qr render failed", map[string]any{"child_id": c.ID, "err": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"warning": "card unavailable"})
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=child_%d_qr.png", c.ID))
		_, _ = w.Write(png)
	}
}

func certificateHandler(childrenSvc *children.Service, renderer *Renderer, certs CertificateCache, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.GetLang(r.Context())

		c, ok := loadChild(w, r, childrenSvc, log, lang)
		if !ok {
			return
		}

		render := func() ([]byte, error) { return renderer.Certificate(c) }

		var pdf []byte
		var err error
		if certs != nil {
			pdf, err = certs.CertificateOnce(c.ID, render)
		} else {
			pdf, err = render()
		}
		if err != nil {
			log.Warn("certificate render failed", map[string]any{"child_id": c.ID, "err": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"warning": "certificate unavailable"})
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=birth_certificate_%d.pdf", c.ID))
		_, _ = w.Write(pdf)
	}
}

func loadChild(w http.ResponseWriter, r *http.Request, svc *children.Service, log logger.Logger, lang i18n.Lang) (children.Child, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "childID"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "child id must be numeric", http.StatusBadRequest)
		return children.Child{}, false
	}

	c, err := svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, i18n.T(lang, "child_not_found"), http.StatusNotFound)
		} else {
			log.Error("get child failed", map[string]any{"child_id": id, "err": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"warning": i18n.T(lang, "storage_unavailable"),
			})
		}
		return children.Child{}, false
	}
	return c, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
