package bulkload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eohealth-registry/internal/domain/children"
	"eohealth-registry/internal/domain/medical"
	"eohealth-registry/internal/middleware"
	"eohealth-registry/internal/platform/i18n"
	"eohealth-registry/internal/platform/logger"
)

const maxImportBytes = 32 << 20

// RegisterRoutes monta la superficie administrativa: import/export,
// wipe total y datos demo.
func RegisterRoutes(r chi.Router, loader *Loader, childrenSvc *children.Service, medicalSvc *medical.Service, log logger.Logger) {
	r.Route("/admin", func(ar chi.Router) {
		ar.Post("/import", importHandler(loader, log))
		ar.Get("/export.csv", exportCSVHandler(childrenSvc, log))
		ar.Get("/export.xlsx", exportXLSXHandler(childrenSvc, log))
		ar.Delete("/records", wipeHandler(childrenSvc, medicalSvc, log))
		ar.Post("/demo", demoHandler(childrenSvc, log))
	})
}

type importResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
}

func importHandler(loader *Loader, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.GetLang(r.Context())

		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file field", http.StatusBadRequest)
			return
		}
		defer f.Close()

		res, err := loader.ImportXLSX(r.Context(), f)
		if err != nil {
			if errors.Is(err, ErrMissingColumn) || errors.Is(err, ErrEmptyFile) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			// falla de storage a mitad del lote: informamos el parcial
			log.Error("bulk import aborted", map[string]any{
				"inserted": res.Inserted,
				"skipped":  res.Skipped,
				"err":      err.Error(),
			})
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"warning":  i18n.T(lang, "storage_unavailable"),
				"inserted": res.Inserted,
			})
			return
		}

		writeJSON(w, http.StatusOK, importResponse{
			Message:  i18n.T(lang, "imported"),
			Inserted: res.Inserted,
			Skipped:  res.Skipped,
		})
	}
}

func exportCSVHandler(childrenSvc *children.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := childrenSvc.List(r.Context())
		if err != nil {
			// export degradado: solo el header, misma política que listas
			log.Warn("export csv degraded to empty", map[string]any{"err": err.Error()})
			list = nil
		}

		var buf bytes.Buffer
		if err := ExportCSV(&buf, list); err != nil {
			log.Error("export csv failed", map[string]any{"err": err.Error()})
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename=children.csv`)
		_, _ = w.Write(buf.Bytes())
	}
}

func exportXLSXHandler(childrenSvc *children.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := childrenSvc.List(r.Context())
		if err != nil {
			log.Warn("export xlsx degraded to empty", map[string]any{"err": err.Error()})
			list = nil
		}

		b, err := ExportXLSX(list)
		if err != nil {
			log.Error("export xlsx failed", map[string]any{"err": err.Error()})
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename=children.xlsx`)
		_, _ = w.Write(b)
	}
}

func wipeHandler(childrenSvc *children.Service, medicalSvc *medical.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.GetLang(r.Context())

		// entradas primero, después children: mismo orden que el reset
		// original (no hay FK cascade de la que depender)
		if err := medicalSvc.DeleteAll(r.Context()); err != nil {
			log.Error("wipe medical entries failed", map[string]any{"err": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"warning": i18n.T(lang, "storage_unavailable"),
			})
			return
		}
		if err := childrenSvc.DeleteAll(r.Context()); err != nil {
			log.Error("wipe children failed", map[string]any{"err": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"warning": i18n.T(lang, "storage_unavailable"),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": i18n.T(lang, "db_cleared"),
		})
	}
}

func demoHandler(childrenSvc *children.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.GetLang(r.Context())

		inserted := 0
		for _, in := range DemoChildren() {
			if _, err := childrenSvc.Register(r.Context(), in); err != nil {
				log.Error("demo insert failed", map[string]any{
					"inserted": inserted,
					"err":      err.Error(),
				})
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{
					"warning":  i18n.T(lang, "storage_unavailable"),
					"inserted": inserted,
				})
				return
			}
			inserted++
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message":  fmt.Sprintf("%s: %d", i18n.T(lang, "imported"), inserted),
			"inserted": inserted,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
