package medical

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"eohealth-registry/internal/middleware"
	"eohealth-registry/internal/platform/i18n"
	"eohealth-registry/internal/platform/logger"
)

// AttachmentSaver persiste un archivo subido y devuelve la ruta guardada.
// Lo implementa files.Store.
type AttachmentSaver interface {
	SaveAttachment(childID int64, ts time.Time, originalName string, r io.Reader) (string, error)
}

const maxUploadBytes = 32 << 20

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, attachments AttachmentSaver) {
	r.Route("/children/{childID}/records", func(rr chi.Router) {
		rr.Post("/", createEntryHandler(svc, log, attachments))
		rr.Get("/", listEntriesHandler(svc, log))
	})
}

type createEntryRequest struct {
	RecordDate   string  `json:"record_date"` // YYYY-MM-DD opcional
	Weight       float64 `json:"weight"`
	Height       float64 `json:"height"`
	Vaccinations string  `json:"vaccinations"`
	Diagnoses    string  `json:"diagnoses"`
	Medications  string  `json:"medications"`
	Notes        string  `json:"notes"`
}

type entryResponse struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	RecordDate   string    `json:"record_date"`
	Weight       *float64  `json:"weight,omitempty"`
	Height       *float64  `json:"height,omitempty"`
	BMI          *float64  `json:"bmi,omitempty"`
	Vaccinations string    `json:"vaccinations"`
	Diagnoses    string    `json:"diagnoses"`
	Medications  string    `json:"medications"`
	Notes        string    `json:"notes"`
	Files        []string  `json:"files"`
	CreatedAt    time.Time `json:"created_at"`
}

// createEntryHandler acepta JSON (solo campos) o multipart/form-data
// (campos + adjuntos en "files"), que son los dos flujos del original:
// tracker de vacunación y ficha médica con uploads.
func createEntryHandler(svc *Service, log logger.Logger, attachments AttachmentSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.GetLang(r.Context())

		childID, err := strconv.ParseInt(chi.URLParam(r, "childID"), 10, 64)
		if err != nil || childID <= 0 {
			http.Error(w, "child id must be numeric", http.StatusBadRequest)
			return
		}

		var req createEntryRequest
		var saved []string

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				http.Error(w, "invalid multipart form", http.StatusBadRequest)
				return
			}

			req.RecordDate = r.FormValue("record_date")
			req.Weight = parseFloat(r.FormValue("weight"))
			req.Height = parseFloat(r.FormValue("height"))
			req.Vaccinations = r.FormValue("vaccinations")
			req.Diagnoses = r.FormValue("diagnoses")
			req.Medications = r.FormValue("medications")
			req.Notes = r.FormValue("notes")

			if attachments != nil && r.MultipartForm != nil {
				now := time.Now()
				for _, fh := range r.MultipartForm.File["files"] {
					f, err := fh.Open()
					if err != nil {
						http.Error(w, "cannot read upload", http.StatusBadRequest)
						return
					}
					path, err := attachments.SaveAttachment(childID, now, fh.Filename, f)
					f.Close()
					if err != nil {
						log.Error("save attachment failed", map[string]any{
							"child_id": childID,
							"file":     fh.Filename,
							"err":      err.Error(),
						})
						writeJSON(w, http.StatusServiceUnavailable, map[string]string{
							"warning": i18n.T(lang, "storage_unavailable"),
						})
						return
					}
					saved = append(saved, path)
				}
			}
		} else {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		var rd time.Time
		if req.RecordDate != "" {
			t, err := time.Parse("2006-01-02", req.RecordDate)
			if err != nil {
				http.Error(w, "record_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			rd = t
		}

		e, err := svc.Create(r.Context(), childID, CreateInput{
			RecordDate:   rd,
			Weight:       req.Weight,
			Height:       req.Height,
			Vaccinations: req.Vaccinations,
			Diagnoses:    req.Diagnoses,
			Medications:  req.Medications,
			Notes:        req.Notes,
			Files:        saved,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("create medical entry failed", map[string]any{
				"child_id": childID,
				"err":      err.Error(),
			})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"warning": i18n.T(lang, "storage_unavailable"),
			})
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			entryResponse
			Message string `json:"message"`
		}{
			entryResponse: toEntryResponse(e),
			Message:       i18n.T(lang, "medical_record_saved"),
		})
	}
}

func listEntriesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, err := strconv.ParseInt(chi.URLParam(r, "childID"), 10, 64)
		if err != nil || childID <= 0 {
			http.Error(w, "child id must be numeric", http.StatusBadRequest)
			return
		}

		items, err := svc.ListByChild(r.Context(), childID)
		if err != nil {
			log.Warn("list medical entries degraded to empty", map[string]any{
				"child_id": childID,
				"err":      err.Error(),
			})
			writeJSON(w, http.StatusOK, []entryResponse{})
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toEntryResponse(e Entry) entryResponse {
	files := e.Files
	if files == nil {
		files = []string{}
	}
	return entryResponse{
		ID:           e.ID,
		ChildID:      e.ChildID,
		RecordDate:   e.RecordDate.Format("2006-01-02"),
		Weight:       e.Weight,
		Height:       e.Height,
		BMI:          e.BMI,
		Vaccinations: e.Vaccinations,
		Diagnoses:    e.Diagnoses,
		Medications:  e.Medications,
		Notes:        e.Notes,
		Files:        files,
		CreatedAt:    e.CreatedAt,
	}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
