package children

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"eohealth-registry/internal/adapters/storage"
	"eohealth-registry/internal/middleware"
	"eohealth-registry/internal/platform/i18n"
	"eohealth-registry/internal/platform/logger"
)

// RegisterRoutes monta el módulo de registro. qrPayload arma el payload
// del QR que devuelve el alta (variante de registro, con nombre), y
// issueCert emite el certificado best-effort; ambos pueden ser nil y los
// inyecta el router para no acoplar este paquete a artifacts.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, qrPayload func(Child) string, issueCert func(Child) error) {
	r.Route("/children", func(cr chi.Router) {
		cr.Post("/", registerChildHandler(svc, log, qrPayload, issueCert))
		cr.Get("/", listChildrenHandler(svc, log))
		cr.Get("/{childID}", getChildHandler(svc, log))
	})
}

type registerRequest struct {
	FullName    string `json:"full_name"`
	NationalID  string `json:"national_id"`
	BirthDate   string `json:"birth_date"` // YYYY-MM-DD opcional
	Gender      string `json:"gender"`
	MotherID    string `json:"mother_id"`
	FatherID    string `json:"father_id"`
	Governorate string `json:"governorate"`
}

type childResponse struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	NationalID  string    `json:"national_id"`
	SmartID     string    `json:"smart_id"`
	BirthDate   string    `json:"birth_date"`
	Gender      string    `json:"gender"`
	MotherID    string    `json:"mother_id"`
	FatherID    string    `json:"father_id"`
	Governorate string    `json:"governorate"`
	CreatedAt   time.Time `json:"created_at"`
}

type registerResponse struct {
	childResponse
	Message   string `json:"message"`
	QRPayload string `json:"qr_payload,omitempty"`
}

func registerChildHandler(svc *Service, log logger.Logger, qrPayload func(Child) string, issueCert func(Child) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.GetLang(r.Context())

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd time.Time
		if req.BirthDate != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = t
		}

		c, err := svc.Register(r.Context(), RegisterInput{
			FullName:    req.FullName,
			NationalID:  req.NationalID,
			BirthDate:   bd,
			Gender:      req.Gender,
			MotherID:    req.MotherID,
			FatherID:    req.FatherID,
			Governorate: req.Governorate,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, i18n.T(lang, "name_and_national_id_required"), http.StatusBadRequest)
				return
			}
			log.Error("register child failed", map[string]any{"err": err.Error()})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"warning": i18n.T(lang, "storage_unavailable"),
			})
			return
		}

		// Certificado eager como en el flujo original; si el render falla
		// se degrada a warning logueado, nunca corta el alta.
		if issueCert != nil {
			if err := issueCert(c); err != nil {
				log.Warn("certificate render failed", map[string]any{
					"child_id": c.ID,
					"err":      err.Error(),
				})
			}
		}

		resp := registerResponse{
			childResponse: toChildResponse(c),
			Message:       i18n.T(lang, "registered"),
		}
		if qrPayload != nil {
			resp.QRPayload = qrPayload(c)
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func listChildrenHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			// política de degradado: las lecturas nunca propagan la falla
			// del storage, devuelven secuencia vacía y queda logueado
			log.Warn("list children degraded to empty", map[string]any{"err": err.Error()})
			writeJSON(w, http.StatusOK, []childResponse{})
			return
		}

		out := make([]childResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toChildResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getChildHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := middleware.GetLang(r.Context())

		id, err := strconv.ParseInt(chi.URLParam(r, "childID"), 10, 64)
		if err != nil {
			http.Error(w, "child id must be numeric", http.StatusBadRequest)
			return
		}

		c, err := svc.GetByID(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, storage.ErrNotFound):
				http.Error(w, i18n.T(lang, "child_not_found"), http.StatusNotFound)
			default:
				log.Error("get child failed", map[string]any{"child_id": id, "err": err.Error()})
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"warning": i18n.T(lang, "storage_unavailable"),
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, toChildResponse(c))
	}
}

func toChildResponse(c Child) childResponse {
	return childResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		NationalID:  c.NationalID,
		SmartID:     c.SmartID,
		BirthDate:   c.BirthDate.Format("2006-01-02"),
		Gender:      c.Gender,
		MotherID:    c.MotherID,
		FatherID:    c.FatherID,
		Governorate: c.Governorate,
		CreatedAt:   c.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
