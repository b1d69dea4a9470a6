package insights

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eohealth-registry/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/insights", func(ir chi.Router) {
		ir.Get("/alerts", alertsHandler(svc, log))
		ir.Get("/eco", ecoHandler(svc, log))
	})
}

func alertsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alerts, err := svc.VaccinationAlerts(r.Context())
		if err != nil {
			log.Warn("insights degraded to empty", map[string]any{"err": err.Error()})
			writeJSON(w, http.StatusOK, []Alert{})
			return
		}
		writeJSON(w, http.StatusOK, alerts)
	}
}

func ecoHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total := 0
		if list, err := svc.children.List(r.Context()); err != nil {
			log.Warn("eco totals degraded to zero", map[string]any{"err": err.Error()})
		} else {
			total = len(list)
		}

		writeJSON(w, http.StatusOK, struct {
			Registered int `json:"registered"`
			Savings
		}{
			Registered: total,
			Savings:    EstimateSavings(total),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
