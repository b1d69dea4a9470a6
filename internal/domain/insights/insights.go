// Package insights son las reglas de umbral fijo del dashboard (no hay
// ML real; el prototipo lo decía explícito y acá sigue igual).
package insights

import (
	"context"
	"math"
	"strings"
	"time"

	"eohealth-registry/internal/domain/children"
	"eohealth-registry/internal/domain/medical"
)

// sampleLimit replica el head(200) del prototipo: las reglas corren sobre
// los 200 registros más recientes, no sobre la tabla entera.
const sampleLimit = 200

// missingVaccinationAgeDays es la edad a partir de la cual un child sin
// notas de vacunación dispara alerta.
const missingVaccinationAgeDays = 60

type Alert struct {
	ChildID  int64  `json:"child_id"`
	FullName string `json:"full_name"`
	Reason   string `json:"reason"`
}

type Service struct {
	children *children.Service
	medical  *medical.Service
	now      func() time.Time
}

func NewService(childrenSvc *children.Service, medicalSvc *medical.Service) *Service {
	return &Service{
		children: childrenSvc,
		medical:  medicalSvc,
		now:      time.Now,
	}
}

// VaccinationAlerts lista los children de más de 60 días sin ningún texto
// de vacunación en sus entradas clínicas.
func (s *Service) VaccinationAlerts(ctx context.Context) ([]Alert, error) {
	all, err := s.children.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > sampleLimit {
		all = all[:sampleLimit]
	}

	today := s.now().UTC()
	out := make([]Alert, 0)

	for _, c := range all {
		ageDays := int(today.Sub(c.BirthDate).Hours() / 24)
		if ageDays <= missingVaccinationAgeDays {
			continue
		}

		entries, err := s.medical.ListByChild(ctx, c.ID)
		if err != nil {
			// un child ilegible no corta el barrido completo
			continue
		}

		hasVacc := false
		for _, e := range entries {
			if strings.TrimSpace(e.Vaccinations) != "" {
				hasVacc = true
				break
			}
		}
		if !hasVacc {
			out = append(out, Alert{
				ChildID:  c.ID,
				FullName: c.FullName,
				Reason:   "Missing vaccinations",
			})
		}
	}

	return out, nil
}

// Savings son los números del eco dashboard, derivados del total de
// registros digitales.
type Savings struct {
	SheetsSaved int     `json:"sheets_saved"`
	PaperKg     float64 `json:"paper_kg"`
	CO2Kg       float64 `json:"co2_kg"`
}

const papersPerRecord = 5

// EstimateSavings: cada registro digital ahorra 5 hojas; 0.0045 kg por
// hoja; 1.3 kg de CO2 por kg de papel. Redondeo a 3 decimales.
func EstimateSavings(totalRecords int) Savings {
	sheets := totalRecords * papersPerRecord
	paperKg := round3(float64(sheets) * 0.0045)
	co2Kg := round3(paperKg * 1.3)
	return Savings{SheetsSaved: sheets, PaperKg: paperKg, CO2Kg: co2Kg}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
