package medical

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	RecordDate time.Time // cero = hoy

	Weight float64 // kg; <= 0 se guarda como ausente
	Height float64 // cm; <= 0 se guarda como ausente

	Vaccinations string
	Diagnoses    string
	Medications  string
	Notes        string
	Files        []string
}

// Create agrega una entrada clínica. El BMI se deriva acá, una sola vez,
// cuando peso y altura son positivos; después no se recalcula jamás
// (las entradas no tienen update). No se valida que childID exista.
func (s *Service) Create(ctx context.Context, childID int64, in CreateInput) (Entry, error) {
	if childID <= 0 {
		return Entry{}, ErrInvalidInput
	}

	now := s.now().UTC()

	rd := in.RecordDate
	if rd.IsZero() {
		rd = now
	}

	e := Entry{
		ChildID:      childID,
		RecordDate:   rd,
		Vaccinations: strings.TrimSpace(in.Vaccinations),
		Diagnoses:    strings.TrimSpace(in.Diagnoses),
		Medications:  strings.TrimSpace(in.Medications),
		Notes:        strings.TrimSpace(in.Notes),
		Files:        in.Files,
		CreatedAt:    now,
	}

	if in.Weight > 0 {
		w := in.Weight
		e.Weight = &w
	}
	if in.Height > 0 {
		h := in.Height
		e.Height = &h
	}
	if e.Weight != nil && e.Height != nil {
		bmi := BMI(*e.Weight, *e.Height)
		e.BMI = &bmi
	}

	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return Entry{}, err
	}

	e.ID = id
	return e, nil
}

func (s *Service) ListByChild(ctx context.Context, childID int64) ([]Entry, error) {
	if childID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByChild(ctx, childID)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// BMI calcula peso / (altura-en-metros)² redondeado a 2 decimales.
// La altura entra en centímetros, como en el formulario.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*100) / 100
}
