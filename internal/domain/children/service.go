package children

import (
	"context"
	"errors"
	"fmt"
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

type RegisterInput struct {
	FullName    string
	NationalID  string
	BirthDate   time.Time // cero = hoy
	Gender      string
	MotherID    string
	FatherID    string
	Governorate string
}

// Register ejecuta el alta en dos fases: inserta el registro sin smart id,
// y con el id ya durable genera y escribe el identificador. La secuencia
// no es atómica; entre fase 1 y 2 el registro existe con SmartID vacío.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Child, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return Child{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.NationalID) == "" {
		return Child{}, ErrInvalidInput
	}

	now := s.now().UTC()

	bd := in.BirthDate
	if bd.IsZero() {
		bd = now
	}

	c := Child{
		FullName:    strings.TrimSpace(in.FullName),
		NationalID:  strings.TrimSpace(in.NationalID),
		SmartID:     "",
		BirthDate:   bd,
		Gender:      strings.TrimSpace(in.Gender),
		MotherID:    strings.TrimSpace(in.MotherID),
		FatherID:    strings.TrimSpace(in.FatherID),
		Governorate: strings.TrimSpace(in.Governorate),
		CreatedAt:   now,
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return Child{}, err
	}

	smart := GenerateSmartID(id, s.now())
	found, err := s.repo.SetSmartID(ctx, id, smart)
	if err != nil {
		return Child{}, err
	}
	if !found {
		// Solo posible si alguien borró el registro entre las dos fases.
		return Child{}, fmt.Errorf("smart id backfill: child %d no longer exists", id)
	}

	c.ID = id
	c.SmartID = smart
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Child, error) {
	if id <= 0 {
		return Child{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Child, error) {
	return s.repo.List(ctx)
}

// Search filtra por nombre o national id (substring, case-insensitive).
// Se aplica sobre la lectura cacheada, igual que el buscador del tracker.
func (s *Service) Search(ctx context.Context, query string) ([]Child, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	out := make([]Child, 0)
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.FullName), q) ||
			strings.Contains(strings.ToLower(c.NationalID), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
