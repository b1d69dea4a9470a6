package children

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID   map[int64]Child
	nextID int64

	failCreate error
	// hook entre las dos fases del alta, para simular carreras
	afterCreate func(id int64)
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Child{}, nextID: 1}
}

func (r *testRepo) Create(ctx context.Context, c Child) (int64, error) {
	if r.failCreate != nil {
		return 0, r.failCreate
	}
	id := r.nextID
	r.nextID++
	c.ID = id
	r.byID[id] = c
	if r.afterCreate != nil {
		r.afterCreate(id)
	}
	return id, nil
}

func (r *testRepo) SetSmartID(ctx context.Context, id int64, smartID string) (bool, error) {
	c, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	c.SmartID = smartID
	r.byID[id] = c
	return true, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Child, error) {
	c, ok := r.byID[id]
	if !ok {
		return Child{}, errRepoNotFound
	}
	return c, nil
}

func (r *testRepo) List(ctx context.Context) ([]Child, error) {
	out := make([]Child, 0, len(r.byID))
	for id := r.nextID - 1; id >= 1; id-- {
		if c, ok := r.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteAll(ctx context.Context) error {
	r.byID = map[int64]Child{}
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_TwoPhase(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	c, err := svc.Register(context.Background(), RegisterInput{
		FullName:    "Test Child",
		NationalID:  "X1",
		BirthDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      string(GenderMale),
		Governorate: "Cairo",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if c.ID != 1 {
		t.Fatalf("expected id 1, got %d", c.ID)
	}
	if c.SmartID != "EOH-20240110-000001" {
		t.Fatalf("unexpected smart id %q", c.SmartID)
	}
	if !c.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", c.CreatedAt, now)
	}

	// lo persistido debe coincidir con lo devuelto (round-trip)
	stored, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.SmartID != c.SmartID || stored.FullName != "Test Child" || stored.NationalID != "X1" {
		t.Fatalf("stored record mismatch: %+v", stored)
	}
}

func TestService_Register_IDsStrictlyIncreasing(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) }

	var last int64
	for i := 0; i < 5; i++ {
		c, err := svc.Register(context.Background(), RegisterInput{
			FullName:   "Child",
			NationalID: "N",
		})
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		if c.ID <= last {
			t.Fatalf("id %d not strictly increasing after %d", c.ID, last)
		}
		last = c.ID
	}
}

func TestService_Register_ValidationErrors(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{NationalID: "X"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing name: got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{FullName: "A"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing national id: got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{FullName: "  ", NationalID: "X"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: got %v", err)
	}
}

func TestService_Register_DefaultsBirthDateToToday(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	c, err := svc.Register(context.Background(), RegisterInput{FullName: "A", NationalID: "B"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !c.BirthDate.Equal(now) {
		t.Fatalf("birth date = %v, want defaulted to now", c.BirthDate)
	}
}

func TestService_Register_SmartIDBackfillOnMissingRow(t *testing.T) {
	repo := newTestRepo()
	// simula que el registro desaparece entre fase 1 y fase 2
	repo.afterCreate = func(id int64) { delete(repo.byID, id) }

	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{FullName: "A", NationalID: "B"})
	if err == nil {
		t.Fatal("expected backfill error when the row vanished")
	}
}

func TestService_Register_StorageFailureSurfaces(t *testing.T) {
	repo := newTestRepo()
	repo.failCreate = errors.New("disk on fire")

	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{FullName: "A", NationalID: "B"}); err == nil {
		t.Fatal("expected storage error to surface")
	}
}

func TestService_Search(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) }

	mustRegister(t, svc, "Ahmed Ali", "T10000001")
	mustRegister(t, svc, "Mariam Hassan", "T10000002")

	got, err := svc.Search(context.Background(), "mariam")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Mariam Hassan" {
		t.Fatalf("unexpected result: %+v", got)
	}

	got, err = svc.Search(context.Background(), "T1000000")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("national id substring should match both, got %d", len(got))
	}

	got, err = svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("empty query should return all, got %d", len(got))
	}
}

func mustRegister(t *testing.T, svc *Service, name, nationalID string) Child {
	t.Helper()
	c, err := svc.Register(context.Background(), RegisterInput{FullName: name, NationalID: nationalID})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return c
}
