package cache

import (
	"context"
	"testing"

	mem "eohealth-registry/internal/adapters/storage/memory"
	"eohealth-registry/internal/domain/children"
	"eohealth-registry/internal/domain/medical"
)

// countingChildren cuenta los hits al repo real para verificar qué reads
// sirvió la cache.
type countingChildren struct {
	children.Repository
	listCalls int
}

func (c *countingChildren) List(ctx context.Context) ([]children.Child, error) {
	c.listCalls++
	return c.Repository.List(ctx)
}

type countingMedical struct {
	medical.Repository
	listCalls map[int64]int
}

func (c *countingMedical) ListByChild(ctx context.Context, childID int64) ([]medical.Entry, error) {
	c.listCalls[childID]++
	return c.Repository.ListByChild(ctx, childID)
}

func TestChildrenCache_ServesRepeatReadsFromCache(t *testing.T) {
	inner := &countingChildren{Repository: mem.NewChildrenRepo()}
	repo := NewChildrenRepo(inner)
	ctx := context.Background()

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if inner.listCalls != 1 {
		t.Fatalf("inner list calls = %d, want 1", inner.listCalls)
	}
}

func TestChildrenCache_ReadYourWritesAfterCreate(t *testing.T) {
	inner := &countingChildren{Repository: mem.NewChildrenRepo()}
	repo := NewChildrenRepo(inner)
	ctx := context.Background()

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	id, err := repo.Create(ctx, children.Child{FullName: "A", NationalID: "N"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != id {
		t.Fatalf("cache not invalidated after create: %+v", got)
	}
	if inner.listCalls != 2 {
		t.Fatalf("inner list calls = %d, want 2", inner.listCalls)
	}
}

func TestChildrenCache_InvalidatesOnSetSmartID(t *testing.T) {
	inner := &countingChildren{Repository: mem.NewChildrenRepo()}
	repo := NewChildrenRepo(inner)
	ctx := context.Background()

	id, err := repo.Create(ctx, children.Child{FullName: "A", NationalID: "N"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	found, err := repo.SetSmartID(ctx, id, "EOH-20240110-000001")
	if err != nil || !found {
		t.Fatalf("set smart id: found=%v err=%v", found, err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].SmartID != "EOH-20240110-000001" {
		t.Fatalf("stale smart id in cached read: %q", got[0].SmartID)
	}
}

func TestChildrenCache_SetSmartIDMissingIDDoesNotInvalidate(t *testing.T) {
	inner := &countingChildren{Repository: mem.NewChildrenRepo()}
	repo := NewChildrenRepo(inner)
	ctx := context.Background()

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	found, err := repo.SetSmartID(ctx, 999, "EOH-x")
	if err != nil {
		t.Fatalf("set smart id: %v", err)
	}
	if found {
		t.Fatal("expected found=false for missing id")
	}

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if inner.listCalls != 1 {
		t.Fatalf("no-op write should not invalidate, inner calls = %d", inner.listCalls)
	}
}

func TestChildrenCache_DeleteAllInvalidates(t *testing.T) {
	repo := NewChildrenRepo(mem.NewChildrenRepo())
	ctx := context.Background()

	if _, err := repo.Create(ctx, children.Child{FullName: "A", NationalID: "N"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty after wipe, got %d", len(got))
	}
}

func TestMedicalCache_PerChildKeying(t *testing.T) {
	inner := &countingMedical{Repository: mem.NewMedicalRepo(), listCalls: map[int64]int{}}
	repo := NewMedicalRepo(inner)
	ctx := context.Background()

	if _, err := repo.ListByChild(ctx, 1); err != nil {
		t.Fatalf("list child 1: %v", err)
	}
	if _, err := repo.ListByChild(ctx, 2); err != nil {
		t.Fatalf("list child 2: %v", err)
	}

	// una escritura sobre child 1 no toca la key del child 2
	if _, err := repo.Create(ctx, medical.Entry{ChildID: 1, Notes: "n"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.ListByChild(ctx, 1)
	if err != nil {
		t.Fatalf("list child 1: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("read-your-writes failed for child 1: %d entries", len(got))
	}

	if _, err := repo.ListByChild(ctx, 2); err != nil {
		t.Fatalf("list child 2: %v", err)
	}
	if inner.listCalls[2] != 1 {
		t.Fatalf("child 2 key was evicted, inner calls = %d", inner.listCalls[2])
	}
	if inner.listCalls[1] != 2 {
		t.Fatalf("child 1 should have refreshed, inner calls = %d", inner.listCalls[1])
	}
}

func TestMedicalCache_DeleteAllClearsEverything(t *testing.T) {
	repo := NewMedicalRepo(mem.NewMedicalRepo())
	ctx := context.Background()

	if _, err := repo.Create(ctx, medical.Entry{ChildID: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.ListByChild(ctx, 1); err != nil {
		t.Fatalf("warm: %v", err)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	got, err := repo.ListByChild(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty after wipe, got %d", len(got))
	}
}
