package insights

import (
	"context"
	"testing"
	"time"

	mem "eohealth-registry/internal/adapters/storage/memory"
	"eohealth-registry/internal/domain/children"
	"eohealth-registry/internal/domain/medical"
)

func newServices() (*Service, *children.Service, *medical.Service) {
	childrenSvc := children.NewService(mem.NewChildrenRepo())
	medicalSvc := medical.NewService(mem.NewMedicalRepo())
	return NewService(childrenSvc, medicalSvc), childrenSvc, medicalSvc
}

func TestVaccinationAlerts(t *testing.T) {
	svc, childrenSvc, medicalSvc := newServices()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()

	// mayor de 60 días, sin vacunas registradas: alerta.
	old, err := childrenSvc.Register(ctx, children.RegisterInput{
		FullName:   "Ahmed Ali",
		NationalID: "N1",
		BirthDate:  now.AddDate(0, 0, -120),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// mayor de 60 días pero con texto de vacunación: sin alerta.
	vaccinated, err := childrenSvc.Register(ctx, children.RegisterInput{
		FullName:   "Mariam Hassan",
		NationalID: "N2",
		BirthDate:  now.AddDate(0, 0, -120),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := medicalSvc.Create(ctx, vaccinated.ID, medical.CreateInput{
		Vaccinations: "BCG, Polio",
	}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	// recién nacido: fuera del umbral de edad aunque no tenga entradas.
	if _, err := childrenSvc.Register(ctx, children.RegisterInput{
		FullName:   "Yousef Said",
		NationalID: "N3",
		BirthDate:  now.AddDate(0, 0, -10),
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	alerts, err := svc.VaccinationAlerts(ctx)
	if err != nil {
		t.Fatalf("alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1: %+v", len(alerts), alerts)
	}
	a := alerts[0]
	if a.ChildID != old.ID || a.FullName != "Ahmed Ali" || a.Reason != "Missing vaccinations" {
		t.Fatalf("alert = %+v", a)
	}
}

func TestVaccinationAlerts_EntryWithoutVaccinationTextStillAlerts(t *testing.T) {
	svc, childrenSvc, medicalSvc := newServices()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ctx := context.Background()

	c, err := childrenSvc.Register(ctx, children.RegisterInput{
		FullName:   "Sara Mohamed",
		NationalID: "N4",
		BirthDate:  now.AddDate(0, 0, -200),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	// tiene historia clínica, pero ninguna menciona vacunas.
	if _, err := medicalSvc.Create(ctx, c.ID, medical.CreateInput{
		Diagnoses: "Mild fever",
		Notes:     "follow up in a week",
	}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	alerts, err := svc.VaccinationAlerts(ctx)
	if err != nil {
		t.Fatalf("alerts: %v", err)
	}
	if len(alerts) != 1 || alerts[0].ChildID != c.ID {
		t.Fatalf("alerts = %+v", alerts)
	}
}

func TestEstimateSavings(t *testing.T) {
	got := EstimateSavings(10)
	if got.SheetsSaved != 50 {
		t.Fatalf("sheets = %d", got.SheetsSaved)
	}
	if got.PaperKg != 0.225 {
		t.Fatalf("paper kg = %v", got.PaperKg)
	}
	if got.CO2Kg != 0.293 {
		t.Fatalf("co2 kg = %v", got.CO2Kg)
	}

	zero := EstimateSavings(0)
	if zero.SheetsSaved != 0 || zero.PaperKg != 0 || zero.CO2Kg != 0 {
		t.Fatalf("zero records should save nothing: %+v", zero)
	}
}
