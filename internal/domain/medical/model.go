package medical

import "time"

// Entry es una observación clínica fechada de un Child. Las entradas son
// append-only: no existe update ni delete individual, solo el wipe masivo.
//
// ChildID es una referencia sin enforcement: el store no valida que el
// Child exista, así que una entrada huérfana es posible (gap conocido,
// heredado del prototipo; ver DESIGN.md).
type Entry struct {
	ID      int64
	ChildID int64

	RecordDate time.Time // solo fecha

	Weight *float64 // kg, > 0 si presente
	Height *float64 // cm, > 0 si presente
	BMI    *float64 // derivado al insertar, nunca recalculado

	Vaccinations string
	Diagnoses    string
	Medications  string
	Notes        string

	// Rutas de archivos adjuntos; se persisten unidas por coma.
	Files []string

	CreatedAt time.Time
}
