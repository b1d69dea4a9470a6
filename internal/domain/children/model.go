package children

import "time"

// Gender define los valores usados por el formulario de registro.
type Gender string

const (
	GenderMale   Gender = "Male / ذكر"
	GenderFemale Gender = "Female / أنثى"
)

// Child representa un menor registrado en el sistema.
//
// SmartID nace vacío: el alta es en dos fases (insert, luego backfill del
// smart id una vez conocido el id autoincremental). Un lector concurrente
// puede observar un Child con SmartID == "" entre ambas fases.
type Child struct {
	ID int64

	FullName   string
	NationalID string // provisto externamente, no necesariamente único
	SmartID    string // derivado, inmutable una vez asignado

	BirthDate   time.Time // solo fecha, se persiste como YYYY-MM-DD
	Gender      string
	MotherID    string
	FatherID    string
	Governorate string

	CreatedAt time.Time // instante UTC
}
