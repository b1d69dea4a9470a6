package children

import (
	"fmt"
	"time"
)

// GenerateSmartID deriva el identificador legible EOH-YYYYMMDD-NNNNNN a
// partir de la posición del registro en la secuencia. La fecha es el día
// UTC del momento de la llamada (now), no la fecha de nacimiento.
//
// Debe invocarse recién después de que el Child tiene id durable asignado,
// porque el id queda embebido en el identificador.
func GenerateSmartID(seq int64, now time.Time) string {
	return fmt.Sprintf("EOH-%s-%06d", now.UTC().Format("20060102"), seq)
}
