// Package storage define los errores comunes a todos los backends
// (memory, sqlite, postgres) para que handlers y decoradores puedan
// distinguir "no existe" de "el storage falló" sin importar el driver.
package storage

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// Error marca cualquier falla de I/O o constraint en el límite del store.
// La política del sistema es degradar, nunca propagar como fatal:
// lecturas devuelven secuencia vacía, escrituras un valor centinela,
// ambas se loguean en el handler.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap anota err con la operación que falló. nil pasa de largo, y un
// ErrNotFound no se envuelve: no es una falla del storage.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// IsFailure reporta si err es una falla real del storage (no un not-found).
func IsFailure(err error) bool {
	var se *Error
	return errors.As(err, &se)
}
