package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
)

// ValidationError indica campos obligatorios ausentes al guardar un albarán.
// Es recuperable: el usuario corrige el formulario y reintenta; no se escribe nada.
type ValidationError struct {
	Campos []string // nombres de los campos faltantes, en orden de formulario
}

func (e *ValidationError) Error() string {
	return "campos requeridos: " + strings.Join(e.Campos, ", ")
}

// AsValidation extrae un *ValidationError de la cadena de errores, si lo hay.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
