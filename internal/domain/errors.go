package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidState       = errors.New("transición de estado inválida")
)

// InsufficientStockError lleva el detalle de disponibilidad para que el
// cliente pueda mostrar "disponible: N" sin re-consultar.
type InsufficientStockError struct {
	PartID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para repuesto %s: solicitado %d, disponible %d",
		e.PartID, e.Requested, e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ValidationError señala un campo concreto con valor inválido.
// Distingue "ausente" de "cero" de "inválido": solo lo inválido llega aquí.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s inválido: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StateError indica una operación prohibida por el estado actual de una reparación.
type StateError struct {
	RepairID string
	Status   string
	Op       string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("operación %s no permitida sobre reparación %s en estado %s",
		e.Op, e.RepairID, e.Status)
}

// Is permite errors.Is(err, ErrInvalidState).
func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}
