package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un empleado. La baja es siempre lógica (inactive), nunca un
// DELETE: las líneas de reparaciones históricas referencian al empleado.
const (
	StaffActive   = "active"
	StaffInactive = "inactive"
)

// Staff representa un empleado del taller.
type Staff struct {
	ID         string
	CompanyID  string
	Name       string
	Position   string
	HourlyRate decimal.Decimal
	Status     string // active | inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
