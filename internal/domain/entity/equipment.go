package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un equipo. Mientras exista una reparación activa, el estado lo
// gobierna el ciclo de vida de la reparación, nunca el cliente.
const (
	EquipmentOperational = "operational"
	EquipmentInRepair    = "in_repair"
	EquipmentBroken      = "broken"
)

// Equipment representa una máquina o equipo pesado sujeto a mantenimiento.
type Equipment struct {
	ID          string
	CompanyID   string
	Name        string
	Type        string
	Model       string
	Serial      string
	EngineHours decimal.Decimal // horómetro acumulado
	Mileage     decimal.Decimal // kilometraje acumulado
	Status      string          // operational | in_repair | broken
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidEquipmentStatus indica si s es un estado de equipo conocido.
func ValidEquipmentStatus(s string) bool {
	switch s {
	case EquipmentOperational, EquipmentInRepair, EquipmentBroken:
		return true
	}
	return false
}
