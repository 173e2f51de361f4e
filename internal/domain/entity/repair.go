package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una reparación.
// planned -> in_progress -> {completed, cancelled}; los dos últimos son
// terminales: no admiten más líneas de repuestos ni de personal.
const (
	RepairPlanned    = "planned"
	RepairInProgress = "in_progress"
	RepairCompleted  = "completed"
	RepairCancelled  = "cancelled"
)

// Prioridades de una reparación.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Repair es la raíz del agregado de reparación: una orden de trabajo sobre un
// equipo, con sus líneas de repuestos consumidos y de horas de personal.
// Invariante: TotalCost == PartsCost + LaborCost, recalculado en cada
// mutación re-derivando desde las líneas, nunca editado por separado.
type Repair struct {
	ID          string
	CompanyID   string
	EquipmentID string
	Description string
	Priority    string // low | medium | high | critical
	Status      string // planned | in_progress | completed | cancelled
	StartDate   *time.Time
	EndDate     *time.Time
	PartsCost   decimal.Decimal
	LaborCost   decimal.Decimal
	TotalCost   decimal.Decimal
	// Metadatos de cierre.
	CompletionNotes  string
	FinalEngineHours *decimal.Decimal // nil = no se tomó lectura al cerrar
	FinalMileage     *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Parts []RepairPart
	Staff []RepairStaff
}

// RepairPart es una línea de consumo de repuesto dentro de una reparación.
// UnitPrice es snapshot del precio al momento de adjuntar la línea.
type RepairPart struct {
	ID        string
	RepairID  string
	PartID    string
	PartName  string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal // Quantity * UnitPrice
	CreatedAt time.Time
}

// RepairStaff es una línea de horas de un empleado asignado a la reparación.
// HourlyRate es snapshot de la tarifa al momento de la asignación.
type RepairStaff struct {
	ID         string
	RepairID   string
	StaffID    string
	StaffName  string
	Hours      decimal.Decimal
	HourlyRate decimal.Decimal
	LaborCost  decimal.Decimal // Hours * HourlyRate
	CreatedAt  time.Time
}

// Terminal indica si la reparación ya no admite mutaciones de líneas.
func (r *Repair) Terminal() bool {
	return r.Status == RepairCompleted || r.Status == RepairCancelled
}

// ValidPriority indica si p es una prioridad conocida.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}
