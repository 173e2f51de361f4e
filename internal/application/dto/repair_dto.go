package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRepairRequest body para POST /api/repairs.
// Status admite planned (por defecto) o in_progress (crea y arranca en un paso,
// reclamando el equipo).
type CreateRepairRequest struct {
	EquipmentID string `json:"equipment_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=planned in_progress"`
}

// UpdateRepairRequest body para PUT /api/repairs/:id (solo campos descriptivos;
// estado y costos mutan por las operaciones del ciclo de vida).
type UpdateRepairRequest struct {
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
}

// AttachPartRequest body para POST /api/repairs/:id/parts.
type AttachPartRequest struct {
	PartID   string `json:"part_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// AttachStaffRequest body para POST /api/repairs/:id/staff.
type AttachStaffRequest struct {
	StaffID string          `json:"staff_id" validate:"required"`
	Hours   decimal.Decimal `json:"hours"`
}

// CompleteRepairRequest body para POST /api/repairs/:id/complete.
// LaborCost permite cerrar con un costo de mano de obra acordado distinto al
// derivado de las líneas; nil = usar el derivado. Las lecturas finales solo se
// aplican al equipo cuando vienen no nulas.
type CompleteRepairRequest struct {
	LaborCost        *decimal.Decimal `json:"labor_cost,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	FinalEngineHours *decimal.Decimal `json:"final_engine_hours,omitempty"`
	FinalMileage     *decimal.Decimal `json:"final_mileage,omitempty"`
}

// RepairPartLineResponse línea de repuesto consumido.
type RepairPartLineResponse struct {
	ID        string          `json:"id"`
	PartID    string          `json:"part_id"`
	PartName  string          `json:"part_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// RepairStaffLineResponse línea de horas de personal.
type RepairStaffLineResponse struct {
	ID         string          `json:"id"`
	StaffID    string          `json:"staff_id"`
	StaffName  string          `json:"staff_name"`
	Hours      decimal.Decimal `json:"hours"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	LaborCost  decimal.Decimal `json:"labor_cost"`
}

// RepairResponse agregado completo de reparación en respuestas.
type RepairResponse struct {
	ID               string                    `json:"id"`
	CompanyID        string                    `json:"company_id"`
	EquipmentID      string                    `json:"equipment_id"`
	Description      string                    `json:"description"`
	Priority         string                    `json:"priority"`
	Status           string                    `json:"status"`
	StartDate        *time.Time                `json:"start_date,omitempty"`
	EndDate          *time.Time                `json:"end_date,omitempty"`
	PartsCost        decimal.Decimal           `json:"parts_cost"`
	LaborCost        decimal.Decimal           `json:"labor_cost"`
	TotalCost        decimal.Decimal           `json:"total_cost"`
	CompletionNotes  string                    `json:"completion_notes,omitempty"`
	FinalEngineHours *decimal.Decimal          `json:"final_engine_hours,omitempty"`
	FinalMileage     *decimal.Decimal          `json:"final_mileage,omitempty"`
	Parts            []RepairPartLineResponse  `json:"parts"`
	Staff            []RepairStaffLineResponse `json:"staff"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// RepairListResponse listado paginado de reparaciones.
type RepairListResponse struct {
	Items []RepairResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
