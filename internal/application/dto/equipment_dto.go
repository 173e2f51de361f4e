package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEquipmentRequest body para POST /api/equipment.
type CreateEquipmentRequest struct {
	Name        string           `json:"name" validate:"required"`
	Type        string           `json:"type,omitempty"`
	Model       string           `json:"model,omitempty"`
	Serial      string           `json:"serial,omitempty"`
	EngineHours *decimal.Decimal `json:"engine_hours,omitempty"`
	Mileage     *decimal.Decimal `json:"mileage,omitempty"`
	Status      string           `json:"status,omitempty" validate:"omitempty,oneof=operational broken"`
}

// UpdateEquipmentRequest body para PUT /api/equipment/:id.
// Status solo es editable entre operational y broken; in_repair lo gobierna
// el ciclo de vida de reparaciones y el caso de uso rechaza tocarlo.
type UpdateEquipmentRequest struct {
	Name        *string          `json:"name,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Model       *string          `json:"model,omitempty"`
	Serial      *string          `json:"serial,omitempty"`
	EngineHours *decimal.Decimal `json:"engine_hours,omitempty"`
	Mileage     *decimal.Decimal `json:"mileage,omitempty"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=operational broken"`
}

// EquipmentResponse representación de un equipo en respuestas.
type EquipmentResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Name        string          `json:"name"`
	Type        string          `json:"type,omitempty"`
	Model       string          `json:"model,omitempty"`
	Serial      string          `json:"serial,omitempty"`
	EngineHours decimal.Decimal `json:"engine_hours"`
	Mileage     decimal.Decimal `json:"mileage"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EquipmentListResponse listado paginado de equipos.
type EquipmentListResponse struct {
	Items []EquipmentResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
