package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStaffRequest body para POST /api/staff.
type CreateStaffRequest struct {
	Name       string          `json:"name" validate:"required"`
	Position   string          `json:"position,omitempty"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// UpdateStaffRequest body para PUT /api/staff/:id.
type UpdateStaffRequest struct {
	Name       *string          `json:"name,omitempty"`
	Position   *string          `json:"position,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
}

// StaffResponse representación de un empleado en respuestas.
type StaffResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	Name       string          `json:"name"`
	Position   string          `json:"position,omitempty"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// StaffListResponse listado paginado de empleados.
type StaffListResponse struct {
	Items []StaffResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
