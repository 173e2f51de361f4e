package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest body para POST /api/parts.
// Los numéricos opcionales son punteros: ausente != cero != inválido.
// La cantidad inicial genera el primer asiento arrival en el ledger.
type CreatePartRequest struct {
	Name            string           `json:"name" validate:"required"`
	Article         string           `json:"article,omitempty"`
	Barcode         string           `json:"barcode,omitempty"`
	Type            string           `json:"type,omitempty"`
	InitialQuantity int              `json:"initial_quantity" validate:"min=0"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	ContainerID     *string          `json:"container_id,omitempty"`
	Supplier        string           `json:"supplier,omitempty"`
	Brand           string           `json:"brand,omitempty"`
	WeightKg        *decimal.Decimal `json:"weight_kg,omitempty"`
	WarrantyMonths  *int             `json:"warranty_months,omitempty"`
	PhotoURLs       []string         `json:"photo_urls,omitempty"`
}

// UpdatePartRequest body para PUT /api/parts/:id. Quantity no aparece:
// toda mutación de cantidad pasa por PATCH /api/parts/:id/quantity (ledger).
type UpdatePartRequest struct {
	Name           *string          `json:"name,omitempty"`
	Article        *string          `json:"article,omitempty"`
	Barcode        *string          `json:"barcode,omitempty"`
	Type           *string          `json:"type,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	ContainerID    *string          `json:"container_id,omitempty"`
	Supplier       *string          `json:"supplier,omitempty"`
	Brand          *string          `json:"brand,omitempty"`
	WeightKg       *decimal.Decimal `json:"weight_kg,omitempty"`
	WarrantyMonths *int             `json:"warranty_months,omitempty"`
	PhotoURLs      []string         `json:"photo_urls,omitempty"`
}

// ChangeQuantityRequest body para PATCH /api/parts/:id/quantity.
// El tipo del asiento (arrival/expense) no se envía: el ledger lo deriva del
// signo de new_quantity - cantidad actual.
type ChangeQuantityRequest struct {
	NewQuantity int    `json:"new_quantity" validate:"min=0"`
	Description string `json:"description" validate:"required"`
	EquipmentID string `json:"equipment_id,omitempty"`
}

// PartResponse representación de un repuesto en respuestas.
type PartResponse struct {
	ID             string           `json:"id"`
	CompanyID      string           `json:"company_id"`
	Name           string           `json:"name"`
	Article        string           `json:"article,omitempty"`
	Barcode        string           `json:"barcode,omitempty"`
	Type           string           `json:"type,omitempty"`
	Quantity       int              `json:"quantity"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	ContainerID    *string          `json:"container_id,omitempty"`
	Supplier       string           `json:"supplier,omitempty"`
	Brand          string           `json:"brand,omitempty"`
	WeightKg       *decimal.Decimal `json:"weight_kg,omitempty"`
	WarrantyMonths *int             `json:"warranty_months,omitempty"`
	PhotoURLs      []string         `json:"photo_urls,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// PartListResponse listado paginado de repuestos.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
