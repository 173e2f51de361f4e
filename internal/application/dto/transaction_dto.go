package dto

import "time"

// TransactionResponse asiento del ledger en respuestas (solo lectura).
type TransactionResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Type        string    `json:"type"` // arrival | expense
	PartID      string    `json:"part_id"`
	PartName    string    `json:"part_name"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description,omitempty"`
	EquipmentID *string   `json:"equipment_id,omitempty"`
	RepairID    *string   `json:"repair_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}

// TransactionListResponse listado paginado de asientos.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
