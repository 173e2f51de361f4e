package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryReportRow fila del informe de inventario valorizado.
type InventoryReportRow struct {
	PartID        string          `json:"part_id"`
	Name          string          `json:"name"`
	Article       string          `json:"article,omitempty"`
	ContainerName string          `json:"container_name,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockValue    decimal.Decimal `json:"stock_value"`
}

// InventoryReportResponse informe de inventario completo.
type InventoryReportResponse struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Rows        []InventoryReportRow `json:"rows"`
	TotalParts  int                  `json:"total_parts"`
	TotalUnits  int                  `json:"total_units"`
	TotalValue  decimal.Decimal      `json:"total_value"`
}

// RepairReportRow fila del informe de reparaciones completadas.
type RepairReportRow struct {
	RepairID      string          `json:"repair_id"`
	EquipmentName string          `json:"equipment_name"`
	Description   string          `json:"description"`
	Priority      string          `json:"priority"`
	StartDate     *time.Time      `json:"start_date,omitempty"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	PartsCost     decimal.Decimal `json:"parts_cost"`
	LaborCost     decimal.Decimal `json:"labor_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// RepairReportResponse informe de costos de reparación en un rango de fechas.
type RepairReportResponse struct {
	GeneratedAt    time.Time         `json:"generated_at"`
	From           *time.Time        `json:"from,omitempty"`
	To             *time.Time        `json:"to,omitempty"`
	Rows           []RepairReportRow `json:"rows"`
	TotalRepairs   int               `json:"total_repairs"`
	TotalPartsCost decimal.Decimal   `json:"total_parts_cost"`
	TotalLaborCost decimal.Decimal   `json:"total_labor_cost"`
	TotalCost      decimal.Decimal   `json:"total_cost"`
}
