package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRow es una fila del snapshot de inventario valorizado.
type InventoryRow struct {
	PartID        string
	Name          string
	Article       string
	ContainerName string
	Quantity      int
	UnitPrice     decimal.Decimal
	StockValue    decimal.Decimal // Quantity * UnitPrice
}

// RepairCostRow resume una reparación completada para el informe de costos.
type RepairCostRow struct {
	RepairID      string
	EquipmentName string
	Description   string
	Priority      string
	StartDate     *time.Time
	EndDate       *time.Time
	PartsCost     decimal.Decimal
	LaborCost     decimal.Decimal
	TotalCost     decimal.Decimal
}

// ReportRepository define el puerto de solo lectura para informes.
// Nunca muta estado; los informes se derivan de los agregados persistidos.
type ReportRepository interface {
	InventorySnapshot(companyID string) ([]InventoryRow, error)
	CompletedRepairs(companyID string, from, to *time.Time) ([]RepairCostRow, error)
}
