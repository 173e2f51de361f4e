package repair

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Servicio de dominio para costos de reparación. Los totales siempre se
// re-derivan desde las líneas; nunca se confía en un acumulado incremental,
// para impedir que un error de actualización deje una deriva silenciosa.

// PartsCost suma Quantity * UnitPrice sobre todas las líneas de repuestos.
func PartsCost(lines []entity.RepairPart) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromInt(int64(l.Quantity)).Mul(l.UnitPrice))
	}
	return total
}

// LaborCost suma Hours * HourlyRate sobre todas las líneas de personal.
func LaborCost(lines []entity.RepairStaff) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Hours.Mul(l.HourlyRate))
	}
	return total
}

// Recompute re-deriva los tres costos del agregado desde sus líneas y los
// escribe en r. TotalCost == PartsCost + LaborCost por construcción.
func Recompute(r *entity.Repair) {
	r.PartsCost = PartsCost(r.Parts)
	r.LaborCost = LaborCost(r.Staff)
	r.TotalCost = r.PartsCost.Add(r.LaborCost)
}
