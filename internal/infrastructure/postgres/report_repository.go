package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación de solo lectura de ReportRepository.
// Los informes se calculan en SQL para no cargar agregados completos.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de informes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventorySnapshot devuelve el inventario valorizado de la empresa:
// una fila por repuesto con su valor en stock (quantity * price).
func (r *ReportRepo) InventorySnapshot(companyID string) ([]repository.InventoryRow, error) {
	query := `
		SELECT p.id, p.name, p.article, COALESCE(c.name, ''), p.quantity,
		       COALESCE(p.price, 0), p.quantity * COALESCE(p.price, 0)
		FROM parts p
		LEFT JOIN containers c ON c.id = p.container_id
		WHERE p.company_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	defer rows.Close()
	var list []repository.InventoryRow
	for rows.Next() {
		var row repository.InventoryRow
		if err := rows.Scan(
			&row.PartID, &row.Name, &row.Article, &row.ContainerName,
			&row.Quantity, &row.UnitPrice, &row.StockValue,
		); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CompletedRepairs devuelve las reparaciones completadas de la empresa,
// opcionalmente acotadas por fecha de cierre.
func (r *ReportRepo) CompletedRepairs(companyID string, from, to *time.Time) ([]repository.RepairCostRow, error) {
	query := `
		SELECT r.id, e.name, r.description, r.priority, r.start_date, r.end_date,
		       r.parts_cost, r.labor_cost, r.total_cost
		FROM repairs r
		JOIN equipment e ON e.id = r.equipment_id
		WHERE r.company_id = $1 AND r.status = $2`
	args := []any{companyID, entity.RepairCompleted}
	if from != nil {
		args = append(args, *from)
		query += ` AND r.end_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND r.end_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY r.end_date DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("completed repairs: %w", err)
	}
	defer rows.Close()
	var list []repository.RepairCostRow
	for rows.Next() {
		var row repository.RepairCostRow
		if err := rows.Scan(
			&row.RepairID, &row.EquipmentName, &row.Description, &row.Priority,
			&row.StartDate, &row.EndDate, &row.PartsCost, &row.LaborCost, &row.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("scan repair cost row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
