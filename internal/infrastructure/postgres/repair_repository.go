package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.RepairRepository = (*RepairRepo)(nil)

// RepairRepo implementación de RepairRepository sobre PostgreSQL.
// Las lecturas del agregado cargan la cabecera y sus dos colecciones de líneas.
type RepairRepo struct {
	q Querier
}

// NewRepairRepository construye el adaptador de reparaciones. Pasar pool o tx.
func NewRepairRepository(q Querier) *RepairRepo {
	return &RepairRepo{q: q}
}

const repairColumns = `id, company_id, equipment_id, description, priority, status,
	start_date, end_date, parts_cost, labor_cost, total_cost,
	completion_notes, final_engine_hours, final_mileage, created_at, updated_at`

// Create persiste la cabecera de una reparación (sin líneas).
func (r *RepairRepo) Create(rep *entity.Repair) error {
	query := `
		INSERT INTO repairs (` + repairColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		rep.ID, rep.CompanyID, rep.EquipmentID, rep.Description, rep.Priority, rep.Status,
		rep.StartDate, rep.EndDate, rep.PartsCost, rep.LaborCost, rep.TotalCost,
		rep.CompletionNotes, rep.FinalEngineHours, rep.FinalMileage, rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert repair: %w", err)
	}
	return nil
}

// GetByID obtiene el agregado completo (cabecera + líneas).
func (r *RepairRepo) GetByID(id string) (*entity.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs WHERE id = $1`
	return r.getAggregate(query, id)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) y carga el agregado.
// Las líneas no se bloquean: toda mutación de líneas pasa por el lock de la
// cabecera, que serializa los escritores.
func (r *RepairRepo) GetForUpdate(id string) (*entity.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs WHERE id = $1 FOR UPDATE`
	return r.getAggregate(query, id)
}

// Update actualiza la cabecera. Las líneas se mutan con Add/Remove.
func (r *RepairRepo) Update(rep *entity.Repair) error {
	query := `
		UPDATE repairs
		SET description = $2, priority = $3, status = $4, start_date = $5, end_date = $6,
		    parts_cost = $7, labor_cost = $8, total_cost = $9,
		    completion_notes = $10, final_engine_hours = $11, final_mileage = $12,
		    updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rep.ID, rep.Description, rep.Priority, rep.Status, rep.StartDate, rep.EndDate,
		rep.PartsCost, rep.LaborCost, rep.TotalCost,
		rep.CompletionNotes, rep.FinalEngineHours, rep.FinalMileage, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update repair: %w", err)
	}
	return nil
}

// ListByCompany lista reparaciones por empresa, con filtro opcional de estado.
// Devuelve solo cabeceras; el detalle con líneas se obtiene con GetByID.
func (r *RepairRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $2`
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Repair
	for rows.Next() {
		rep, err := scanRepair(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

// HasActiveByEquipment indica si el equipo tiene alguna reparación in_progress.
func (r *RepairRepo) HasActiveByEquipment(equipmentID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM repairs WHERE equipment_id = $1 AND status = $2)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, equipmentID, entity.RepairInProgress).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active repairs: %w", err)
	}
	return exists, nil
}

// Delete elimina la cabecera. Las líneas se eliminan antes con DeleteLinesByRepair.
func (r *RepairRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM repairs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete repair: %w", err)
	}
	return nil
}

// ─── Líneas de repuestos ─────────────────────────────────────────────────────

// AddPartLine inserta una línea de consumo de repuesto.
func (r *RepairRepo) AddPartLine(line *entity.RepairPart) error {
	query := `
		INSERT INTO repair_parts (id, repair_id, part_id, part_name, quantity, unit_price, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.RepairID, line.PartID, line.PartName,
		line.Quantity, line.UnitPrice, line.LineTotal, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert repair part line: %w", err)
	}
	return nil
}

// RemovePartLine elimina una línea de repuesto por ID.
func (r *RepairRepo) RemovePartLine(lineID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM repair_parts WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete repair part line: %w", err)
	}
	return nil
}

// GetPartLine obtiene una línea de repuesto por ID.
func (r *RepairRepo) GetPartLine(lineID string) (*entity.RepairPart, error) {
	query := `
		SELECT id, repair_id, part_id, part_name, quantity, unit_price, line_total, created_at
		FROM repair_parts WHERE id = $1`
	var l entity.RepairPart
	err := r.q.QueryRow(context.Background(), query, lineID).Scan(
		&l.ID, &l.RepairID, &l.PartID, &l.PartName,
		&l.Quantity, &l.UnitPrice, &l.LineTotal, &l.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair part line: %w", err)
	}
	return &l, nil
}

// ─── Líneas de personal ──────────────────────────────────────────────────────

// AddStaffLine inserta una línea de horas de personal.
func (r *RepairRepo) AddStaffLine(line *entity.RepairStaff) error {
	query := `
		INSERT INTO repair_staff (id, repair_id, staff_id, staff_name, hours, hourly_rate, labor_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.RepairID, line.StaffID, line.StaffName,
		line.Hours, line.HourlyRate, line.LaborCost, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert repair staff line: %w", err)
	}
	return nil
}

// RemoveStaffLine elimina una línea de personal por ID.
func (r *RepairRepo) RemoveStaffLine(lineID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM repair_staff WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete repair staff line: %w", err)
	}
	return nil
}

// GetStaffLine obtiene una línea de personal por ID.
func (r *RepairRepo) GetStaffLine(lineID string) (*entity.RepairStaff, error) {
	query := `
		SELECT id, repair_id, staff_id, staff_name, hours, hourly_rate, labor_cost, created_at
		FROM repair_staff WHERE id = $1`
	return r.scanStaffLine(query, lineID)
}

// GetStaffLineByStaff busca la línea de un empleado dentro de una reparación
// (para rechazar asignaciones duplicadas).
func (r *RepairRepo) GetStaffLineByStaff(repairID, staffID string) (*entity.RepairStaff, error) {
	query := `
		SELECT id, repair_id, staff_id, staff_name, hours, hourly_rate, labor_cost, created_at
		FROM repair_staff WHERE repair_id = $1 AND staff_id = $2`
	return r.scanStaffLine(query, repairID, staffID)
}

// DeleteLinesByRepair elimina todas las líneas (solo al eliminar una planned,
// que por invariante no tiene consumos que revertir).
func (r *RepairRepo) DeleteLinesByRepair(repairID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM repair_parts WHERE repair_id = $1`, repairID); err != nil {
		return fmt.Errorf("delete repair part lines: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM repair_staff WHERE repair_id = $1`, repairID); err != nil {
		return fmt.Errorf("delete repair staff lines: %w", err)
	}
	return nil
}

// HasOpenLinesByPart indica si el repuesto tiene líneas en reparaciones no
// terminales.
func (r *RepairRepo) HasOpenLinesByPart(partID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM repair_parts rp
			JOIN repairs rep ON rep.id = rp.repair_id
			WHERE rp.part_id = $1 AND rep.status NOT IN ($2, $3))`
	var exists bool
	err := r.q.QueryRow(context.Background(), query,
		partID, entity.RepairCompleted, entity.RepairCancelled).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check open repair lines: %w", err)
	}
	return exists, nil
}

// DeleteLinesByPart elimina todas las líneas del repuesto. Solo se invoca tras
// verificar que ninguna reparación abierta lo referencia.
func (r *RepairRepo) DeleteLinesByPart(partID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM repair_parts WHERE part_id = $1`, partID)
	if err != nil {
		return fmt.Errorf("delete repair lines by part: %w", err)
	}
	return nil
}

// ─── Internos ────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRepair(row rowScanner) (*entity.Repair, error) {
	var rep entity.Repair
	err := row.Scan(
		&rep.ID, &rep.CompanyID, &rep.EquipmentID, &rep.Description, &rep.Priority, &rep.Status,
		&rep.StartDate, &rep.EndDate, &rep.PartsCost, &rep.LaborCost, &rep.TotalCost,
		&rep.CompletionNotes, &rep.FinalEngineHours, &rep.FinalMileage, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan repair: %w", err)
	}
	return &rep, nil
}

func (r *RepairRepo) getAggregate(query string, id string) (*entity.Repair, error) {
	var rep entity.Repair
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rep.ID, &rep.CompanyID, &rep.EquipmentID, &rep.Description, &rep.Priority, &rep.Status,
		&rep.StartDate, &rep.EndDate, &rep.PartsCost, &rep.LaborCost, &rep.TotalCost,
		&rep.CompletionNotes, &rep.FinalEngineHours, &rep.FinalMileage, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair: %w", err)
	}
	if err := r.loadLines(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *RepairRepo) loadLines(rep *entity.Repair) error {
	ctx := context.Background()

	partRows, err := r.q.Query(ctx, `
		SELECT id, repair_id, part_id, part_name, quantity, unit_price, line_total, created_at
		FROM repair_parts WHERE repair_id = $1 ORDER BY created_at`, rep.ID)
	if err != nil {
		return fmt.Errorf("list repair part lines: %w", err)
	}
	defer partRows.Close()
	for partRows.Next() {
		var l entity.RepairPart
		if err := partRows.Scan(
			&l.ID, &l.RepairID, &l.PartID, &l.PartName,
			&l.Quantity, &l.UnitPrice, &l.LineTotal, &l.CreatedAt,
		); err != nil {
			return fmt.Errorf("scan repair part line: %w", err)
		}
		rep.Parts = append(rep.Parts, l)
	}
	if err := partRows.Err(); err != nil {
		return err
	}

	staffRows, err := r.q.Query(ctx, `
		SELECT id, repair_id, staff_id, staff_name, hours, hourly_rate, labor_cost, created_at
		FROM repair_staff WHERE repair_id = $1 ORDER BY created_at`, rep.ID)
	if err != nil {
		return fmt.Errorf("list repair staff lines: %w", err)
	}
	defer staffRows.Close()
	for staffRows.Next() {
		var l entity.RepairStaff
		if err := staffRows.Scan(
			&l.ID, &l.RepairID, &l.StaffID, &l.StaffName,
			&l.Hours, &l.HourlyRate, &l.LaborCost, &l.CreatedAt,
		); err != nil {
			return fmt.Errorf("scan repair staff line: %w", err)
		}
		rep.Staff = append(rep.Staff, l)
	}
	return staffRows.Err()
}

func (r *RepairRepo) scanStaffLine(query string, args ...any) (*entity.RepairStaff, error) {
	var l entity.RepairStaff
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&l.ID, &l.RepairID, &l.StaffID, &l.StaffName,
		&l.Hours, &l.HourlyRate, &l.LaborCost, &l.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair staff line: %w", err)
	}
	return &l, nil
}
