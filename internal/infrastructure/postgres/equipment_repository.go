package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación de EquipmentRepository sobre PostgreSQL.
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador de equipos. Pasar pool o tx.
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `id, company_id, name, type, model, serial,
	engine_hours, mileage, status, created_at, updated_at`

// Create persiste un nuevo equipo.
func (r *EquipmentRepo) Create(eq *entity.Equipment) error {
	query := `
		INSERT INTO equipment (` + equipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		eq.ID, eq.CompanyID, eq.Name, eq.Type, eq.Model, eq.Serial,
		eq.EngineHours, eq.Mileage, eq.Status, eq.CreatedAt, eq.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *EquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate bloquea la fila del equipo para la verificación de exclusividad
// de reparación activa bajo transacción.
func (r *EquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update actualiza los datos del equipo, incluido el estado.
func (r *EquipmentRepo) Update(eq *entity.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $2, type = $3, model = $4, serial = $5,
		    engine_hours = $6, mileage = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		eq.ID, eq.Name, eq.Type, eq.Model, eq.Serial,
		eq.EngineHours, eq.Mileage, eq.Status, eq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado (transiciones del ciclo de reparación).
func (r *EquipmentRepo) UpdateStatus(id, status string) error {
	query := `UPDATE equipment SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update equipment status: %w", err)
	}
	return nil
}

// ListByCompany lista equipos por empresa con paginación.
func (r *EquipmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + `
		FROM equipment WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()
	var list []*entity.Equipment
	for rows.Next() {
		var eq entity.Equipment
		if err := rows.Scan(
			&eq.ID, &eq.CompanyID, &eq.Name, &eq.Type, &eq.Model, &eq.Serial,
			&eq.EngineHours, &eq.Mileage, &eq.Status, &eq.CreatedAt, &eq.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, &eq)
	}
	return list, rows.Err()
}

// Delete elimina un equipo por ID.
func (r *EquipmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepo) scanOne(query string, args ...any) (*entity.Equipment, error) {
	var eq entity.Equipment
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&eq.ID, &eq.CompanyID, &eq.Name, &eq.Type, &eq.Model, &eq.Serial,
		&eq.EngineHours, &eq.Mileage, &eq.Status, &eq.CreatedAt, &eq.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &eq, nil
}
