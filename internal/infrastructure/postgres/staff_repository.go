package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo implementación de StaffRepository sobre PostgreSQL.
// No implementa Delete: la baja es lógica (status = inactive).
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador de personal.
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

const staffColumns = `id, company_id, name, position, hourly_rate, status, created_at, updated_at`

// Create persiste un nuevo empleado.
func (r *StaffRepo) Create(s *entity.Staff) error {
	query := `
		INSERT INTO staff (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CompanyID, s.Name, s.Position, s.HourlyRate, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *StaffRepo) GetByID(id string) (*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`
	var s entity.Staff
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Position, &s.HourlyRate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return &s, nil
}

// Update actualiza un empleado (incluido el cambio de status a inactive).
func (r *StaffRepo) Update(s *entity.Staff) error {
	query := `
		UPDATE staff
		SET name = $2, position = $3, hourly_rate = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Position, s.HourlyRate, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

// ListByCompany lista empleados por empresa, con filtro opcional de estado.
func (r *StaffRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $2`
	}
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	var list []*entity.Staff
	for rows.Next() {
		var s entity.Staff
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.Name, &s.Position, &s.HourlyRate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
