package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ContainerRepository = (*ContainerRepo)(nil)

// ContainerRepo implementación de ContainerRepository sobre PostgreSQL.
type ContainerRepo struct {
	q Querier
}

// NewContainerRepository construye el adaptador de ubicaciones.
func NewContainerRepository(q Querier) *ContainerRepo {
	return &ContainerRepo{q: q}
}

// Create persiste una nueva ubicación.
func (r *ContainerRepo) Create(c *entity.Container) error {
	query := `
		INSERT INTO containers (id, company_id, name, description, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.Name, c.Description, c.Location, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert container: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *ContainerRepo) GetByID(id string) (*entity.Container, error) {
	query := `
		SELECT id, company_id, name, description, location, created_at, updated_at
		FROM containers WHERE id = $1`
	var c entity.Container
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.Location, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get container: %w", err)
	}
	return &c, nil
}

// Update actualiza una ubicación.
func (r *ContainerRepo) Update(c *entity.Container) error {
	query := `
		UPDATE containers
		SET name = $2, description = $3, location = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Description, c.Location, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update container: %w", err)
	}
	return nil
}

// ListByCompany lista ubicaciones por empresa con paginación.
func (r *ContainerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Container, error) {
	query := `
		SELECT id, company_id, name, description, location, created_at, updated_at
		FROM containers WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Container
	for rows.Next() {
		var c entity.Container
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.Location, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una ubicación. Los repuestos asociados quedan con
// container_id en NULL (NullifyContainer se ejecuta antes, en la misma tx).
func (r *ContainerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM containers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete container: %w", err)
	}
	return nil
}
