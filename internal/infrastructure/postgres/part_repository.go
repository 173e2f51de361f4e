package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de repuestos. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `id, company_id, name, article, barcode, type, quantity, price,
	container_id, supplier, brand, weight_kg, warranty_months, photo_urls, created_at, updated_at`

// Create persiste un nuevo repuesto.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.CompanyID, part.Name, part.Article, part.Barcode, part.Type,
		part.Quantity, part.Price, part.ContainerID, part.Supplier, part.Brand,
		part.WeightKg, part.WarrantyMonths, part.PhotoURLs, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByCompanyAndArticle busca por código de artículo dentro de una empresa.
func (r *PartRepo) GetByCompanyAndArticle(companyID, article string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE company_id = $1 AND article = $2`
	return r.scanOne(query, companyID, article)
}

// GetByBarcode busca por código de barras dentro de una empresa (flujo de escaneo).
func (r *PartRepo) GetByBarcode(companyID, barcode string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE company_id = $1 AND barcode = $2`
	return r.scanOne(query, companyID, barcode)
}

// GetForUpdate obtiene el repuesto y bloquea la fila (SELECT FOR UPDATE) para
// el read-modify-write de quantity bajo transacción.
func (r *PartRepo) GetForUpdate(id string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update actualiza los metadatos del repuesto. Quantity no se toca aquí.
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts
		SET name = $2, article = $3, barcode = $4, type = $5, price = $6,
		    container_id = $7, supplier = $8, brand = $9, weight_kg = $10,
		    warranty_months = $11, photo_urls = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.Name, part.Article, part.Barcode, part.Type, part.Price,
		part.ContainerID, part.Supplier, part.Brand, part.WeightKg,
		part.WarrantyMonths, part.PhotoURLs, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad. Solo el ledger llama aquí, con la fila bloqueada.
func (r *PartRepo) UpdateQuantity(partID string, quantity int) error {
	query := `UPDATE parts SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, partID, quantity)
	if err != nil {
		return fmt.Errorf("update part quantity: %w", err)
	}
	return nil
}

// ListByCompany lista repuestos por empresa con paginación.
func (r *PartRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + `
		FROM parts WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	return r.scanMany(query, companyID, limit, offset)
}

// Search busca por nombre, artículo o código de barras (ILIKE).
func (r *PartRepo) Search(companyID, q string, limit, offset int) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + `
		FROM parts
		WHERE company_id = $1 AND (name ILIKE $2 OR article ILIKE $2 OR barcode = $3)
		ORDER BY name LIMIT $4 OFFSET $5`
	return r.scanMany(query, companyID, "%"+q+"%", q, limit, offset)
}

// ListByContainer lista repuestos de una ubicación.
func (r *PartRepo) ListByContainer(containerID string) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE container_id = $1 ORDER BY name`
	return r.scanMany(query, containerID)
}

// NullifyContainer desasocia todos los repuestos de una ubicación
// (al eliminar el container: NULL, nunca cascada).
func (r *PartRepo) NullifyContainer(containerID string) error {
	query := `UPDATE parts SET container_id = NULL, updated_at = now() WHERE container_id = $1`
	_, err := r.q.Exec(context.Background(), query, containerID)
	if err != nil {
		return fmt.Errorf("nullify container: %w", err)
	}
	return nil
}

// Delete elimina un repuesto por ID.
func (r *PartRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	return nil
}

func (r *PartRepo) scanOne(query string, args ...any) (*entity.Part, error) {
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Article, &p.Barcode, &p.Type,
		&p.Quantity, &p.Price, &p.ContainerID, &p.Supplier, &p.Brand,
		&p.WeightKg, &p.WarrantyMonths, &p.PhotoURLs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

func (r *PartRepo) scanMany(query string, args ...any) ([]*entity.Part, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Name, &p.Article, &p.Barcode, &p.Type,
			&p.Quantity, &p.Price, &p.ContainerID, &p.Supplier, &p.Brand,
			&p.WeightKg, &p.WarrantyMonths, &p.PhotoURLs, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
