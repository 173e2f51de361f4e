package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// PartRepository define el puerto de persistencia para Part (DIP).
// UpdateQuantity solo debe invocarse desde el ledger, dentro de una transacción.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetByCompanyAndArticle(companyID, article string) (*entity.Part, error)
	GetByBarcode(companyID, barcode string) (*entity.Part, error)
	Update(part *entity.Part) error
	UpdateQuantity(partID string, quantity int) error
	// GetForUpdate bloquea la fila del repuesto (SELECT FOR UPDATE) para el
	// read-modify-write de Quantity bajo transacción.
	GetForUpdate(id string) (*entity.Part, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Part, error)
	Search(companyID, query string, limit, offset int) ([]*entity.Part, error)
	ListByContainer(containerID string) ([]*entity.Part, error)
	NullifyContainer(containerID string) error
	Delete(id string) error
}
