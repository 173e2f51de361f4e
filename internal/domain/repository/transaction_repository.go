package repository

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// TransactionRepository define el puerto para el ledger de inventario.
// El ledger es append-only: no hay Update; DeleteByPart existe solo como
// limpieza de almacenamiento al eliminar un repuesto, no como regla de negocio.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	ListByPart(partID string, from, to *time.Time, limit, offset int) ([]*entity.Transaction, error)
	ListByCompany(companyID string, from, to *time.Time, limit, offset int) ([]*entity.Transaction, error)
	ListByEquipment(equipmentID string, limit, offset int) ([]*entity.Transaction, error)
	// SumSignedByPart devuelve sum(arrival) - sum(expense); debe cuadrar con
	// Part.Quantity en todo momento (propiedad de conservación del ledger).
	SumSignedByPart(partID string) (int, error)
	DeleteByPart(partID string) error
}
