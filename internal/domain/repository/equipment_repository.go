package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// EquipmentRepository define el puerto de persistencia para Equipment (DIP).
type EquipmentRepository interface {
	Create(eq *entity.Equipment) error
	GetByID(id string) (*entity.Equipment, error)
	// GetForUpdate bloquea la fila del equipo para la verificación de
	// exclusividad (un solo in_progress por equipo) bajo transacción.
	GetForUpdate(id string) (*entity.Equipment, error)
	Update(eq *entity.Equipment) error
	UpdateStatus(id, status string) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error)
	Delete(id string) error
}
