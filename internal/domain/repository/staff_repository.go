package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// StaffRepository define el puerto de persistencia para Staff (DIP).
// No hay Delete: la baja de un empleado es un cambio de Status a inactive.
type StaffRepository interface {
	Create(s *entity.Staff) error
	GetByID(id string) (*entity.Staff, error)
	Update(s *entity.Staff) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Staff, error)
}
