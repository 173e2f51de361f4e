package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// ContainerRepository define el puerto de persistencia para Container (DIP).
type ContainerRepository interface {
	Create(container *entity.Container) error
	GetByID(id string) (*entity.Container, error)
	Update(container *entity.Container) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Container, error)
	Delete(id string) error
}
