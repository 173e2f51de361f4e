package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ContainerUseCase casos de uso CRUD para ubicaciones de almacenamiento.
type ContainerUseCase struct {
	repo     repository.ContainerRepository
	partRepo repository.PartRepository
}

// NewContainerUseCase construye el caso de uso.
func NewContainerUseCase(repo repository.ContainerRepository, partRepo repository.PartRepository) *ContainerUseCase {
	return &ContainerUseCase{repo: repo, partRepo: partRepo}
}

// Create crea una ubicación.
func (uc *ContainerUseCase) Create(companyID string, in dto.CreateContainerRequest) (*dto.ContainerResponse, error) {
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "es requerido"}
	}
	now := time.Now()
	c := &entity.Container{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toContainerResponse(c), nil
}

// GetByID obtiene una ubicación dentro del tenant del caller.
func (uc *ContainerUseCase) GetByID(companyID, id string) (*dto.ContainerResponse, error) {
	c, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return toContainerResponse(c), nil
}

// Update edita una ubicación.
func (uc *ContainerUseCase) Update(companyID, id string, in dto.UpdateContainerRequest) (*dto.ContainerResponse, error) {
	c, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, &domain.ValidationError{Field: "name", Reason: "no puede quedar vacío"}
		}
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Location != nil {
		c.Location = *in.Location
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toContainerResponse(c), nil
}

// List lista ubicaciones por empresa con paginación.
func (uc *ContainerUseCase) List(companyID string, limit, offset int) (*dto.ContainerListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContainerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toContainerResponse(c))
	}
	return &dto.ContainerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina la ubicación. Los repuestos que la referencian quedan con
// container_id en NULL; nunca se eliminan en cascada.
func (uc *ContainerUseCase) Delete(companyID, id string) error {
	if _, err := uc.scoped(companyID, id); err != nil {
		return err
	}
	if err := uc.partRepo.NullifyContainer(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *ContainerUseCase) scoped(companyID, id string) (*entity.Container, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func toContainerResponse(c *entity.Container) *dto.ContainerResponse {
	if c == nil {
		return nil
	}
	return &dto.ContainerResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Description: c.Description,
		Location:    c.Location,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
