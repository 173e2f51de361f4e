package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// StaffUseCase casos de uso para empleados. La baja es siempre lógica
// (Deactivate): las reparaciones históricas referencian al empleado y un
// DELETE rompería esa integridad.
type StaffUseCase struct {
	repo repository.StaffRepository
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(repo repository.StaffRepository) *StaffUseCase {
	return &StaffUseCase{repo: repo}
}

// Create registra un empleado activo.
func (uc *StaffUseCase) Create(companyID string, in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "es requerido"}
	}
	if in.HourlyRate.IsNegative() {
		return nil, &domain.ValidationError{Field: "hourly_rate", Reason: "no puede ser negativo"}
	}
	now := time.Now()
	s := &entity.Staff{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       in.Name,
		Position:   in.Position,
		HourlyRate: in.HourlyRate,
		Status:     entity.StaffActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, err
	}
	return toStaffResponse(s), nil
}

// GetByID obtiene un empleado dentro del tenant del caller.
func (uc *StaffUseCase) GetByID(companyID, id string) (*dto.StaffResponse, error) {
	s, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return toStaffResponse(s), nil
}

// Update edita nombre, cargo o tarifa. La tarifa nueva no afecta líneas ya
// registradas: esas llevan snapshot.
func (uc *StaffUseCase) Update(companyID, id string, in dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	s, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.HourlyRate != nil && in.HourlyRate.IsNegative() {
		return nil, &domain.ValidationError{Field: "hourly_rate", Reason: "no puede ser negativo"}
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, &domain.ValidationError{Field: "name", Reason: "no puede quedar vacío"}
		}
		s.Name = *in.Name
	}
	if in.Position != nil {
		s.Position = *in.Position
	}
	if in.HourlyRate != nil {
		s.HourlyRate = *in.HourlyRate
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return toStaffResponse(s), nil
}

// Deactivate marca al empleado como inactive (baja lógica).
func (uc *StaffUseCase) Deactivate(companyID, id string) (*dto.StaffResponse, error) {
	s, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if s.Status == entity.StaffInactive {
		return nil, domain.ErrConflict
	}
	s.Status = entity.StaffInactive
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return toStaffResponse(s), nil
}

// List lista empleados, opcionalmente filtrados por estado (active/inactive).
func (uc *StaffUseCase) List(companyID, status string, limit, offset int) (*dto.StaffListResponse, error) {
	if status != "" && status != entity.StaffActive && status != entity.StaffInactive {
		return nil, &domain.ValidationError{Field: "status", Reason: "valor desconocido"}
	}
	list, err := uc.repo.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StaffResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStaffResponse(s))
	}
	return &dto.StaffListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *StaffUseCase) scoped(companyID, id string) (*entity.Staff, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func toStaffResponse(s *entity.Staff) *dto.StaffResponse {
	if s == nil {
		return nil
	}
	return &dto.StaffResponse{
		ID:         s.ID,
		CompanyID:  s.CompanyID,
		Name:       s.Name,
		Position:   s.Position,
		HourlyRate: s.HourlyRate,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
