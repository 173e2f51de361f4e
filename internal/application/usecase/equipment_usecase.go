package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// EquipmentUseCase casos de uso CRUD para equipos. Mientras el equipo tiene
// una reparación activa su estado lo gobierna el ciclo de vida: el cliente no
// puede fijarlo ni sacarlo de in_repair por aquí.
type EquipmentUseCase struct {
	repo       repository.EquipmentRepository
	repairRepo repository.RepairRepository
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository, repairRepo repository.RepairRepository) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, repairRepo: repairRepo}
}

// Create registra un equipo. Estado inicial operational o broken.
func (uc *EquipmentUseCase) Create(companyID string, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "es requerido"}
	}
	status := in.Status
	if status == "" {
		status = entity.EquipmentOperational
	}
	if status == entity.EquipmentInRepair || !entity.ValidEquipmentStatus(status) {
		return nil, &domain.ValidationError{Field: "status", Reason: "solo operational o broken al crear"}
	}
	engineHours := decimal.Zero
	if in.EngineHours != nil {
		if in.EngineHours.IsNegative() {
			return nil, &domain.ValidationError{Field: "engine_hours", Reason: "no puede ser negativo"}
		}
		engineHours = *in.EngineHours
	}
	mileage := decimal.Zero
	if in.Mileage != nil {
		if in.Mileage.IsNegative() {
			return nil, &domain.ValidationError{Field: "mileage", Reason: "no puede ser negativo"}
		}
		mileage = *in.Mileage
	}

	now := time.Now()
	eq := &entity.Equipment{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Type:        in.Type,
		Model:       in.Model,
		Serial:      in.Serial,
		EngineHours: engineHours,
		Mileage:     mileage,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(eq); err != nil {
		return nil, err
	}
	return toEquipmentResponse(eq), nil
}

// GetByID obtiene un equipo dentro del tenant del caller.
func (uc *EquipmentUseCase) GetByID(companyID, id string) (*dto.EquipmentResponse, error) {
	eq, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return toEquipmentResponse(eq), nil
}

// Update edita un equipo. Con reparación activa el estado no es editable:
// el intento se rechaza como conflicto, no se ignora en silencio.
func (uc *EquipmentUseCase) Update(companyID, id string, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	eq, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.EngineHours != nil && in.EngineHours.IsNegative() {
		return nil, &domain.ValidationError{Field: "engine_hours", Reason: "no puede ser negativo"}
	}
	if in.Mileage != nil && in.Mileage.IsNegative() {
		return nil, &domain.ValidationError{Field: "mileage", Reason: "no puede ser negativo"}
	}
	if in.Status != nil {
		if eq.Status == entity.EquipmentInRepair {
			return nil, domain.ErrConflict
		}
		if *in.Status == entity.EquipmentInRepair || !entity.ValidEquipmentStatus(*in.Status) {
			return nil, &domain.ValidationError{Field: "status", Reason: "solo operational o broken"}
		}
		eq.Status = *in.Status
	}
	if in.Name != nil {
		eq.Name = *in.Name
	}
	if in.Type != nil {
		eq.Type = *in.Type
	}
	if in.Model != nil {
		eq.Model = *in.Model
	}
	if in.Serial != nil {
		eq.Serial = *in.Serial
	}
	if in.EngineHours != nil {
		eq.EngineHours = *in.EngineHours
	}
	if in.Mileage != nil {
		eq.Mileage = *in.Mileage
	}
	eq.UpdatedAt = time.Now()
	if err := uc.repo.Update(eq); err != nil {
		return nil, err
	}
	return toEquipmentResponse(eq), nil
}

// List lista equipos por empresa con paginación.
func (uc *EquipmentUseCase) List(companyID string, limit, offset int) (*dto.EquipmentListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EquipmentResponse, 0, len(list))
	for _, eq := range list {
		items = append(items, *toEquipmentResponse(eq))
	}
	return &dto.EquipmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un equipo sin reparaciones en curso.
func (uc *EquipmentUseCase) Delete(companyID, id string) error {
	eq, err := uc.scoped(companyID, id)
	if err != nil {
		return err
	}
	active, err := uc.repairRepo.HasActiveByEquipment(eq.ID)
	if err != nil {
		return err
	}
	if active {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func (uc *EquipmentUseCase) scoped(companyID, id string) (*entity.Equipment, error) {
	eq, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if eq == nil || eq.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return eq, nil
}

func toEquipmentResponse(eq *entity.Equipment) *dto.EquipmentResponse {
	if eq == nil {
		return nil
	}
	return &dto.EquipmentResponse{
		ID:          eq.ID,
		CompanyID:   eq.CompanyID,
		Name:        eq.Name,
		Type:        eq.Type,
		Model:       eq.Model,
		Serial:      eq.Serial,
		EngineHours: eq.EngineHours,
		Mileage:     eq.Mileage,
		Status:      eq.Status,
		CreatedAt:   eq.CreatedAt,
		UpdatedAt:   eq.UpdatedAt,
	}
}
