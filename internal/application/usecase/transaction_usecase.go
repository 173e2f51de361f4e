package usecase

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TransactionUseCase consultas de solo lectura sobre el ledger. No existe
// escritura aquí: los asientos solo los crea el ledger.
type TransactionUseCase struct {
	repo          repository.TransactionRepository
	partRepo      repository.PartRepository
	equipmentRepo repository.EquipmentRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	repo repository.TransactionRepository,
	partRepo repository.PartRepository,
	equipmentRepo repository.EquipmentRepository,
) *TransactionUseCase {
	return &TransactionUseCase{repo: repo, partRepo: partRepo, equipmentRepo: equipmentRepo}
}

// ListByCompany lista asientos de la empresa en un rango de fechas.
func (uc *TransactionUseCase) ListByCompany(companyID string, from, to *time.Time, limit, offset int) (*dto.TransactionListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toTransactionList(list, limit, offset), nil
}

// ListByPart lista el historial de un repuesto (verificando tenant).
func (uc *TransactionUseCase) ListByPart(companyID, partID string, from, to *time.Time, limit, offset int) (*dto.TransactionListResponse, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil || part.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByPart(partID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toTransactionList(list, limit, offset), nil
}

// ListByEquipment lista asientos ligados a un equipo (verificando tenant).
func (uc *TransactionUseCase) ListByEquipment(companyID, equipmentID string, limit, offset int) (*dto.TransactionListResponse, error) {
	eq, err := uc.equipmentRepo.GetByID(equipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil || eq.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByEquipment(equipmentID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toTransactionList(list, limit, offset), nil
}

func toTransactionList(list []*entity.Transaction, limit, offset int) *dto.TransactionListResponse {
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.TransactionResponse{
			ID:          t.ID,
			CompanyID:   t.CompanyID,
			Type:        t.Type,
			PartID:      t.PartID,
			PartName:    t.PartName,
			Quantity:    t.Quantity,
			Description: t.Description,
			EquipmentID: t.EquipmentID,
			RepairID:    t.RepairID,
			CreatedAt:   t.CreatedAt,
			CreatedBy:   t.CreatedBy,
		})
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
