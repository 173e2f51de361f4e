package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// UseCase es el único camino por el que cambia la cantidad de un repuesto.
// Cada cambio bloquea la fila (SELECT FOR UPDATE), escribe la nueva cantidad
// y deja un asiento inmutable en transactions, todo en una transacción.
type UseCase struct {
	txRunner TxRunner
	partRepo repository.PartRepository
}

// NewUseCase construye el ledger.
func NewUseCase(txRunner TxRunner, partRepo repository.PartRepository) *UseCase {
	return &UseCase{txRunner: txRunner, partRepo: partRepo}
}

// StockChangeInput entrada para ApplyStockChange.
// No lleva tipo de asiento: arrival/expense se deriva del signo de
// NewQuantity - cantidad actual, así el tipo nunca puede contradecir al delta.
type StockChangeInput struct {
	CompanyID   string
	UserID      string
	PartID      string
	NewQuantity int
	Description string
	EquipmentID *string
	RepairID    *string
}

// ConsumeInput entrada para ConsumePart / ReturnPart.
type ConsumeInput struct {
	CompanyID   string
	UserID      string
	PartID      string
	Quantity    int
	Reason      string
	EquipmentID *string
	RepairID    *string
}

// ApplyStockChange fija atómicamente la cantidad del repuesto en NewQuantity y
// registra un asiento por abs(delta). Rechaza NewQuantity == cantidad actual
// (un no-cambio no es un evento registrable) con ErrConflict.
func (uc *UseCase) ApplyStockChange(ctx context.Context, in StockChangeInput) (*entity.Part, error) {
	if in.NewQuantity < 0 {
		return nil, &domain.ValidationError{Field: "new_quantity", Reason: "debe ser un entero no negativo"}
	}
	if in.Description == "" {
		return nil, &domain.ValidationError{Field: "description", Reason: "es requerida"}
	}
	if err := uc.checkPartScope(in.CompanyID, in.PartID); err != nil {
		return nil, err
	}

	var updated *entity.Part
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		txRepo repository.TransactionRepository,
	) error {
		part, err := lockPart(partRepo, in.PartID)
		if err != nil {
			return err
		}
		p, err := applyLocked(partRepo, txRepo, part, in.NewQuantity, in.Description,
			in.CompanyID, in.UserID, in.EquipmentID, in.RepairID)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ConsumePart descuenta stock (asiento expense). Rechaza con
// InsufficientStockError cuando Quantity supera el stock disponible: el
// inventario nunca puede quedar negativo.
func (uc *UseCase) ConsumePart(ctx context.Context, in ConsumeInput) (*entity.Part, error) {
	if in.Quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "debe ser un entero positivo"}
	}
	if err := uc.checkPartScope(in.CompanyID, in.PartID); err != nil {
		return nil, err
	}

	var updated *entity.Part
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		txRepo repository.TransactionRepository,
	) error {
		p, err := ConsumeInTx(partRepo, txRepo, in)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ReturnPart devuelve stock (asiento arrival); inverso simétrico de ConsumePart.
func (uc *UseCase) ReturnPart(ctx context.Context, in ConsumeInput) (*entity.Part, error) {
	if in.Quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "debe ser un entero positivo"}
	}
	if err := uc.checkPartScope(in.CompanyID, in.PartID); err != nil {
		return nil, err
	}

	var updated *entity.Part
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		txRepo repository.TransactionRepository,
	) error {
		p, err := ReturnInTx(partRepo, txRepo, in)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ConsumeInTx ejecuta un consumo usando los repositorios del caller (misma
// transacción SQL). Lo usa el ciclo de vida de reparaciones para que el
// descuento de stock, la línea de la reparación y el asiento comprometan juntos.
func ConsumeInTx(
	partRepo repository.PartRepository,
	txRepo repository.TransactionRepository,
	in ConsumeInput,
) (*entity.Part, error) {
	part, err := lockPart(partRepo, in.PartID)
	if err != nil {
		return nil, err
	}
	if in.Quantity > part.Quantity {
		return nil, &domain.InsufficientStockError{
			PartID:    part.ID,
			Requested: in.Quantity,
			Available: part.Quantity,
		}
	}
	return applyLocked(partRepo, txRepo, part, part.Quantity-in.Quantity, in.Reason,
		in.CompanyID, in.UserID, in.EquipmentID, in.RepairID)
}

// ReturnInTx ejecuta una devolución usando los repositorios del caller.
func ReturnInTx(
	partRepo repository.PartRepository,
	txRepo repository.TransactionRepository,
	in ConsumeInput,
) (*entity.Part, error) {
	part, err := lockPart(partRepo, in.PartID)
	if err != nil {
		return nil, err
	}
	return applyLocked(partRepo, txRepo, part, part.Quantity+in.Quantity, in.Reason,
		in.CompanyID, in.UserID, in.EquipmentID, in.RepairID)
}

// RegisterInitialStock deja el asiento arrival de la cantidad inicial de un
// repuesto recién creado, usando los repositorios del caller.
func RegisterInitialStock(
	txRepo repository.TransactionRepository,
	part *entity.Part, userID string,
) error {
	if part.Quantity <= 0 {
		return nil
	}
	return txRepo.Create(&entity.Transaction{
		ID:          uuid.New().String(),
		CompanyID:   part.CompanyID,
		Type:        entity.TransactionArrival,
		PartID:      part.ID,
		PartName:    part.Name,
		Quantity:    part.Quantity,
		Description: "stock inicial",
		CreatedAt:   time.Now(),
		CreatedBy:   userID,
	})
}

// applyLocked escribe la nueva cantidad del repuesto ya bloqueado y deja el
// asiento correspondiente. El tipo se deriva del signo del delta.
func applyLocked(
	partRepo repository.PartRepository,
	txRepo repository.TransactionRepository,
	part *entity.Part,
	newQuantity int,
	description string,
	companyID, userID string,
	equipmentID, repairID *string,
) (*entity.Part, error) {
	delta := newQuantity - part.Quantity
	if delta == 0 {
		return nil, domain.ErrConflict
	}
	txType := entity.TransactionArrival
	qty := delta
	if delta < 0 {
		txType = entity.TransactionExpense
		qty = -delta
	}

	if err := partRepo.UpdateQuantity(part.ID, newQuantity); err != nil {
		return nil, err
	}
	tx := &entity.Transaction{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Type:        txType,
		PartID:      part.ID,
		PartName:    part.Name,
		Quantity:    qty,
		Description: description,
		EquipmentID: equipmentID,
		RepairID:    repairID,
		CreatedAt:   time.Now(),
		CreatedBy:   userID,
	}
	if err := txRepo.Create(tx); err != nil {
		return nil, err
	}
	part.Quantity = newQuantity
	return part, nil
}

func lockPart(partRepo repository.PartRepository, partID string) (*entity.Part, error) {
	part, err := partRepo.GetForUpdate(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return part, nil
}

// checkPartScope valida que el repuesto exista dentro del tenant del caller.
// Un recurso de otra empresa se reporta como no encontrado, no como prohibido,
// para no filtrar existencia entre tenants.
func (uc *UseCase) checkPartScope(companyID, partID string) error {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return err
	}
	if part == nil || part.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}
