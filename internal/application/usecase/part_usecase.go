package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
	"github.com/jhoicas/Taller-api/internal/application/repair"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// PartTxRunner reúne los dos contratos transaccionales que Parts necesita:
// Run para crear (insert + asiento inicial) y RunRepair para borrar, que debe
// poder consultar y limpiar las líneas de reparación del repuesto.
type PartTxRunner interface {
	ledger.TxRunner
	repair.TxRunner
}

// PartUseCase casos de uso CRUD para repuestos. La cantidad solo muta vía el
// ledger; aquí solo se fija la inicial al crear (con su asiento arrival) y se
// editan metadatos.
type PartUseCase struct {
	txRunner      PartTxRunner
	repo          repository.PartRepository
	containerRepo repository.ContainerRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(txRunner PartTxRunner, repo repository.PartRepository, containerRepo repository.ContainerRepository) *PartUseCase {
	return &PartUseCase{txRunner: txRunner, repo: repo, containerRepo: containerRepo}
}

// Create crea un repuesto. El artículo es único por empresa cuando viene; la
// cantidad inicial queda registrada como asiento arrival en la misma
// transacción que el insert.
func (uc *PartUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "es requerido"}
	}
	if in.InitialQuantity < 0 {
		return nil, &domain.ValidationError{Field: "initial_quantity", Reason: "debe ser un entero no negativo"}
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, &domain.ValidationError{Field: "price", Reason: "no puede ser negativo"}
	}
	if in.WeightKg != nil && in.WeightKg.IsNegative() {
		return nil, &domain.ValidationError{Field: "weight_kg", Reason: "no puede ser negativo"}
	}
	if in.WarrantyMonths != nil && *in.WarrantyMonths < 0 {
		return nil, &domain.ValidationError{Field: "warranty_months", Reason: "no puede ser negativo"}
	}
	if in.Article != "" {
		existing, err := uc.repo.GetByCompanyAndArticle(companyID, in.Article)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if in.ContainerID != nil {
		if err := uc.checkContainerScope(companyID, *in.ContainerID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	part := &entity.Part{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           in.Name,
		Article:        in.Article,
		Barcode:        in.Barcode,
		Type:           in.Type,
		Quantity:       in.InitialQuantity,
		Price:          in.Price,
		ContainerID:    in.ContainerID,
		Supplier:       in.Supplier,
		Brand:          in.Brand,
		WeightKg:       in.WeightKg,
		WarrantyMonths: in.WarrantyMonths,
		PhotoURLs:      in.PhotoURLs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		txRepo repository.TransactionRepository,
	) error {
		if err := partRepo.Create(part); err != nil {
			return err
		}
		return ledger.RegisterInitialStock(txRepo, part, userID)
	})
	if err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByID obtiene un repuesto dentro del tenant del caller.
func (uc *PartUseCase) GetByID(companyID, id string) (*dto.PartResponse, error) {
	part, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByBarcode resuelve un repuesto por código de barras (flujo de escaneo).
func (uc *PartUseCase) GetByBarcode(companyID, barcode string) (*dto.PartResponse, error) {
	if barcode == "" {
		return nil, &domain.ValidationError{Field: "barcode", Reason: "es requerido"}
	}
	part, err := uc.repo.GetByBarcode(companyID, barcode)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return toPartResponse(part), nil
}

// Update edita metadatos. Quantity no es editable aquí: pasa por el ledger.
func (uc *PartUseCase) Update(companyID, id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, &domain.ValidationError{Field: "price", Reason: "no puede ser negativo"}
	}
	if in.WeightKg != nil && in.WeightKg.IsNegative() {
		return nil, &domain.ValidationError{Field: "weight_kg", Reason: "no puede ser negativo"}
	}
	if in.WarrantyMonths != nil && *in.WarrantyMonths < 0 {
		return nil, &domain.ValidationError{Field: "warranty_months", Reason: "no puede ser negativo"}
	}
	if in.Article != nil && *in.Article != "" && *in.Article != part.Article {
		existing, err := uc.repo.GetByCompanyAndArticle(companyID, *in.Article)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != part.ID {
			return nil, domain.ErrDuplicate
		}
	}
	if in.ContainerID != nil && *in.ContainerID != "" {
		if err := uc.checkContainerScope(companyID, *in.ContainerID); err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		part.Name = *in.Name
	}
	if in.Article != nil {
		part.Article = *in.Article
	}
	if in.Barcode != nil {
		part.Barcode = *in.Barcode
	}
	if in.Type != nil {
		part.Type = *in.Type
	}
	if in.Price != nil {
		part.Price = in.Price
	}
	if in.ContainerID != nil {
		if *in.ContainerID == "" {
			part.ContainerID = nil
		} else {
			part.ContainerID = in.ContainerID
		}
	}
	if in.Supplier != nil {
		part.Supplier = *in.Supplier
	}
	if in.Brand != nil {
		part.Brand = *in.Brand
	}
	if in.WeightKg != nil {
		part.WeightKg = in.WeightKg
	}
	if in.WarrantyMonths != nil {
		part.WarrantyMonths = in.WarrantyMonths
	}
	if len(in.PhotoURLs) > 0 {
		part.PhotoURLs = in.PhotoURLs
	}
	part.UpdatedAt = time.Now()
	if err := uc.repo.Update(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// List lista repuestos por empresa; con query hace búsqueda por nombre/artículo/barcode.
func (uc *PartUseCase) List(companyID, query string, limit, offset int) (*dto.PartListResponse, error) {
	var (
		list []*entity.Part
		err  error
	)
	if query != "" {
		list, err = uc.repo.Search(companyID, query, limit, offset)
	} else {
		list, err = uc.repo.ListByCompany(companyID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina el repuesto y, como limpieza de almacenamiento (no regla de
// negocio), sus asientos del ledger y sus líneas en reparaciones terminales,
// en una sola transacción. Si una reparación abierta tiene una línea del
// repuesto, el borrado se rechaza con ErrConflict: la línea aún puede
// devolverse a bodega y eliminar el repuesto la dejaría irrecuperable.
func (uc *PartUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.scoped(companyID, id); err != nil {
		return err
	}
	return uc.txRunner.RunRepair(ctx, func(
		partRepo repository.PartRepository,
		txRepo repository.TransactionRepository,
		_ repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		open, err := repairRepo.HasOpenLinesByPart(id)
		if err != nil {
			return err
		}
		if open {
			return domain.ErrConflict
		}
		if err := repairRepo.DeleteLinesByPart(id); err != nil {
			return err
		}
		if err := txRepo.DeleteByPart(id); err != nil {
			return err
		}
		return partRepo.Delete(id)
	})
}

func (uc *PartUseCase) scoped(companyID, id string) (*entity.Part, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil || part.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return part, nil
}

func (uc *PartUseCase) checkContainerScope(companyID, containerID string) error {
	c, err := uc.containerRepo.GetByID(containerID)
	if err != nil {
		return err
	}
	if c == nil || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		ID:             p.ID,
		CompanyID:      p.CompanyID,
		Name:           p.Name,
		Article:        p.Article,
		Barcode:        p.Barcode,
		Type:           p.Type,
		Quantity:       p.Quantity,
		Price:          p.Price,
		ContainerID:    p.ContainerID,
		Supplier:       p.Supplier,
		Brand:          p.Brand,
		WeightKg:       p.WeightKg,
		WarrantyMonths: p.WarrantyMonths,
		PhotoURLs:      p.PhotoURLs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
