package repair

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	domrepair "github.com/jhoicas/Taller-api/internal/domain/repair"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// UseCase implementa la máquina de estados de reparaciones:
// planned -> in_progress -> {completed, cancelled}. Los estados terminales no
// admiten más líneas; iniciar una reparación reclama el equipo (in_repair) y
// completar/cancelar lo libera (operational).
type UseCase struct {
	txRunner      TxRunner
	repairRepo    repository.RepairRepository
	equipmentRepo repository.EquipmentRepository
	staffRepo     repository.StaffRepository
}

// NewUseCase construye el caso de uso del ciclo de vida.
func NewUseCase(
	txRunner TxRunner,
	repairRepo repository.RepairRepository,
	equipmentRepo repository.EquipmentRepository,
	staffRepo repository.StaffRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		repairRepo:    repairRepo,
		equipmentRepo: equipmentRepo,
		staffRepo:     staffRepo,
	}
}

// Create crea una reparación en planned o, si se pide, directamente en
// in_progress (reclamando el equipo en el mismo paso).
func (uc *UseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateRepairRequest) (*entity.Repair, error) {
	if in.Description == "" {
		return nil, &domain.ValidationError{Field: "description", Reason: "es requerida"}
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.ValidPriority(priority) {
		return nil, &domain.ValidationError{Field: "priority", Reason: "valor desconocido"}
	}
	status := in.Status
	if status == "" {
		status = entity.RepairPlanned
	}
	if status != entity.RepairPlanned && status != entity.RepairInProgress {
		return nil, &domain.ValidationError{Field: "status", Reason: "solo planned o in_progress al crear"}
	}
	if err := uc.checkEquipmentScope(companyID, in.EquipmentID); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &entity.Repair{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		EquipmentID: in.EquipmentID,
		Description: in.Description,
		Priority:    priority,
		Status:      entity.RepairPlanned,
		PartsCost:   decimal.Zero,
		LaborCost:   decimal.Zero,
		TotalCost:   decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.RunRepair(ctx, func(
		_ repository.PartRepository,
		_ repository.TransactionRepository,
		equipmentRepo repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		if status == entity.RepairInProgress {
			if err := claimEquipment(equipmentRepo, r.EquipmentID); err != nil {
				return err
			}
			r.Status = entity.RepairInProgress
			r.StartDate = &now
		}
		return repairRepo.Create(r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Start transiciona planned -> in_progress y reclama el equipo.
func (uc *UseCase) Start(ctx context.Context, companyID, repairID string) (*entity.Repair, error) {
	var out *entity.Repair
	err := uc.txRunner.RunRepair(ctx, func(
		_ repository.PartRepository,
		_ repository.TransactionRepository,
		equipmentRepo repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		r, err := lockRepair(repairRepo, companyID, repairID)
		if err != nil {
			return err
		}
		if r.Status != entity.RepairPlanned {
			return &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "start"}
		}
		if err := claimEquipment(equipmentRepo, r.EquipmentID); err != nil {
			return err
		}
		now := time.Now()
		r.Status = entity.RepairInProgress
		r.StartDate = &now
		r.UpdatedAt = now
		if err := repairRepo.Update(r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AttachPart consume stock vía el ledger y agrega la línea con snapshot de
// precio, todo en la misma transacción. Solo válido en in_progress: una
// reparación no iniciada no puede tener asientos en el ledger (invariante que
// habilita el borrado de reparaciones planificadas sin reversas).
func (uc *UseCase) AttachPart(ctx context.Context, companyID, userID, repairID string, in dto.AttachPartRequest) (*entity.Repair, error) {
	if in.Quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "debe ser un entero positivo"}
	}
	var out *entity.Repair
	err := uc.txRunner.RunRepair(ctx, func(
		partRepo repository.PartRepository,
		txRepo repository.TransactionRepository,
		_ repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		r, err := lockRepair(repairRepo, companyID, repairID)
		if err != nil {
			return err
		}
		if r.Status != entity.RepairInProgress {
			return &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "attach_part"}
		}
		part, err := partRepo.GetByID(in.PartID)
		if err != nil {
			return err
		}
		if part == nil || part.CompanyID != companyID {
			return domain.ErrNotFound
		}

		if _, err := ledger.ConsumeInTx(partRepo, txRepo, ledger.ConsumeInput{
			CompanyID:   companyID,
			UserID:      userID,
			PartID:      part.ID,
			Quantity:    in.Quantity,
			Reason:      "consumo en reparación: " + r.Description,
			EquipmentID: &r.EquipmentID,
			RepairID:    &r.ID,
		}); err != nil {
			return err
		}

		unitPrice := part.UnitPrice()
		line := entity.RepairPart{
			ID:        uuid.New().String(),
			RepairID:  r.ID,
			PartID:    part.ID,
			PartName:  part.Name,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			LineTotal: decimal.NewFromInt(int64(in.Quantity)).Mul(unitPrice),
			CreatedAt: time.Now(),
		}
		if err := repairRepo.AddPartLine(&line); err != nil {
			return err
		}
		r.Parts = append(r.Parts, line)
		return saveRecomputed(repairRepo, r, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DetachPart quita la línea y devuelve el stock consumido (asiento arrival).
// Es el único punto por donde el inventario fluye de una reparación de vuelta
// a bodega.
func (uc *UseCase) DetachPart(ctx context.Context, companyID, userID, repairID, lineID string) (*entity.Repair, error) {
	var out *entity.Repair
	err := uc.txRunner.RunRepair(ctx, func(
		partRepo repository.PartRepository,
		txRepo repository.TransactionRepository,
		_ repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		r, err := lockRepair(repairRepo, companyID, repairID)
		if err != nil {
			return err
		}
		if r.Terminal() {
			return &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "detach_part"}
		}
		idx := -1
		for i, l := range r.Parts {
			if l.ID == lineID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		line := r.Parts[idx]

		if _, err := ledger.ReturnInTx(partRepo, txRepo, ledger.ConsumeInput{
			CompanyID:   companyID,
			UserID:      userID,
			PartID:      line.PartID,
			Quantity:    line.Quantity,
			Reason:      "devolución de reparación: " + r.Description,
			EquipmentID: &r.EquipmentID,
			RepairID:    &r.ID,
		}); err != nil {
			return err
		}
		if err := repairRepo.RemovePartLine(line.ID); err != nil {
			return err
		}
		r.Parts = append(r.Parts[:idx], r.Parts[idx+1:]...)
		return saveRecomputed(repairRepo, r, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AttachStaff asigna un empleado activo con snapshot de tarifa. Un empleado no
// puede asignarse dos veces a la misma reparación.
func (uc *UseCase) AttachStaff(ctx context.Context, companyID, repairID string, in dto.AttachStaffRequest) (*entity.Repair, error) {
	if in.Hours.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "hours", Reason: "debe ser un número positivo"}
	}
	staff, err := uc.staffRepo.GetByID(in.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if staff.Status != entity.StaffActive {
		return nil, domain.ErrConflict
	}

	var out *entity.Repair
	err = uc.txRunner.RunRepair(ctx, func(
		_ repository.PartRepository,
		_ repository.TransactionRepository,
		_ repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		r, err := lockRepair(repairRepo, companyID, repairID)
		if err != nil {
			return err
		}
		if r.Terminal() {
			return &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "attach_staff"}
		}
		existing, err := repairRepo.GetStaffLineByStaff(r.ID, staff.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		line := entity.RepairStaff{
			ID:         uuid.New().String(),
			RepairID:   r.ID,
			StaffID:    staff.ID,
			StaffName:  staff.Name,
			Hours:      in.Hours,
			HourlyRate: staff.HourlyRate,
			LaborCost:  in.Hours.Mul(staff.HourlyRate),
			CreatedAt:  time.Now(),
		}
		if err := repairRepo.AddStaffLine(&line); err != nil {
			return err
		}
		r.Staff = append(r.Staff, line)
		return saveRecomputed(repairRepo, r, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DetachStaff quita la línea de un empleado y recalcula costos.
func (uc *UseCase) DetachStaff(ctx context.Context, companyID, repairID, lineID string) (*entity.Repair, error) {
	var out *entity.Repair
	err := uc.txRunner.RunRepair(ctx, func(
		_ repository.PartRepository,
		_ repository.TransactionRepository,
		_ repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		r, err := lockRepair(repairRepo, companyID, repairID)
		if err != nil {
			return err
		}
		if r.Terminal() {
			return &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "detach_staff"}
		}
		idx := -1
		for i, l := range r.Staff {
			if l.ID == lineID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		if err := repairRepo.RemoveStaffLine(lineID); err != nil {
			return err
		}
		r.Staff = append(r.Staff[:idx], r.Staff[idx+1:]...)
		return saveRecomputed(repairRepo, r, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Complete cierra in_progress -> completed. PartsCost se re-deriva de las
// líneas (no se confía en el acumulado), LaborCost admite override acordado,
// las lecturas finales se aplican al equipo solo si vienen, y el equipo vuelve
// a operational.
func (uc *UseCase) Complete(ctx context.Context, companyID, repairID string, in dto.CompleteRepairRequest) (*entity.Repair, error) {
	if in.LaborCost != nil && in.LaborCost.IsNegative() {
		return nil, &domain.ValidationError{Field: "labor_cost", Reason: "no puede ser negativo"}
	}
	if in.FinalEngineHours != nil && in.FinalEngineHours.IsNegative() {
		return nil, &domain.ValidationError{Field: "final_engine_hours", Reason: "no puede ser negativo"}
	}
	if in.FinalMileage != nil && in.FinalMileage.IsNegative() {
		return nil, &domain.ValidationError{Field: "final_mileage", Reason: "no puede ser negativo"}
	}

	var out *entity.Repair
	err := uc.txRunner.RunRepair(ctx, func(
		_ repository.PartRepository,
		_ repository.TransactionRepository,
		equipmentRepo repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		r, err := lockRepair(repairRepo, companyID, repairID)
		if err != nil {
			return err
		}
		if r.Status != entity.RepairInProgress {
			return &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "complete"}
		}

		r.PartsCost = domrepair.PartsCost(r.Parts)
		if in.LaborCost != nil {
			r.LaborCost = *in.LaborCost
		} else {
			r.LaborCost = domrepair.LaborCost(r.Staff)
		}
		r.TotalCost = r.PartsCost.Add(r.LaborCost)

		now := time.Now()
		r.Status = entity.RepairCompleted
		r.EndDate = &now
		r.CompletionNotes = in.Notes
		r.FinalEngineHours = in.FinalEngineHours
		r.FinalMileage = in.FinalMileage
		r.UpdatedAt = now

		eq, err := equipmentRepo.GetForUpdate(r.EquipmentID)
		if err != nil {
			return err
		}
		if eq == nil {
			return domain.ErrNotFound
		}
		if in.FinalEngineHours != nil {
			eq.EngineHours = *in.FinalEngineHours
		}
		if in.FinalMileage != nil {
			eq.Mileage = *in.FinalMileage
		}
		eq.Status = entity.EquipmentOperational
		eq.UpdatedAt = now
		if err := equipmentRepo.Update(eq); err != nil {
			return err
		}
		if err := repairRepo.Update(r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel cierra in_progress -> cancelled. Las líneas y asientos existentes se
// conservan tal cual (no hay reversa automática de stock); el equipo se libera.
func (uc *UseCase) Cancel(ctx context.Context, companyID, repairID string) (*entity.Repair, error) {
	var out *entity.Repair
	err := uc.txRunner.RunRepair(ctx, func(
		_ repository.PartRepository,
		_ repository.TransactionRepository,
		equipmentRepo repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		r, err := lockRepair(repairRepo, companyID, repairID)
		if err != nil {
			return err
		}
		if r.Status != entity.RepairInProgress {
			return &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "cancel"}
		}
		now := time.Now()
		r.Status = entity.RepairCancelled
		r.EndDate = &now
		r.UpdatedAt = now
		if err := equipmentRepo.UpdateStatus(r.EquipmentID, entity.EquipmentOperational); err != nil {
			return err
		}
		if err := repairRepo.Update(r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina una reparación solo mientras está en planned: una vez
// iniciada es registro de auditoría y no puede borrarse. Una reparación
// planificada no tiene asientos en el ledger, así que no hay nada que reversar;
// solo se limpian sus líneas de personal.
func (uc *UseCase) Delete(ctx context.Context, companyID, repairID string) error {
	return uc.txRunner.RunRepair(ctx, func(
		_ repository.PartRepository,
		_ repository.TransactionRepository,
		_ repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		r, err := lockRepair(repairRepo, companyID, repairID)
		if err != nil {
			return err
		}
		if r.Status != entity.RepairPlanned {
			return &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "delete"}
		}
		if err := repairRepo.DeleteLinesByRepair(r.ID); err != nil {
			return err
		}
		return repairRepo.Delete(r.ID)
	})
}

// Update modifica los campos descriptivos de una reparación no terminal.
// Estado y costos nunca se editan por aquí: mutan por las transiciones.
func (uc *UseCase) Update(ctx context.Context, companyID, repairID string, in dto.UpdateRepairRequest) (*entity.Repair, error) {
	if in.Priority != nil && !entity.ValidPriority(*in.Priority) {
		return nil, &domain.ValidationError{Field: "priority", Reason: "valor desconocido"}
	}
	var out *entity.Repair
	err := uc.txRunner.RunRepair(ctx, func(
		_ repository.PartRepository,
		_ repository.TransactionRepository,
		_ repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error {
		r, err := lockRepair(repairRepo, companyID, repairID)
		if err != nil {
			return err
		}
		if r.Terminal() {
			return &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "update"}
		}
		if in.Description != nil {
			if *in.Description == "" {
				return &domain.ValidationError{Field: "description", Reason: "no puede quedar vacía"}
			}
			r.Description = *in.Description
		}
		if in.Priority != nil {
			r.Priority = *in.Priority
		}
		r.UpdatedAt = time.Now()
		if err := repairRepo.Update(r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID devuelve el agregado completo dentro del tenant del caller.
func (uc *UseCase) GetByID(companyID, repairID string) (*entity.Repair, error) {
	r, err := uc.repairRepo.GetByID(repairID)
	if err != nil {
		return nil, err
	}
	if r == nil || r.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// List lista reparaciones de la empresa, opcionalmente filtradas por estado.
func (uc *UseCase) List(companyID, status string, limit, offset int) ([]*entity.Repair, error) {
	return uc.repairRepo.ListByCompany(companyID, status, limit, offset)
}

// claimEquipment bloquea la fila del equipo y lo marca in_repair. Falla con
// ErrConflict si ya está en reparación en otra orden (exclusividad: un solo
// in_progress por equipo).
func claimEquipment(equipmentRepo repository.EquipmentRepository, equipmentID string) error {
	eq, err := equipmentRepo.GetForUpdate(equipmentID)
	if err != nil {
		return err
	}
	if eq == nil {
		return domain.ErrNotFound
	}
	if eq.Status == entity.EquipmentInRepair {
		return domain.ErrConflict
	}
	return equipmentRepo.UpdateStatus(equipmentID, entity.EquipmentInRepair)
}

// lockRepair carga el agregado con FOR UPDATE y valida el tenant.
func lockRepair(repairRepo repository.RepairRepository, companyID, repairID string) (*entity.Repair, error) {
	r, err := repairRepo.GetForUpdate(repairID)
	if err != nil {
		return nil, err
	}
	if r == nil || r.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// saveRecomputed re-deriva los costos desde las líneas y persiste la cabecera.
func saveRecomputed(repairRepo repository.RepairRepository, r *entity.Repair, out **entity.Repair) error {
	domrepair.Recompute(r)
	r.UpdatedAt = time.Now()
	if err := repairRepo.Update(r); err != nil {
		return err
	}
	*out = r
	return nil
}

func (uc *UseCase) checkEquipmentScope(companyID, equipmentID string) error {
	eq, err := uc.equipmentRepo.GetByID(equipmentID)
	if err != nil {
		return err
	}
	if eq == nil || eq.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}
