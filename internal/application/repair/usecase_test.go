package repair_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/repair"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePartRepo struct {
	parts map[string]*entity.Part
}

func (f *fakePartRepo) Create(p *entity.Part) error {
	cp := *p
	f.parts[p.ID] = &cp
	return nil
}

func (f *fakePartRepo) GetByID(id string) (*entity.Part, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePartRepo) GetForUpdate(id string) (*entity.Part, error) { return f.GetByID(id) }

func (f *fakePartRepo) UpdateQuantity(partID string, quantity int) error {
	p, ok := f.parts[partID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (f *fakePartRepo) GetByCompanyAndArticle(string, string) (*entity.Part, error) {
	return nil, nil
}
func (f *fakePartRepo) GetByBarcode(string, string) (*entity.Part, error)       { return nil, nil }
func (f *fakePartRepo) Update(*entity.Part) error                               { return nil }
func (f *fakePartRepo) ListByCompany(string, int, int) ([]*entity.Part, error)  { return nil, nil }
func (f *fakePartRepo) Search(string, string, int, int) ([]*entity.Part, error) { return nil, nil }
func (f *fakePartRepo) ListByContainer(string) ([]*entity.Part, error)          { return nil, nil }
func (f *fakePartRepo) NullifyContainer(string) error                           { return nil }
func (f *fakePartRepo) Delete(id string) error {
	delete(f.parts, id)
	return nil
}

type fakeTransactionRepo struct {
	entries []*entity.Transaction
}

func (f *fakeTransactionRepo) Create(tx *entity.Transaction) error {
	cp := *tx
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeTransactionRepo) SumSignedByPart(partID string) (int, error) {
	sum := 0
	for _, t := range f.entries {
		if t.PartID == partID {
			sum += t.SignedQuantity()
		}
	}
	return sum, nil
}

func (f *fakeTransactionRepo) ListByPart(string, *time.Time, *time.Time, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionRepo) ListByCompany(string, *time.Time, *time.Time, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionRepo) ListByEquipment(string, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionRepo) DeleteByPart(partID string) error {
	kept := f.entries[:0]
	for _, t := range f.entries {
		if t.PartID != partID {
			kept = append(kept, t)
		}
	}
	f.entries = kept
	return nil
}

type fakeEquipmentRepo struct {
	equipment map[string]*entity.Equipment
}

func (f *fakeEquipmentRepo) Create(eq *entity.Equipment) error {
	cp := *eq
	f.equipment[eq.ID] = &cp
	return nil
}

func (f *fakeEquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	eq, ok := f.equipment[id]
	if !ok {
		return nil, nil
	}
	cp := *eq
	return &cp, nil
}

func (f *fakeEquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	return f.GetByID(id)
}

func (f *fakeEquipmentRepo) Update(eq *entity.Equipment) error {
	cp := *eq
	f.equipment[eq.ID] = &cp
	return nil
}

func (f *fakeEquipmentRepo) UpdateStatus(id, status string) error {
	eq, ok := f.equipment[id]
	if !ok {
		return domain.ErrNotFound
	}
	eq.Status = status
	return nil
}

func (f *fakeEquipmentRepo) ListByCompany(string, int, int) ([]*entity.Equipment, error) {
	return nil, nil
}
func (f *fakeEquipmentRepo) Delete(string) error { return nil }

type fakeStaffRepo struct {
	staff map[string]*entity.Staff
}

func (f *fakeStaffRepo) Create(s *entity.Staff) error {
	cp := *s
	f.staff[s.ID] = &cp
	return nil
}

func (f *fakeStaffRepo) GetByID(id string) (*entity.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStaffRepo) Update(s *entity.Staff) error {
	cp := *s
	f.staff[s.ID] = &cp
	return nil
}

func (f *fakeStaffRepo) ListByCompany(string, string, int, int) ([]*entity.Staff, error) {
	return nil, nil
}

type fakeRepairRepo struct {
	repairs map[string]*entity.Repair
}

func cloneRepair(r *entity.Repair) *entity.Repair {
	cp := *r
	cp.Parts = append([]entity.RepairPart(nil), r.Parts...)
	cp.Staff = append([]entity.RepairStaff(nil), r.Staff...)
	return &cp
}

func (f *fakeRepairRepo) Create(r *entity.Repair) error {
	f.repairs[r.ID] = cloneRepair(r)
	return nil
}

func (f *fakeRepairRepo) GetByID(id string) (*entity.Repair, error) {
	r, ok := f.repairs[id]
	if !ok {
		return nil, nil
	}
	return cloneRepair(r), nil
}

func (f *fakeRepairRepo) GetForUpdate(id string) (*entity.Repair, error) { return f.GetByID(id) }

func (f *fakeRepairRepo) Update(r *entity.Repair) error {
	stored, ok := f.repairs[r.ID]
	if !ok {
		return domain.ErrNotFound
	}
	lines := stored.Parts
	staff := stored.Staff
	f.repairs[r.ID] = cloneRepair(r)
	// Las líneas las mutan Add/Remove, no Update.
	f.repairs[r.ID].Parts = lines
	f.repairs[r.ID].Staff = staff
	return nil
}

func (f *fakeRepairRepo) ListByCompany(companyID, status string, _, _ int) ([]*entity.Repair, error) {
	var out []*entity.Repair
	for _, r := range f.repairs {
		if r.CompanyID != companyID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, cloneRepair(r))
	}
	return out, nil
}

func (f *fakeRepairRepo) HasActiveByEquipment(equipmentID string) (bool, error) {
	for _, r := range f.repairs {
		if r.EquipmentID == equipmentID && r.Status == entity.RepairInProgress {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepairRepo) Delete(id string) error {
	delete(f.repairs, id)
	return nil
}

func (f *fakeRepairRepo) AddPartLine(line *entity.RepairPart) error {
	r, ok := f.repairs[line.RepairID]
	if !ok {
		return domain.ErrNotFound
	}
	r.Parts = append(r.Parts, *line)
	return nil
}

func (f *fakeRepairRepo) RemovePartLine(lineID string) error {
	for _, r := range f.repairs {
		for i, l := range r.Parts {
			if l.ID == lineID {
				r.Parts = append(r.Parts[:i], r.Parts[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeRepairRepo) GetPartLine(lineID string) (*entity.RepairPart, error) {
	for _, r := range f.repairs {
		for _, l := range r.Parts {
			if l.ID == lineID {
				cp := l
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeRepairRepo) AddStaffLine(line *entity.RepairStaff) error {
	r, ok := f.repairs[line.RepairID]
	if !ok {
		return domain.ErrNotFound
	}
	r.Staff = append(r.Staff, *line)
	return nil
}

func (f *fakeRepairRepo) RemoveStaffLine(lineID string) error {
	for _, r := range f.repairs {
		for i, l := range r.Staff {
			if l.ID == lineID {
				r.Staff = append(r.Staff[:i], r.Staff[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeRepairRepo) GetStaffLine(lineID string) (*entity.RepairStaff, error) {
	for _, r := range f.repairs {
		for _, l := range r.Staff {
			if l.ID == lineID {
				cp := l
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeRepairRepo) GetStaffLineByStaff(repairID, staffID string) (*entity.RepairStaff, error) {
	r, ok := f.repairs[repairID]
	if !ok {
		return nil, nil
	}
	for _, l := range r.Staff {
		if l.StaffID == staffID {
			cp := l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepairRepo) DeleteLinesByRepair(repairID string) error {
	if r, ok := f.repairs[repairID]; ok {
		r.Parts = nil
		r.Staff = nil
	}
	return nil
}

func (f *fakeRepairRepo) HasOpenLinesByPart(partID string) (bool, error) {
	for _, r := range f.repairs {
		if r.Terminal() {
			continue
		}
		for _, l := range r.Parts {
			if l.PartID == partID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeRepairRepo) DeleteLinesByPart(partID string) error {
	for _, r := range f.repairs {
		var kept []entity.RepairPart
		for _, l := range r.Parts {
			if l.PartID != partID {
				kept = append(kept, l)
			}
		}
		r.Parts = kept
	}
	return nil
}

type fakeTxRunner struct {
	partRepo      *fakePartRepo
	txRepo        *fakeTransactionRepo
	equipmentRepo *fakeEquipmentRepo
	repairRepo    *fakeRepairRepo
}

func (f *fakeTxRunner) RunRepair(_ context.Context, fn func(
	repository.PartRepository,
	repository.TransactionRepository,
	repository.EquipmentRepository,
	repository.RepairRepository,
) error) error {
	return fn(f.partRepo, f.txRepo, f.equipmentRepo, f.repairRepo)
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.PartRepository,
	repository.TransactionRepository,
) error) error {
	return fn(f.partRepo, f.txRepo)
}

type fakeContainerRepo struct{}

func (fakeContainerRepo) Create(*entity.Container) error              { return nil }
func (fakeContainerRepo) GetByID(string) (*entity.Container, error)   { return nil, nil }
func (fakeContainerRepo) Update(*entity.Container) error              { return nil }
func (fakeContainerRepo) Delete(string) error                         { return nil }
func (fakeContainerRepo) ListByCompany(string, int, int) ([]*entity.Container, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID      = "company-1"
	otherCompanyID = "company-2"
	userID         = "user-1"
)

type fixture struct {
	uc            *repair.UseCase
	runner        *fakeTxRunner
	partRepo      *fakePartRepo
	txRepo        *fakeTransactionRepo
	equipmentRepo *fakeEquipmentRepo
	staffRepo     *fakeStaffRepo
	repairRepo    *fakeRepairRepo
}

func newFixture() *fixture {
	partRepo := &fakePartRepo{parts: make(map[string]*entity.Part)}
	txRepo := &fakeTransactionRepo{}
	equipmentRepo := &fakeEquipmentRepo{equipment: make(map[string]*entity.Equipment)}
	staffRepo := &fakeStaffRepo{staff: make(map[string]*entity.Staff)}
	repairRepo := &fakeRepairRepo{repairs: make(map[string]*entity.Repair)}
	runner := &fakeTxRunner{
		partRepo:      partRepo,
		txRepo:        txRepo,
		equipmentRepo: equipmentRepo,
		repairRepo:    repairRepo,
	}
	return &fixture{
		uc:            repair.NewUseCase(runner, repairRepo, equipmentRepo, staffRepo),
		runner:        runner,
		partRepo:      partRepo,
		txRepo:        txRepo,
		equipmentRepo: equipmentRepo,
		staffRepo:     staffRepo,
		repairRepo:    repairRepo,
	}
}

func (f *fixture) seedEquipment(t *testing.T, status string) *entity.Equipment {
	t.Helper()
	eq := &entity.Equipment{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      "Excavadora CAT 320",
		Status:    status,
	}
	require.NoError(t, f.equipmentRepo.Create(eq))
	return eq
}

func (f *fixture) seedPart(t *testing.T, quantity int, price string) *entity.Part {
	t.Helper()
	pr := decimal.RequireFromString(price)
	p := &entity.Part{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      "filtro hidráulico",
		Quantity:  quantity,
		Price:     &pr,
	}
	require.NoError(t, f.partRepo.Create(p))
	return p
}

func (f *fixture) seedStaff(t *testing.T, status, rate string) *entity.Staff {
	t.Helper()
	s := &entity.Staff{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       "Carlos Pérez",
		Position:   "mecánico",
		HourlyRate: decimal.RequireFromString(rate),
		Status:     status,
	}
	require.NoError(t, f.staffRepo.Create(s))
	return s
}

// inProgressRepair crea y arranca una reparación sobre un equipo nuevo.
func (f *fixture) inProgressRepair(t *testing.T) (*entity.Repair, *entity.Equipment) {
	t.Helper()
	eq := f.seedEquipment(t, entity.EquipmentOperational)
	r, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateRepairRequest{
		EquipmentID: eq.ID,
		Description: "cambio de mangueras hidráulicas",
		Status:      entity.RepairInProgress,
	})
	require.NoError(t, err)
	return r, eq
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Start
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_PlannedPorDefecto(t *testing.T) {
	f := newFixture()
	eq := f.seedEquipment(t, entity.EquipmentOperational)

	r, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateRepairRequest{
		EquipmentID: eq.ID,
		Description: "revisión general",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RepairPlanned, r.Status)
	assert.Equal(t, entity.PriorityMedium, r.Priority, "prioridad por defecto")
	assert.Nil(t, r.StartDate)

	// Crear en planned no reclama el equipo.
	stored, _ := f.equipmentRepo.GetByID(eq.ID)
	assert.Equal(t, entity.EquipmentOperational, stored.Status)
}

func TestCreate_DirectoEnInProgressReclamaEquipo(t *testing.T) {
	f := newFixture()
	r, eq := f.inProgressRepair(t)

	assert.Equal(t, entity.RepairInProgress, r.Status)
	require.NotNil(t, r.StartDate)

	stored, _ := f.equipmentRepo.GetByID(eq.ID)
	assert.Equal(t, entity.EquipmentInRepair, stored.Status)
}

func TestStart_TransicionaYReclamaEquipo(t *testing.T) {
	f := newFixture()
	eq := f.seedEquipment(t, entity.EquipmentOperational)
	r, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateRepairRequest{
		EquipmentID: eq.ID,
		Description: "cambio de aceite",
	})
	require.NoError(t, err)

	out, err := f.uc.Start(context.Background(), companyID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RepairInProgress, out.Status)
	require.NotNil(t, out.StartDate)

	stored, _ := f.equipmentRepo.GetByID(eq.ID)
	assert.Equal(t, entity.EquipmentInRepair, stored.Status)
}

// Exclusividad: un solo in_progress por equipo.
func TestStart_EquipoYaEnReparacionEsConflicto(t *testing.T) {
	f := newFixture()
	_, eq := f.inProgressRepair(t)

	segunda, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateRepairRequest{
		EquipmentID: eq.ID,
		Description: "segunda orden sobre el mismo equipo",
	})
	require.NoError(t, err, "crear en planned siempre es válido")

	_, err = f.uc.Start(context.Background(), companyID, segunda.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStart_SoloDesdePlanned(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)

	_, err := f.uc.Start(context.Background(), companyID, r.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "start", stateErr.Op)
}

func TestCreate_EquipoDeOtroTenantEsNotFound(t *testing.T) {
	f := newFixture()
	eq := &entity.Equipment{
		ID:        uuid.New().String(),
		CompanyID: otherCompanyID,
		Status:    entity.EquipmentOperational,
	}
	require.NoError(t, f.equipmentRepo.Create(eq))

	_, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateRepairRequest{
		EquipmentID: eq.ID,
		Description: "no debería existir para este tenant",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// AttachPart / DetachPart
// ──────────────────────────────────────────────────────────────────────────────

func TestAttachPart_ConsumeStockYRecalculaCostos(t *testing.T) {
	f := newFixture()
	r, eq := f.inProgressRepair(t)
	p := f.seedPart(t, 10, "25000")

	out, err := f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID:   p.ID,
		Quantity: 3,
	})
	require.NoError(t, err)

	// Stock descontado y asiento expense ligado a la reparación y al equipo.
	stored, _ := f.partRepo.GetByID(p.ID)
	assert.Equal(t, 7, stored.Quantity)
	require.Len(t, f.txRepo.entries, 1)
	tx := f.txRepo.entries[0]
	assert.Equal(t, entity.TransactionExpense, tx.Type)
	require.NotNil(t, tx.RepairID)
	assert.Equal(t, r.ID, *tx.RepairID)
	require.NotNil(t, tx.EquipmentID)
	assert.Equal(t, eq.ID, *tx.EquipmentID)

	// Línea con snapshot de precio y costos re-derivados.
	require.Len(t, out.Parts, 1)
	line := out.Parts[0]
	assert.Equal(t, "75000", line.LineTotal.String())
	assert.Equal(t, "75000", out.PartsCost.String())
	assert.True(t, out.TotalCost.Equal(out.PartsCost.Add(out.LaborCost)),
		"TotalCost == PartsCost + LaborCost en toda mutación")
}

// El precio de la línea es snapshot: cambiar el precio del repuesto después no
// altera los costos de la reparación.
func TestAttachPart_PrecioEsSnapshot(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	p := f.seedPart(t, 10, "25000")

	out, err := f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID:   p.ID,
		Quantity: 1,
	})
	require.NoError(t, err)

	nuevo := decimal.RequireFromString("99000")
	stored := f.partRepo.parts[p.ID]
	stored.Price = &nuevo

	again, err := f.uc.GetByID(companyID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, out.PartsCost.String(), again.PartsCost.String())
	assert.Equal(t, "25000", again.Parts[0].UnitPrice.String())
}

func TestAttachPart_StockInsuficienteNoDejaNada(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	p := f.seedPart(t, 2, "10000")

	_, err := f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID:   p.ID,
		Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := f.repairRepo.GetByID(r.ID)
	assert.Empty(t, stored.Parts, "no debe quedar línea tras el rechazo")
	assert.Empty(t, f.txRepo.entries)
}

// Adjuntar repuestos exige in_progress: una planned no puede tener consumos.
func TestAttachPart_SoloEnInProgress(t *testing.T) {
	f := newFixture()
	eq := f.seedEquipment(t, entity.EquipmentOperational)
	r, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateRepairRequest{
		EquipmentID: eq.ID,
		Description: "todavía planificada",
	})
	require.NoError(t, err)
	p := f.seedPart(t, 10, "10000")

	_, err = f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID:   p.ID,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDetachPart_DevuelveStockYRecalcula(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	p := f.seedPart(t, 10, "25000")

	out, err := f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID:   p.ID,
		Quantity: 4,
	})
	require.NoError(t, err)
	lineID := out.Parts[0].ID

	out, err = f.uc.DetachPart(context.Background(), companyID, userID, r.ID, lineID)
	require.NoError(t, err)
	assert.Empty(t, out.Parts)
	assert.True(t, out.PartsCost.IsZero())

	// Stock restaurado; el ledger conserva ambos asientos (expense + arrival).
	stored, _ := f.partRepo.GetByID(p.ID)
	assert.Equal(t, 10, stored.Quantity)
	assert.Len(t, f.txRepo.entries, 2)
	sum, _ := f.txRepo.SumSignedByPart(p.ID)
	assert.Equal(t, 0, sum)
}

// ──────────────────────────────────────────────────────────────────────────────
// AttachStaff / DetachStaff
// ──────────────────────────────────────────────────────────────────────────────

func TestAttachStaff_SnapshotDeTarifa(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	s := f.seedStaff(t, entity.StaffActive, "30000")

	out, err := f.uc.AttachStaff(context.Background(), companyID, r.ID, dto.AttachStaffRequest{
		StaffID: s.ID,
		Hours:   decimal.RequireFromString("2.5"),
	})
	require.NoError(t, err)
	require.Len(t, out.Staff, 1)
	assert.Equal(t, "75000", out.Staff[0].LaborCost.String())
	assert.Equal(t, "75000", out.LaborCost.String())
	assert.True(t, out.TotalCost.Equal(out.PartsCost.Add(out.LaborCost)))
}

func TestAttachStaff_InactivoEsConflicto(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	s := f.seedStaff(t, entity.StaffInactive, "30000")

	_, err := f.uc.AttachStaff(context.Background(), companyID, r.ID, dto.AttachStaffRequest{
		StaffID: s.ID,
		Hours:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAttachStaff_DuplicadoRechazado(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	s := f.seedStaff(t, entity.StaffActive, "30000")

	_, err := f.uc.AttachStaff(context.Background(), companyID, r.ID, dto.AttachStaffRequest{
		StaffID: s.ID,
		Hours:   decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	_, err = f.uc.AttachStaff(context.Background(), companyID, r.ID, dto.AttachStaffRequest{
		StaffID: s.ID,
		Hours:   decimal.NewFromInt(3),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAttachStaff_HorasNoPositivasRechazadas(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	s := f.seedStaff(t, entity.StaffActive, "30000")

	_, err := f.uc.AttachStaff(context.Background(), companyID, r.ID, dto.AttachStaffRequest{
		StaffID: s.ID,
		Hours:   decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_CierraCostosYLiberaEquipo(t *testing.T) {
	f := newFixture()
	r, eq := f.inProgressRepair(t)
	p := f.seedPart(t, 10, "20000")
	s := f.seedStaff(t, entity.StaffActive, "40000")

	_, err := f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID: p.ID, Quantity: 2,
	})
	require.NoError(t, err)
	_, err = f.uc.AttachStaff(context.Background(), companyID, r.ID, dto.AttachStaffRequest{
		StaffID: s.ID, Hours: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	horas := decimal.RequireFromString("1250.5")
	km := decimal.RequireFromString("88000")
	out, err := f.uc.Complete(context.Background(), companyID, r.ID, dto.CompleteRepairRequest{
		Notes:            "se cambiaron mangueras y filtro",
		FinalEngineHours: &horas,
		FinalMileage:     &km,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RepairCompleted, out.Status)
	require.NotNil(t, out.EndDate)
	assert.Equal(t, "40000", out.PartsCost.String())
	assert.Equal(t, "120000", out.LaborCost.String())
	assert.Equal(t, "160000", out.TotalCost.String())

	// Lecturas finales aplicadas y equipo liberado.
	stored, _ := f.equipmentRepo.GetByID(eq.ID)
	assert.Equal(t, entity.EquipmentOperational, stored.Status)
	assert.Equal(t, "1250.5", stored.EngineHours.String())
	assert.Equal(t, "88000", stored.Mileage.String())
}

func TestComplete_LaborCostOverride(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	s := f.seedStaff(t, entity.StaffActive, "40000")
	_, err := f.uc.AttachStaff(context.Background(), companyID, r.ID, dto.AttachStaffRequest{
		StaffID: s.ID, Hours: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	acordado := decimal.RequireFromString("99999")
	out, err := f.uc.Complete(context.Background(), companyID, r.ID, dto.CompleteRepairRequest{
		LaborCost: &acordado,
	})
	require.NoError(t, err)
	assert.Equal(t, "99999", out.LaborCost.String(), "el override acordado manda sobre el derivado")
	assert.True(t, out.TotalCost.Equal(out.PartsCost.Add(out.LaborCost)))
}

// Sin lecturas finales, las del equipo no se tocan.
func TestComplete_SinLecturasNoMutaEquipo(t *testing.T) {
	f := newFixture()
	r, eq := f.inProgressRepair(t)
	antes := f.equipmentRepo.equipment[eq.ID]
	antes.EngineHours = decimal.RequireFromString("500")

	_, err := f.uc.Complete(context.Background(), companyID, r.ID, dto.CompleteRepairRequest{})
	require.NoError(t, err)

	stored, _ := f.equipmentRepo.GetByID(eq.ID)
	assert.Equal(t, "500", stored.EngineHours.String())
}

func TestComplete_SoloDesdeInProgress(t *testing.T) {
	f := newFixture()
	eq := f.seedEquipment(t, entity.EquipmentOperational)
	r, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateRepairRequest{
		EquipmentID: eq.ID,
		Description: "aún planificada",
	})
	require.NoError(t, err)

	_, err = f.uc.Complete(context.Background(), companyID, r.ID, dto.CompleteRepairRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel / Delete / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_ConservaLineasYLiberaEquipo(t *testing.T) {
	f := newFixture()
	r, eq := f.inProgressRepair(t)
	p := f.seedPart(t, 10, "15000")
	_, err := f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID: p.ID, Quantity: 2,
	})
	require.NoError(t, err)

	out, err := f.uc.Cancel(context.Background(), companyID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RepairCancelled, out.Status)

	// Los consumos no se reversan al cancelar; el historial queda intacto.
	stored, _ := f.partRepo.GetByID(p.ID)
	assert.Equal(t, 8, stored.Quantity)
	full, _ := f.uc.GetByID(companyID, r.ID)
	assert.Len(t, full.Parts, 1)

	eqStored, _ := f.equipmentRepo.GetByID(eq.ID)
	assert.Equal(t, entity.EquipmentOperational, eqStored.Status)
}

// Los estados terminales no admiten más mutación de líneas.
func TestTerminal_NoAdmiteMasLineas(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	p := f.seedPart(t, 10, "15000")
	_, err := f.uc.Cancel(context.Background(), companyID, r.ID)
	require.NoError(t, err)

	_, err = f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID: p.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	s := f.seedStaff(t, entity.StaffActive, "30000")
	_, err = f.uc.AttachStaff(context.Background(), companyID, r.ID, dto.AttachStaffRequest{
		StaffID: s.ID, Hours: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDelete_SoloPlanned(t *testing.T) {
	f := newFixture()
	eq := f.seedEquipment(t, entity.EquipmentOperational)
	r, err := f.uc.Create(context.Background(), companyID, userID, dto.CreateRepairRequest{
		EquipmentID: eq.ID,
		Description: "planificada, se puede borrar",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), companyID, r.ID))
	_, err = f.uc.GetByID(companyID, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una reparación iniciada es registro de auditoría: no se borra.
func TestDelete_IniciadaRechazada(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)

	err := f.uc.Delete(context.Background(), companyID, r.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "delete", stateErr.Op)
}

func TestUpdate_SoloCamposDescriptivos(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)

	desc := "descripción corregida"
	prio := entity.PriorityCritical
	out, err := f.uc.Update(context.Background(), companyID, r.ID, dto.UpdateRepairRequest{
		Description: &desc,
		Priority:    &prio,
	})
	require.NoError(t, err)
	assert.Equal(t, desc, out.Description)
	assert.Equal(t, prio, out.Priority)
	assert.Equal(t, entity.RepairInProgress, out.Status, "el estado no muta por Update")
}

func TestUpdate_TerminalRechazado(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	_, err := f.uc.Cancel(context.Background(), companyID, r.ID)
	require.NoError(t, err)

	desc := "tarde"
	_, err = f.uc.Update(context.Background(), companyID, r.ID, dto.UpdateRepairRequest{Description: &desc})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento entre tenants
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_OtroTenantEsNotFound(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)

	_, err := f.uc.GetByID(otherCompanyID, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado de repuestos con líneas de reparación
// ──────────────────────────────────────────────────────────────────────────────

// Un repuesto consumido por una reparación abierta no puede borrarse: la línea
// aún puede devolverse a bodega y borrar el repuesto la dejaría irrecuperable.
func TestPartDelete_ConLineaEnReparacionAbiertaEsConflicto(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	p := f.seedPart(t, 10, "10000")
	_, err := f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID: p.ID, Quantity: 2,
	})
	require.NoError(t, err)

	partUC := usecase.NewPartUseCase(f.runner, f.partRepo, fakeContainerRepo{})
	err = partUC.Delete(context.Background(), companyID, p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// El repuesto sigue existiendo y la línea sigue siendo devolvible.
	stored, _ := f.partRepo.GetByID(p.ID)
	require.NotNil(t, stored)
	full, err := f.uc.GetByID(companyID, r.ID)
	require.NoError(t, err)
	require.Len(t, full.Parts, 1)

	_, err = f.uc.DetachPart(context.Background(), companyID, userID, r.ID, full.Parts[0].ID)
	require.NoError(t, err)
	stored, _ = f.partRepo.GetByID(p.ID)
	assert.Equal(t, 10, stored.Quantity, "la devolución restaura el stock completo")
}

// Con la reparación cerrada, el borrado limpia líneas y asientos; los costos
// cerrados en la cabecera no cambian.
func TestPartDelete_TrasCierreLimpiaLineasYAsientos(t *testing.T) {
	f := newFixture()
	r, _ := f.inProgressRepair(t)
	p := f.seedPart(t, 10, "10000")
	_, err := f.uc.AttachPart(context.Background(), companyID, userID, r.ID, dto.AttachPartRequest{
		PartID: p.ID, Quantity: 2,
	})
	require.NoError(t, err)
	_, err = f.uc.Complete(context.Background(), companyID, r.ID, dto.CompleteRepairRequest{})
	require.NoError(t, err)

	partUC := usecase.NewPartUseCase(f.runner, f.partRepo, fakeContainerRepo{})
	require.NoError(t, partUC.Delete(context.Background(), companyID, p.ID))

	gone, _ := f.partRepo.GetByID(p.ID)
	assert.Nil(t, gone)
	for _, tx := range f.txRepo.entries {
		assert.NotEqual(t, p.ID, tx.PartID, "no deben quedar asientos del repuesto")
	}
	full, err := f.uc.GetByID(companyID, r.ID)
	require.NoError(t, err)
	assert.Empty(t, full.Parts)
	assert.Equal(t, "20000", full.PartsCost.String(), "los costos cerrados no cambian")
}
