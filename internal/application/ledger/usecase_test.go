package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/ledger"
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

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{parts: make(map[string]*entity.Part)}
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

func (f *fakePartRepo) GetByCompanyAndArticle(companyID, article string) (*entity.Part, error) {
	for _, p := range f.parts {
		if p.CompanyID == companyID && p.Article == article {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePartRepo) GetByBarcode(companyID, barcode string) (*entity.Part, error) {
	for _, p := range f.parts {
		if p.CompanyID == companyID && p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePartRepo) GetForUpdate(id string) (*entity.Part, error) {
	return f.GetByID(id)
}

func (f *fakePartRepo) Update(p *entity.Part) error {
	cp := *p
	f.parts[p.ID] = &cp
	return nil
}

func (f *fakePartRepo) UpdateQuantity(partID string, quantity int) error {
	p, ok := f.parts[partID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (f *fakePartRepo) ListByCompany(string, int, int) ([]*entity.Part, error)   { return nil, nil }
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

func (f *fakeTransactionRepo) ListByPart(partID string, _, _ *time.Time, _, _ int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range f.entries {
		if t.PartID == partID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) ListByCompany(string, *time.Time, *time.Time, int, int) ([]*entity.Transaction, error) {
	return f.entries, nil
}

func (f *fakeTransactionRepo) ListByEquipment(string, int, int) ([]*entity.Transaction, error) {
	return nil, nil
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

func (f *fakeTransactionRepo) DeleteByPart(partID string) error {
	var kept []*entity.Transaction
	for _, t := range f.entries {
		if t.PartID != partID {
			kept = append(kept, t)
		}
	}
	f.entries = kept
	return nil
}

// fakeTxRunner ejecuta el callback sobre los fakes, serializado con un mutex
// que modela el lock de fila (SELECT FOR UPDATE) de la implementación de
// postgres: dos consumos concurrentes del mismo repuesto nunca ven el mismo
// stock. La atomicidad real la cubre esa implementación.
type fakeTxRunner struct {
	mu       sync.Mutex
	partRepo *fakePartRepo
	txRepo   *fakeTransactionRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.PartRepository, repository.TransactionRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.partRepo, f.txRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID      = "company-1"
	otherCompanyID = "company-2"
	userID         = "user-1"
)

func newFixture() (*ledger.UseCase, *fakePartRepo, *fakeTransactionRepo) {
	partRepo := newFakePartRepo()
	txRepo := &fakeTransactionRepo{}
	uc := ledger.NewUseCase(&fakeTxRunner{partRepo: partRepo, txRepo: txRepo}, partRepo)
	return uc, partRepo, txRepo
}

func seedPart(t *testing.T, repo *fakePartRepo, company string, quantity int) *entity.Part {
	t.Helper()
	p := &entity.Part{
		ID:        uuid.New().String(),
		CompanyID: company,
		Name:      gofakeit.ProductName(),
		Article:   gofakeit.LetterN(8),
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(p))
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyStockChange
// ──────────────────────────────────────────────────────────────────────────────

// Subir la cantidad genera un asiento arrival por el delta.
func TestApplyStockChange_AumentoGeneraArrival(t *testing.T) {
	uc, partRepo, txRepo := newFixture()
	p := seedPart(t, partRepo, companyID, 10)

	out, err := uc.ApplyStockChange(context.Background(), ledger.StockChangeInput{
		CompanyID:   companyID,
		UserID:      userID,
		PartID:      p.ID,
		NewQuantity: 15,
		Description: "compra a proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, out.Quantity)

	require.Len(t, txRepo.entries, 1)
	tx := txRepo.entries[0]
	assert.Equal(t, entity.TransactionArrival, tx.Type)
	assert.Equal(t, 5, tx.Quantity, "el asiento registra abs(delta), no la cantidad total")
	assert.Equal(t, "compra a proveedor", tx.Description)
	assert.Equal(t, userID, tx.CreatedBy)
}

// Bajar la cantidad genera un asiento expense por el delta.
func TestApplyStockChange_DisminucionGeneraExpense(t *testing.T) {
	uc, partRepo, txRepo := newFixture()
	p := seedPart(t, partRepo, companyID, 10)

	out, err := uc.ApplyStockChange(context.Background(), ledger.StockChangeInput{
		CompanyID:   companyID,
		UserID:      userID,
		PartID:      p.ID,
		NewQuantity: 3,
		Description: "ajuste por conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity)

	require.Len(t, txRepo.entries, 1)
	assert.Equal(t, entity.TransactionExpense, txRepo.entries[0].Type)
	assert.Equal(t, 7, txRepo.entries[0].Quantity)
}

// Fijar la misma cantidad no es un evento registrable: ErrConflict y cero asientos.
func TestApplyStockChange_SinCambioRechazado(t *testing.T) {
	uc, partRepo, txRepo := newFixture()
	p := seedPart(t, partRepo, companyID, 10)

	_, err := uc.ApplyStockChange(context.Background(), ledger.StockChangeInput{
		CompanyID:   companyID,
		UserID:      userID,
		PartID:      p.ID,
		NewQuantity: 10,
		Description: "sin cambio",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, txRepo.entries)

	stored, _ := partRepo.GetByID(p.ID)
	assert.Equal(t, 10, stored.Quantity, "la cantidad no debe haber cambiado")
}

func TestApplyStockChange_CantidadNegativaRechazada(t *testing.T) {
	uc, partRepo, _ := newFixture()
	p := seedPart(t, partRepo, companyID, 10)

	_, err := uc.ApplyStockChange(context.Background(), ledger.StockChangeInput{
		CompanyID:   companyID,
		UserID:      userID,
		PartID:      p.ID,
		NewQuantity: -1,
		Description: "imposible",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyStockChange_DescripcionRequerida(t *testing.T) {
	uc, partRepo, _ := newFixture()
	p := seedPart(t, partRepo, companyID, 10)

	_, err := uc.ApplyStockChange(context.Background(), ledger.StockChangeInput{
		CompanyID:   companyID,
		UserID:      userID,
		PartID:      p.ID,
		NewQuantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un repuesto de otra empresa se reporta como no encontrado, nunca como
// prohibido: no se filtra existencia entre tenants.
func TestApplyStockChange_OtroTenantEsNotFound(t *testing.T) {
	uc, partRepo, _ := newFixture()
	p := seedPart(t, partRepo, otherCompanyID, 10)

	_, err := uc.ApplyStockChange(context.Background(), ledger.StockChangeInput{
		CompanyID:   companyID,
		UserID:      userID,
		PartID:      p.ID,
		NewQuantity: 5,
		Description: "ajuste",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConsumePart / ReturnPart
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumePart_DescuentaYDejaExpense(t *testing.T) {
	uc, partRepo, txRepo := newFixture()
	p := seedPart(t, partRepo, companyID, 8)

	out, err := uc.ConsumePart(context.Background(), ledger.ConsumeInput{
		CompanyID: companyID,
		UserID:    userID,
		PartID:    p.ID,
		Quantity:  3,
		Reason:    "mantenimiento preventivo",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Quantity)
	require.Len(t, txRepo.entries, 1)
	assert.Equal(t, entity.TransactionExpense, txRepo.entries[0].Type)
	assert.Equal(t, 3, txRepo.entries[0].Quantity)
}

// Consumir más de lo disponible: error tipado con el detalle, sin mutación.
func TestConsumePart_StockInsuficiente(t *testing.T) {
	uc, partRepo, txRepo := newFixture()
	p := seedPart(t, partRepo, companyID, 2)

	_, err := uc.ConsumePart(context.Background(), ledger.ConsumeInput{
		CompanyID: companyID,
		UserID:    userID,
		PartID:    p.ID,
		Quantity:  5,
		Reason:    "consumo",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, 5, insErr.Requested)
	assert.Equal(t, 2, insErr.Available)

	stored, _ := partRepo.GetByID(p.ID)
	assert.Equal(t, 2, stored.Quantity)
	assert.Empty(t, txRepo.entries)
}

// Consumir exactamente el disponible deja el stock en cero (límite válido).
func TestConsumePart_ConsumoTotalValido(t *testing.T) {
	uc, partRepo, _ := newFixture()
	p := seedPart(t, partRepo, companyID, 4)

	out, err := uc.ConsumePart(context.Background(), ledger.ConsumeInput{
		CompanyID: companyID,
		UserID:    userID,
		PartID:    p.ID,
		Quantity:  4,
		Reason:    "consumo total",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Quantity)
}

// El stock nunca queda negativo bajo consumos concurrentes: con 5 unidades y
// 8 consumidores de 1, exactamente 5 ganan y 3 reciben stock insuficiente.
func TestConsumePart_ConcurrenciaNoDejaStockNegativo(t *testing.T) {
	uc, partRepo, txRepo := newFixture()
	p := seedPart(t, partRepo, companyID, 5)

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ConsumePart(context.Background(), ledger.ConsumeInput{
				CompanyID: companyID,
				UserID:    userID,
				PartID:    p.ID,
				Quantity:  1,
				Reason:    "consumo concurrente",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	okCount, rejected := 0, 0
	for err := range errs {
		if err == nil {
			okCount++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
		rejected++
	}
	assert.Equal(t, 5, okCount)
	assert.Equal(t, 3, rejected)

	stored, _ := partRepo.GetByID(p.ID)
	assert.Equal(t, 0, stored.Quantity, "el stock termina exactamente en cero")
	sum, _ := txRepo.SumSignedByPart(p.ID)
	assert.Equal(t, -5, sum, "un asiento expense por cada consumo que ganó")
}

func TestReturnPart_DevuelveYDejaArrival(t *testing.T) {
	uc, partRepo, txRepo := newFixture()
	p := seedPart(t, partRepo, companyID, 5)

	out, err := uc.ReturnPart(context.Background(), ledger.ConsumeInput{
		CompanyID: companyID,
		UserID:    userID,
		PartID:    p.ID,
		Quantity:  2,
		Reason:    "devolución",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Quantity)
	require.Len(t, txRepo.entries, 1)
	assert.Equal(t, entity.TransactionArrival, txRepo.entries[0].Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad de conservación: sum(asientos con signo) == cantidad actual
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_SumaConSignoCuadraConCantidad(t *testing.T) {
	uc, partRepo, txRepo := newFixture()
	p := seedPart(t, partRepo, companyID, 0)
	ctx := context.Background()

	// Secuencia arbitraria de cambios válidos.
	steps := []int{12, 7, 20, 20, 0, 3}
	for _, target := range steps {
		_, err := uc.ApplyStockChange(ctx, ledger.StockChangeInput{
			CompanyID:   companyID,
			UserID:      userID,
			PartID:      p.ID,
			NewQuantity: target,
			Description: gofakeit.Sentence(3),
		})
		if err != nil {
			// el paso 20 -> 20 es un no-cambio legítimo
			require.ErrorIs(t, err, domain.ErrConflict)
		}
	}

	stored, err := partRepo.GetByID(p.ID)
	require.NoError(t, err)
	sum, err := txRepo.SumSignedByPart(p.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Quantity, sum,
		"la suma con signo del ledger debe cuadrar con la cantidad vigente")
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterInitialStock
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterInitialStock_DejaAsientoArrival(t *testing.T) {
	txRepo := &fakeTransactionRepo{}
	p := &entity.Part{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      "filtro de aceite",
		Quantity:  6,
	}
	require.NoError(t, ledger.RegisterInitialStock(txRepo, p, userID))

	require.Len(t, txRepo.entries, 1)
	tx := txRepo.entries[0]
	assert.Equal(t, entity.TransactionArrival, tx.Type)
	assert.Equal(t, 6, tx.Quantity)
	assert.Equal(t, "stock inicial", tx.Description)
}

func TestRegisterInitialStock_CantidadCeroNoDejaAsiento(t *testing.T) {
	txRepo := &fakeTransactionRepo{}
	p := &entity.Part{ID: uuid.New().String(), CompanyID: companyID, Quantity: 0}
	require.NoError(t, ledger.RegisterInitialStock(txRepo, p, userID))
	assert.Empty(t, txRepo.entries)
}
