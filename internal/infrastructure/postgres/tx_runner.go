package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Taller-api/internal/application/ledger"
	apprepair "github.com/jhoicas/Taller-api/internal/application/repair"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and repair.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ apprepair.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del ledger atados a la
// tx y hace Commit o Rollback. Cantidad y asiento comprometen juntos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	txRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPartRepository(tx), NewTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRepair inicia una transacción con los repos del agregado de reparación
// (para transiciones del ciclo de vida que tocan stock, equipo y líneas).
func (r *TxRunner) RunRepair(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	txRepo repository.TransactionRepository,
	equipmentRepo repository.EquipmentRepository,
	repairRepo repository.RepairRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewPartRepository(tx),
		NewTransactionRepository(tx),
		NewEquipmentRepository(tx),
		NewRepairRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
