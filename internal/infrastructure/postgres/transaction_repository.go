package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL.
// El ledger es append-only: solo INSERT y lecturas; no existe Update.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del ledger. Pasar pool o tx.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, company_id, type, part_id, part_name, quantity,
	description, equipment_id, repair_id, created_at, created_by`

// Create inserta un asiento. Nunca se actualiza después.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.CompanyID, tx.Type, tx.PartID, tx.PartName, tx.Quantity,
		tx.Description, tx.EquipmentID, tx.RepairID, tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByPart lista los asientos de un repuesto, opcionalmente acotados por fecha.
func (r *TransactionRepo) ListByPart(partID string, from, to *time.Time, limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE part_id = $1`
	args := []any{partID}
	query, args = appendDateRange(query, args, from, to)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)
	return r.scanMany(query, args...)
}

// ListByCompany lista los asientos de toda la empresa (auditoría, exportación).
func (r *TransactionRepo) ListByCompany(companyID string, from, to *time.Time, limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE company_id = $1`
	args := []any{companyID}
	query, args = appendDateRange(query, args, from, to)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)
	return r.scanMany(query, args...)
}

// ListByEquipment lista los asientos ligados a un equipo.
func (r *TransactionRepo) ListByEquipment(equipmentID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions WHERE equipment_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, equipmentID, limit, offset)
}

// SumSignedByPart devuelve sum(arrival) - sum(expense) del repuesto.
func (r *TransactionRepo) SumSignedByPart(partID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'expense' THEN -quantity ELSE quantity END), 0)
		FROM transactions WHERE part_id = $1`
	var sum int
	if err := r.q.QueryRow(context.Background(), query, partID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	return sum, nil
}

// DeleteByPart limpia los asientos de un repuesto eliminado.
func (r *TransactionRepo) DeleteByPart(partID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE part_id = $1`, partID)
	if err != nil {
		return fmt.Errorf("delete transactions by part: %w", err)
	}
	return nil
}

func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	return query, args
}

func (r *TransactionRepo) scanMany(query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID, &t.CompanyID, &t.Type, &t.PartID, &t.PartName, &t.Quantity,
			&t.Description, &t.EquipmentID, &t.RepairID, &t.CreatedAt, &t.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
