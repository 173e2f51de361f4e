package repair

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del agregado de reparación atados a esa tx. Toda transición del
// ciclo de vida (consumo de stock, línea, costos, estado del equipo) comete
// junta o se revierte junta.
type TxRunner interface {
	RunRepair(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		txRepo repository.TransactionRepository,
		equipmentRepo repository.EquipmentRepository,
		repairRepo repository.RepairRepository,
	) error) error
}
