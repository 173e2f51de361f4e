package entity

import "time"

// Tipos de asiento del ledger de inventario.
const (
	TransactionArrival = "arrival" // entrada de stock
	TransactionExpense = "expense" // salida de stock
)

// Transaction es un asiento inmutable del ledger: se crea una vez y nunca se
// actualiza ni se elimina por regla de negocio. La suma con signo de los
// asientos de un repuesto (arrival=+, expense=-) debe cuadrar con su Quantity
// actual en todo momento; esa es la propiedad de auditabilidad del sistema.
type Transaction struct {
	ID          string
	CompanyID   string
	Type        string // arrival | expense
	PartID      string
	PartName    string // snapshot del nombre al momento del asiento
	Quantity    int    // siempre positivo; el signo lo da Type
	Description string
	EquipmentID *string // nil si no está ligado a un equipo
	RepairID    *string // nil si no está ligado a una reparación
	CreatedAt   time.Time
	CreatedBy   string // UserID
}

// SignedQuantity devuelve la cantidad con signo según el tipo.
func (t *Transaction) SignedQuantity() int {
	if t.Type == TransactionExpense {
		return -t.Quantity
	}
	return t.Quantity
}
