package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto en bodega.
// Quantity nunca se asigna directamente: solo muta a través del ledger
// (ver application/ledger), que deja el asiento correspondiente en transactions.
type Part struct {
	ID             string
	CompanyID      string
	Name           string
	Article        string // código de artículo, único por empresa cuando no es vacío
	Barcode        string
	Type           string
	Quantity       int // siempre >= 0
	Price          *decimal.Decimal
	ContainerID    *string // nil = sin ubicación asignada
	Supplier       string
	Brand          string
	WeightKg       *decimal.Decimal
	WarrantyMonths *int
	PhotoURLs      []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UnitPrice devuelve el precio unitario o cero si no está definido.
func (p *Part) UnitPrice() decimal.Decimal {
	if p.Price == nil {
		return decimal.Zero
	}
	return *p.Price
}
