package report

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// LedgerExporter serializa el historial del ledger a un formato de auditoría
// (implementación XML en infrastructure/xmlexport).
type LedgerExporter interface {
	Export(company *entity.Company, transactions []*entity.Transaction) ([]byte, error)
}

// RepairPDFGenerator genera la orden de reparación imprimible
// (implementación Maroto en infrastructure/pdf).
type RepairPDFGenerator interface {
	Generate(company *entity.Company, r *entity.Repair, equipment *entity.Equipment) ([]byte, error)
}
