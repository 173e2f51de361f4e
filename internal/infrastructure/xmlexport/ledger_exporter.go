// Package xmlexport serializa el historial del ledger de inventario a un
// documento XML de auditoría, pensado para archivarse o entregarse a un
// revisor externo junto con el snapshot de inventario.
package xmlexport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Taller-api/internal/application/report"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// LedgerExporter implementa report.LedgerExporter con etree.
type LedgerExporter struct{}

// NewLedgerExporter construye el exportador.
func NewLedgerExporter() *LedgerExporter { return &LedgerExporter{} }

var _ report.LedgerExporter = (*LedgerExporter)(nil)

// Export serializa los asientos al documento de auditoría. Los asientos se
// emiten en el orden recibido; el saldo con signo acumulado de cada exportación
// completa debe cuadrar con las cantidades vigentes del inventario.
func (e *LedgerExporter) Export(company *entity.Company, transactions []*entity.Transaction) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("InventoryLedger")
	root.CreateAttr("generatedAt", time.Now().UTC().Format(time.RFC3339))

	comp := root.CreateElement("Company")
	comp.CreateElement("ID").SetText(company.ID)
	comp.CreateElement("Name").SetText(company.Name)
	comp.CreateElement("NIT").SetText(company.NIT)

	entries := root.CreateElement("Entries")
	entries.CreateAttr("count", strconv.Itoa(len(transactions)))

	var signedTotal int
	for _, t := range transactions {
		entry := entries.CreateElement("Entry")
		entry.CreateAttr("id", t.ID)
		entry.CreateAttr("type", t.Type)
		entry.CreateElement("PartID").SetText(t.PartID)
		entry.CreateElement("PartName").SetText(t.PartName)
		entry.CreateElement("Quantity").SetText(strconv.Itoa(t.Quantity))
		entry.CreateElement("SignedQuantity").SetText(strconv.Itoa(t.SignedQuantity()))
		entry.CreateElement("Description").SetText(t.Description)
		if t.EquipmentID != nil {
			entry.CreateElement("EquipmentID").SetText(*t.EquipmentID)
		}
		if t.RepairID != nil {
			entry.CreateElement("RepairID").SetText(*t.RepairID)
		}
		entry.CreateElement("CreatedAt").SetText(t.CreatedAt.UTC().Format(time.RFC3339))
		entry.CreateElement("CreatedBy").SetText(t.CreatedBy)
		signedTotal += t.SignedQuantity()
	}

	root.CreateElement("SignedTotal").SetText(strconv.Itoa(signedTotal))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar ledger: %w", err)
	}
	return out, nil
}
