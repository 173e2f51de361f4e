// Package pdf implementa la generación de la orden de reparación imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  N° Orden + Fechas           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EQUIPO: Nombre / Modelo / Serie / Lecturas                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Repuestos consumidos (Cant | Repuesto | P.Unit | Tot)│
//	│  TABLA: Personal (Empleado | Horas | Tarifa | Costo)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Repuestos / Mano de obra / TOTAL                  │
//	│  NOTAS DE CIERRE                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Taller-api/internal/application/report"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoRepairGenerator implementa report.RepairPDFGenerator usando Maroto v2.
type MarotoRepairGenerator struct{}

// NewMarotoRepairGenerator construye el generador.
func NewMarotoRepairGenerator() *MarotoRepairGenerator { return &MarotoRepairGenerator{} }

var _ report.RepairPDFGenerator = (*MarotoRepairGenerator)(nil)

// Generate genera el PDF de la orden de reparación y devuelve sus bytes.
func (g *MarotoRepairGenerator) Generate(
	company *entity.Company,
	rep *entity.Repair,
	equipment *entity.Equipment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Reparación", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(equipmentRow(equipment, rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Repuestos consumidos
	m.AddRows(sectionTitleRow("REPUESTOS CONSUMIDOS"))
	m.AddRows(partsHeaderRow())
	for _, r := range partsDetailRows(rep.Parts) {
		m.AddRows(r)
	}

	// Personal asignado
	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("PERSONAL ASIGNADO"))
	m.AddRows(staffHeaderRow())
	for _, r := range staffDetailRows(rep.Staff) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rep))

	// Notas de cierre
	if rep.CompletionNotes != "" {
		m.AddRows(line.NewRow(2))
		m.AddRows(notesRows(rep.CompletionNotes)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT (izq) y N° orden + fechas (der).
func headerRow(company *entity.Company, rep *entity.Repair) core.Row {
	fechas := "—"
	if rep.StartDate != nil {
		fechas = rep.StartDate.Format("02/01/2006")
		if rep.EndDate != nil {
			fechas += " → " + rep.EndDate.Format("02/01/2006")
		}
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE REPARACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+rep.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New(fechas, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// equipmentRow: datos del equipo intervenido y su estado al cierre.
func equipmentRow(eq *entity.Equipment, rep *entity.Repair) core.Row {
	lecturas := fmt.Sprintf("Horómetro: %s h   |   Km: %s",
		eq.EngineHours.StringFixed(1), eq.Mileage.StringFixed(1))
	if rep.FinalEngineHours != nil {
		lecturas = fmt.Sprintf("Horómetro al cierre: %s h", rep.FinalEngineHours.StringFixed(1))
		if rep.FinalMileage != nil {
			lecturas += fmt.Sprintf("   |   Km al cierre: %s", rep.FinalMileage.StringFixed(1))
		}
	}

	return row.New(18).Add(
		col.New(12).Add(
			text.New("EQUIPO INTERVENIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(eq.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Modelo: %s   |   Serie: %s", nonEmpty(eq.Model, "—"), nonEmpty(eq.Serial, "—")),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(lecturas, props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

// partsHeaderRow: cabecera de la tabla de repuestos.
func partsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Repuesto", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// partsDetailRows: una fila por línea de consumo.
func partsDetailRows(lines []entity.RepairPart) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.PartName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.UnitPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(l.LineTotal.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// staffHeaderRow: cabecera de la tabla de personal.
func staffHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Empleado", 6, align.Left),
		h("Horas", 1, align.Center),
		h("Tarifa", 2, align.Right),
		h("Costo", 3, align.Right),
	)
}

// staffDetailRows: una fila por línea de personal.
func staffDetailRows(lines []entity.RepairStaff) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				l.StaffName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.Hours.StringFixed(1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.HourlyRate.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(l.LaborCost.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(rep *entity.Repair) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Repuestos:"),
			label("Mano de obra:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(rep.PartsCost.StringFixed(0))),
			value("$"+formatMoney(rep.LaborCost.StringFixed(0))),
			grandValue("$"+formatMoney(rep.TotalCost.StringFixed(0))),
		),
		col.New(2),
	)
}

// notesRows: notas de cierre del mecánico.
func notesRows(notes string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("NOTAS DE CIERRE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(12).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
