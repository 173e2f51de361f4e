package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/report"
)

// ReportHandler expone los informes (solo lectura, protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Informe de inventario valorizado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.Inventory(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Repairs godoc
// @Summary      Informe de costos de reparaciones completadas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339)"
// @Success      200   {object}  dto.RepairReportResponse
// @Router       /api/reports/repairs [get]
func (h *ReportHandler) Repairs(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	out, err := h.uc.Repairs(GetCompanyID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LedgerXML godoc
// @Summary      Exportar el ledger de inventario como XML de auditoría
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Param        part_id  query  string  false  "Limitar al historial de un repuesto"
// @Param        from     query  string  false  "Desde (RFC3339)"
// @Param        to       query  string  false  "Hasta (RFC3339)"
// @Success      200   {string}  string  "Documento XML"
// @Router       /api/reports/ledger.xml [get]
func (h *ReportHandler) LedgerXML(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	out, err := h.uc.LedgerXML(GetCompanyID(c), c.Query("part_id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ledger.xml"`)
	return c.Send(out)
}

// RepairPDF godoc
// @Summary      Orden de reparación en PDF (solo completadas o canceladas)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la reparación"
// @Success      200  {string}  string  "Documento PDF"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/pdf [get]
func (h *ReportHandler) RepairPDF(c *fiber.Ctx) error {
	out, err := h.uc.RepairPDF(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="repair-order.pdf"`)
	return c.Send(out)
}
