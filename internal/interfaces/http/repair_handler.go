package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/repair"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/pkg/validator"
)

// RepairHandler maneja el ciclo de vida de reparaciones (protegido).
type RepairHandler struct {
	rc *repair.UseCase
}

// NewRepairHandler construye el handler.
func NewRepairHandler(rc *repair.UseCase) *RepairHandler {
	return &RepairHandler{rc: rc}
}

// Create godoc
// @Summary      Crear reparación (planned, o in_progress reclamando el equipo)
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRepairRequest  true  "Datos de la reparación"
// @Success      201   {object}  dto.RepairResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/repairs [post]
func (h *RepairHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := validator.ValidateStruct(in); len(fields) > 0 {
		return respondValidation(c, fields)
	}
	rep, err := h.rc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(repairToResponse(rep))
}

// GetByID godoc
// @Summary      Obtener reparación por ID (agregado completo)
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reparación"
// @Success      200  {object}  dto.RepairResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id} [get]
func (h *RepairHandler) GetByID(c *fiber.Ctx) error {
	rep, err := h.rc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repairToResponse(rep))
}

// List godoc
// @Summary      Listar reparaciones
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.RepairListResponse
// @Router       /api/repairs [get]
func (h *RepairHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	list, err := h.rc.List(GetCompanyID(c), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := lo.Map(list, func(r *entity.Repair, _ int) dto.RepairResponse {
		return repairToResponse(r)
	})
	return c.JSON(dto.RepairListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// Update godoc
// @Summary      Actualizar campos descriptivos de una reparación
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reparación"
// @Param        body  body  dto.UpdateRepairRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.RepairResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/repairs/{id} [put]
func (h *RepairHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := validator.ValidateStruct(in); len(fields) > 0 {
		return respondValidation(c, fields)
	}
	rep, err := h.rc.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repairToResponse(rep))
}

// Start godoc
// @Summary      Arrancar una reparación planificada (reclama el equipo)
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la reparación"
// @Success      200  {object}  dto.RepairResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/start [post]
func (h *RepairHandler) Start(c *fiber.Ctx) error {
	rep, err := h.rc.Start(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repairToResponse(rep))
}

// AttachPart godoc
// @Summary      Consumir un repuesto en la reparación (asiento expense)
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reparación"
// @Param        body  body  dto.AttachPartRequest  true  "Repuesto y cantidad"
// @Success      200   {object}  dto.RepairResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/parts [post]
func (h *RepairHandler) AttachPart(c *fiber.Ctx) error {
	var in dto.AttachPartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := validator.ValidateStruct(in); len(fields) > 0 {
		return respondValidation(c, fields)
	}
	rep, err := h.rc.AttachPart(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repairToResponse(rep))
}

// DetachPart godoc
// @Summary      Retirar una línea de repuesto (devuelve el stock vía arrival)
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la reparación"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.RepairResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/parts/{lineId} [delete]
func (h *RepairHandler) DetachPart(c *fiber.Ctx) error {
	rep, err := h.rc.DetachPart(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), c.Params("lineId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repairToResponse(rep))
}

// AttachStaff godoc
// @Summary      Asignar un empleado a la reparación
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reparación"
// @Param        body  body  dto.AttachStaffRequest  true  "Empleado y horas"
// @Success      200   {object}  dto.RepairResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/staff [post]
func (h *RepairHandler) AttachStaff(c *fiber.Ctx) error {
	var in dto.AttachStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := validator.ValidateStruct(in); len(fields) > 0 {
		return respondValidation(c, fields)
	}
	rep, err := h.rc.AttachStaff(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repairToResponse(rep))
}

// DetachStaff godoc
// @Summary      Retirar una línea de personal
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la reparación"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.RepairResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/staff/{lineId} [delete]
func (h *RepairHandler) DetachStaff(c *fiber.Ctx) error {
	rep, err := h.rc.DetachStaff(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("lineId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repairToResponse(rep))
}

// Complete godoc
// @Summary      Completar la reparación (cierra costos y libera el equipo)
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reparación"
// @Param        body  body  dto.CompleteRepairRequest  true  "Datos de cierre"
// @Success      200   {object}  dto.RepairResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/complete [post]
func (h *RepairHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rep, err := h.rc.Complete(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repairToResponse(rep))
}

// Cancel godoc
// @Summary      Cancelar la reparación (conserva líneas y consumos, libera el equipo)
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la reparación"
// @Success      200  {object}  dto.RepairResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/cancel [post]
func (h *RepairHandler) Cancel(c *fiber.Ctx) error {
	rep, err := h.rc.Cancel(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repairToResponse(rep))
}

// Delete godoc
// @Summary      Eliminar una reparación planificada
// @Tags         repairs
// @Security     Bearer
// @Param        id  path  string  true  "ID de la reparación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id} [delete]
func (h *RepairHandler) Delete(c *fiber.Ctx) error {
	if err := h.rc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func repairToResponse(r *entity.Repair) dto.RepairResponse {
	parts := lo.Map(r.Parts, func(l entity.RepairPart, _ int) dto.RepairPartLineResponse {
		return dto.RepairPartLineResponse{
			ID:        l.ID,
			PartID:    l.PartID,
			PartName:  l.PartName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		}
	})
	staff := lo.Map(r.Staff, func(l entity.RepairStaff, _ int) dto.RepairStaffLineResponse {
		return dto.RepairStaffLineResponse{
			ID:         l.ID,
			StaffID:    l.StaffID,
			StaffName:  l.StaffName,
			Hours:      l.Hours,
			HourlyRate: l.HourlyRate,
			LaborCost:  l.LaborCost,
		}
	})
	return dto.RepairResponse{
		ID:               r.ID,
		CompanyID:        r.CompanyID,
		EquipmentID:      r.EquipmentID,
		Description:      r.Description,
		Priority:         r.Priority,
		Status:           r.Status,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		PartsCost:        r.PartsCost,
		LaborCost:        r.LaborCost,
		TotalCost:        r.TotalCost,
		CompletionNotes:  r.CompletionNotes,
		FinalEngineHours: r.FinalEngineHours,
		FinalMileage:     r.FinalMileage,
		Parts:            parts,
		Staff:            staff,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
