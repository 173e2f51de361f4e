package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/ledger"
	"github.com/jhoicas/Taller-api/internal/application/repair"
	"github.com/jhoicas/Taller-api/internal/application/report"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	PartUC        *usecase.PartUseCase
	ContainerUC   *usecase.ContainerUseCase
	EquipmentUC   *usecase.EquipmentUseCase
	StaffUC       *usecase.StaffUseCase
	TransactionUC *usecase.TransactionUseCase
	LedgerUC      *ledger.UseCase
	RepairUC      *repair.UseCase
	ReportUC      *report.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (alta pública; lectura protegida en el resto de rutas)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Parts (protegido). La cantidad muta solo por PATCH /quantity.
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC, deps.LedgerUC)
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/barcode/:code", partHandler.GetByBarcode)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)
	parts.Patch("/:id/quantity", partHandler.ChangeQuantity)
	parts.Get("/:id/transactions", transactionHandler.ListByPart)
	parts.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleAlmacenista), partHandler.Delete)

	// Containers (protegido)
	containers := protected.Group("/containers")
	containerHandler := NewContainerHandler(deps.ContainerUC)
	containers.Post("/", containerHandler.Create)
	containers.Get("/", containerHandler.List)
	containers.Get("/:id", containerHandler.GetByID)
	containers.Put("/:id", containerHandler.Update)
	containers.Delete("/:id", containerHandler.Delete)

	// Equipment (protegido)
	equipment := protected.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	equipment.Post("/", equipmentHandler.Create)
	equipment.Get("/", equipmentHandler.List)
	equipment.Get("/:id", equipmentHandler.GetByID)
	equipment.Put("/:id", equipmentHandler.Update)
	equipment.Get("/:id/transactions", transactionHandler.ListByEquipment)
	equipment.Delete("/:id", RequireRole(entity.RoleAdmin), equipmentHandler.Delete)

	// Staff (protegido; baja lógica, nunca DELETE)
	staff := protected.Group("/staff")
	staffHandler := NewStaffHandler(deps.StaffUC)
	staff.Post("/", staffHandler.Create)
	staff.Get("/", staffHandler.List)
	staff.Get("/:id", staffHandler.GetByID)
	staff.Put("/:id", staffHandler.Update)
	staff.Post("/:id/deactivate", RequireRole(entity.RoleAdmin), staffHandler.Deactivate)

	// Ledger (protegido, solo lectura)
	transactions := protected.Group("/transactions")
	transactions.Get("/", transactionHandler.List)

	// Repairs (protegido): ciclo de vida completo
	repairs := protected.Group("/repairs")
	repairHandler := NewRepairHandler(deps.RepairUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	repairs.Post("/", repairHandler.Create)
	repairs.Get("/", repairHandler.List)
	repairs.Get("/:id", repairHandler.GetByID)
	repairs.Put("/:id", repairHandler.Update)
	repairs.Post("/:id/start", repairHandler.Start)
	repairs.Post("/:id/parts", repairHandler.AttachPart)
	repairs.Delete("/:id/parts/:lineId", repairHandler.DetachPart)
	repairs.Post("/:id/staff", repairHandler.AttachStaff)
	repairs.Delete("/:id/staff/:lineId", repairHandler.DetachStaff)
	repairs.Post("/:id/complete", repairHandler.Complete)
	repairs.Post("/:id/cancel", repairHandler.Cancel)
	repairs.Get("/:id/pdf", reportHandler.RepairPDF)
	repairs.Delete("/:id", repairHandler.Delete)

	// Reports (protegido, solo lectura)
	reports := protected.Group("/reports")
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/repairs", reportHandler.Repairs)
	reports.Get("/ledger.xml", reportHandler.LedgerXML)
}
