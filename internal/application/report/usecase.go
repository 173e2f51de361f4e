package report

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// UseCase genera informes de solo lectura sobre inventario, reparaciones y
// ledger. Nunca muta estado: lee los agregados persistidos y deriva.
type UseCase struct {
	reportRepo      repository.ReportRepository
	transactionRepo repository.TransactionRepository
	repairRepo      repository.RepairRepository
	equipmentRepo   repository.EquipmentRepository
	partRepo        repository.PartRepository
	companyRepo     repository.CompanyRepository
	ledgerExporter  LedgerExporter
	pdfGenerator    RepairPDFGenerator
}

// NewUseCase construye el caso de uso de informes.
func NewUseCase(
	reportRepo repository.ReportRepository,
	transactionRepo repository.TransactionRepository,
	repairRepo repository.RepairRepository,
	equipmentRepo repository.EquipmentRepository,
	partRepo repository.PartRepository,
	companyRepo repository.CompanyRepository,
	ledgerExporter LedgerExporter,
	pdfGenerator RepairPDFGenerator,
) *UseCase {
	return &UseCase{
		reportRepo:      reportRepo,
		transactionRepo: transactionRepo,
		repairRepo:      repairRepo,
		equipmentRepo:   equipmentRepo,
		partRepo:        partRepo,
		companyRepo:     companyRepo,
		ledgerExporter:  ledgerExporter,
		pdfGenerator:    pdfGenerator,
	}
}

// Inventory arma el snapshot de inventario valorizado de la empresa.
func (uc *UseCase) Inventory(companyID string) (*dto.InventoryReportResponse, error) {
	rows, err := uc.reportRepo.InventorySnapshot(companyID)
	if err != nil {
		return nil, err
	}
	totalUnits := 0
	totalValue := decimal.Zero
	for _, r := range rows {
		totalUnits += r.Quantity
		totalValue = totalValue.Add(r.StockValue)
	}
	return &dto.InventoryReportResponse{
		GeneratedAt: time.Now(),
		Rows: lo.Map(rows, func(r repository.InventoryRow, _ int) dto.InventoryReportRow {
			return dto.InventoryReportRow{
				PartID:        r.PartID,
				Name:          r.Name,
				Article:       r.Article,
				ContainerName: r.ContainerName,
				Quantity:      r.Quantity,
				UnitPrice:     r.UnitPrice,
				StockValue:    r.StockValue,
			}
		}),
		TotalParts: len(rows),
		TotalUnits: totalUnits,
		TotalValue: totalValue,
	}, nil
}

// Repairs arma el informe de costos de reparaciones completadas en un rango.
func (uc *UseCase) Repairs(companyID string, from, to *time.Time) (*dto.RepairReportResponse, error) {
	rows, err := uc.reportRepo.CompletedRepairs(companyID, from, to)
	if err != nil {
		return nil, err
	}
	totalParts := decimal.Zero
	totalLabor := decimal.Zero
	total := decimal.Zero
	for _, r := range rows {
		totalParts = totalParts.Add(r.PartsCost)
		totalLabor = totalLabor.Add(r.LaborCost)
		total = total.Add(r.TotalCost)
	}
	return &dto.RepairReportResponse{
		GeneratedAt: time.Now(),
		From:        from,
		To:          to,
		Rows: lo.Map(rows, func(r repository.RepairCostRow, _ int) dto.RepairReportRow {
			return dto.RepairReportRow{
				RepairID:      r.RepairID,
				EquipmentName: r.EquipmentName,
				Description:   r.Description,
				Priority:      r.Priority,
				StartDate:     r.StartDate,
				EndDate:       r.EndDate,
				PartsCost:     r.PartsCost,
				LaborCost:     r.LaborCost,
				TotalCost:     r.TotalCost,
			}
		}),
		TotalRepairs:   len(rows),
		TotalPartsCost: totalParts,
		TotalLaborCost: totalLabor,
		TotalCost:      total,
	}, nil
}

// LedgerXML exporta el historial del ledger como XML de auditoría: toda la
// empresa o, si partID no es vacío, solo los asientos de ese repuesto.
func (uc *UseCase) LedgerXML(companyID, partID string, from, to *time.Time) ([]byte, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	// Sin límite razonable: el export de auditoría es completo por definición.
	var list []*entity.Transaction
	if partID != "" {
		part, err := uc.partRepo.GetByID(partID)
		if err != nil {
			return nil, err
		}
		if part == nil || part.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		list, err = uc.transactionRepo.ListByPart(partID, from, to, 100000, 0)
		if err != nil {
			return nil, err
		}
	} else {
		list, err = uc.transactionRepo.ListByCompany(companyID, from, to, 100000, 0)
		if err != nil {
			return nil, err
		}
	}
	return uc.ledgerExporter.Export(company, list)
}

// RepairPDF genera la orden imprimible de una reparación completada.
func (uc *UseCase) RepairPDF(companyID, repairID string) ([]byte, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	r, err := uc.repairRepo.GetByID(repairID)
	if err != nil {
		return nil, err
	}
	if r == nil || r.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !r.Terminal() {
		return nil, &domain.StateError{RepairID: r.ID, Status: r.Status, Op: "print"}
	}
	eq, err := uc.equipmentRepo.GetByID(r.EquipmentID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.Generate(company, r, eq)
}
