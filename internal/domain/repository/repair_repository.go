package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// RepairRepository define el puerto de persistencia para el agregado Repair
// y sus líneas. GetByID y GetForUpdate devuelven el agregado completo
// (cabecera + líneas de repuestos y de personal).
type RepairRepository interface {
	Create(r *entity.Repair) error
	GetByID(id string) (*entity.Repair, error)
	GetForUpdate(id string) (*entity.Repair, error)
	Update(r *entity.Repair) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Repair, error)
	// HasActiveByEquipment indica si el equipo tiene alguna reparación in_progress.
	HasActiveByEquipment(equipmentID string) (bool, error)
	Delete(id string) error

	AddPartLine(line *entity.RepairPart) error
	RemovePartLine(lineID string) error
	GetPartLine(lineID string) (*entity.RepairPart, error)

	AddStaffLine(line *entity.RepairStaff) error
	RemoveStaffLine(lineID string) error
	GetStaffLine(lineID string) (*entity.RepairStaff, error)
	GetStaffLineByStaff(repairID, staffID string) (*entity.RepairStaff, error)
	DeleteLinesByRepair(repairID string) error

	// HasOpenLinesByPart indica si alguna reparación no terminal tiene una
	// línea del repuesto (bloquea el borrado del repuesto).
	HasOpenLinesByPart(partID string) (bool, error)
	// DeleteLinesByPart elimina las líneas del repuesto en reparaciones
	// terminales (limpieza al borrar el repuesto; los costos ya están
	// cerrados en la cabecera).
	DeleteLinesByPart(partID string) error
}
