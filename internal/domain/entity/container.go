package entity

import "time"

// Container representa una ubicación de almacenamiento (estante, caja, bodega).
// Al eliminarse, los repuestos que lo referencian quedan con ContainerID en NULL;
// nunca se eliminan en cascada.
type Container struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
