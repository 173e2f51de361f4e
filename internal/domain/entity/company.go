package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant).
// Todo recurso (repuestos, equipos, reparaciones, personal) pertenece a una
// empresa y las consultas siempre se resuelven dentro de ese ámbito.
type Company struct {
	ID        string
	Name      string
	NIT       string // NIT colombiano (con o sin dígito de verificación)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
