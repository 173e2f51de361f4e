package dto

import "time"

// CreateContainerRequest body para POST /api/containers.
type CreateContainerRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// UpdateContainerRequest body para PUT /api/containers/:id.
type UpdateContainerRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// ContainerResponse representación de una ubicación en respuestas.
type ContainerResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContainerListResponse listado paginado de ubicaciones.
type ContainerListResponse struct {
	Items []ContainerResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
