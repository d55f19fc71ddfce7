package dto

type CrearProveedorRequest struct {
	Nombre   string  `json:"nombre" validate:"required,min=2"`
	Contacto *string `json:"contacto"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type ActualizarProveedorRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=2"`
	Contacto *string `json:"contacto"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Activo   *bool   `json:"activo"`
}

type ProveedorResponse struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre"`
	Contacto *string `json:"contacto,omitempty"`
	Telefono *string `json:"telefono,omitempty"`
	Email    *string `json:"email,omitempty"`
	Activo   bool    `json:"activo"`
}
