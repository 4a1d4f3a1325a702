package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateTypeRequest alta administrativa de un tipo (cmd/seed). La existencia
// de la categoría la verifica el caso de uso contra el repositorio.
type CreateTypeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    int64  `json:"category"`
}

// Validate aplica las reglas de campo: título mínimo 2, descripción mínimo 10.
func (r CreateTypeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.By(minTrimmed(2, "el título del tipo debe tener al menos 2 caracteres"))),
		validation.Field(&r.Description, validation.By(minTrimmed(10, "la descripción debe tener al menos 10 caracteres"))),
	)
}

// TypeResponse salida de un tipo con el título de su categoría resuelto.
type TypeResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      int64     `json:"category"`
	CategoryTitle string    `json:"category_title"`
	CratedAt      time.Time `json:"crated_at"`
}
