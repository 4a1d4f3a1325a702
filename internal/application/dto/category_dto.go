package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCategoryRequest alta administrativa de una categoría (cmd/seed).
type CreateCategoryRequest struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

// Validate aplica las reglas de campo. El título requiere mínimo 2 caracteres
// tras recortar espacios.
func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.By(minTrimmed(2, "el título de la categoría debe tener al menos 2 caracteres"))),
	)
}

// CategoryResponse salida de una categoría.
// El nombre crated_at (sic) es el del contrato histórico y se conserva.
type CategoryResponse struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Image    string    `json:"image"`
	CratedAt time.Time `json:"crated_at"`
}
