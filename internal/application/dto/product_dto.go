package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateProductRequest entrada del POST /product-create (multipart). Las
// imágenes llegan como archivos (form files "images") y no pasan por aquí.
type CreateProductRequest struct {
	Title        string `json:"title" form:"title"`
	Description  string `json:"description" form:"description"`
	Category     int64  `json:"category" form:"category"`
	TypesProduct int64  `json:"types_product" form:"types_product"`
	Price        string `json:"price" form:"price"`
	IsActive     bool   `json:"is_active" form:"is_active"`
}

// Validate aplica todas las reglas de campo y las agrega por campo:
// título ≥ 3 recortado, descripción ≥ 10 recortada, precio numérico positivo.
// Las referencias (category, types_product) se verifican en el caso de uso.
func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.By(minTrimmed(3, "el título del producto debe tener al menos 3 caracteres"))),
		validation.Field(&r.Description, validation.By(minTrimmed(10, "la descripción debe tener al menos 10 caracteres"))),
		validation.Field(&r.Price, validation.By(validPrice)),
	)
}

// ProductImageResponse imagen de un producto dentro de la respuesta.
type ProductImageResponse struct {
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	ImageURL string `json:"image_url"`
	Product  int64  `json:"product"`
}

// ProductResponse representación completa de lectura de un producto.
// first_image es la URL de la imagen insertada primero, o null si no hay.
type ProductResponse struct {
	ID            int64                  `json:"id"`
	UUID          string                 `json:"uuid"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Category      int64                  `json:"category"`
	CategoryTitle string                 `json:"category_title"`
	TypesProduct  int64                  `json:"types_product"`
	TypesTitle    string                 `json:"types_title"`
	CreatedAt     time.Time              `json:"created_at"`
	Price         string                 `json:"price"`
	FirstImage    *string                `json:"first_image"`
	Images        []ProductImageResponse `json:"images"`
	IsActive      bool                   `json:"is_active"`
}
