package entity

import "time"

// Category categoría del catálogo. Agrupa tipos y productos; borrarla elimina
// en cascada sus tipos y productos (a nivel de esquema).
type Category struct {
	ID        int64
	Title     string
	Image     string // referencia en el media store (ej. "category/<uuid>.jpg")
	CreatedAt time.Time
}
