package entity

import "time"

// Type tipo de producto. Pertenece a exactamente una categoría (cascade delete).
type Type struct {
	ID          int64
	Title       string
	Description string
	CategoryID  int64
	CreatedAt   time.Time

	CategoryTitle string // se llena en listados (join con categories)
}
