package entity

import "time"

// Product producto del catálogo. UUID es un identificador opaco global, único
// e inmutable, independiente del ID: se genera al crear y nunca cambia.
// Price se almacena como texto y se valida como número estrictamente positivo.
type Product struct {
	ID          int64
	UUID        string
	Title       string
	Description string
	CategoryID  int64
	TypeID      int64
	Price       string
	IsActive    bool // por defecto inactivo
	CreatedAt   time.Time

	CategoryTitle string         // join con categories
	TypeTitle     string         // join con types
	Images        []ProductImage // orden de inserción; la primera define first_image
}

// FirstImage devuelve la referencia de la imagen insertada primero, o "" si
// el producto no tiene imágenes.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Image
}
