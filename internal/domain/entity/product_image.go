package entity

// ProductImage imagen asociada a un producto (cascade delete). El orden de
// inserción (ID ascendente) define cuál es la primera imagen.
type ProductImage struct {
	ID        int64
	ProductID int64
	Image     string // referencia en el media store
}
