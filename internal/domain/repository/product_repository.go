package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// ListWithRelations devuelve los productos con los títulos de categoría y tipo
// resueltos por join, sin imágenes: las imágenes se traen aparte en lote con
// ImagesByProduct (un solo query para todos los productos, nada de N+1).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateImage(ctx context.Context, image *entity.ProductImage) error
	GetByIDWithRelations(ctx context.Context, id int64) (*entity.Product, error)
	ListWithRelations(ctx context.Context) ([]*entity.Product, error)
	ImagesByProduct(ctx context.Context, productIDs []int64) (map[int64][]entity.ProductImage, error)
}
