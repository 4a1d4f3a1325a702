package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx; la creación corre dentro de TxRunner).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto y asigna el ID generado. El precio viaja como
// texto (así lo define el modelo de datos).
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (uuid, title, description, category_id, type_id, price, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		product.UUID, product.Title, product.Description, product.CategoryID,
		product.TypeID, product.Price, product.IsActive, product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// CreateImage persiste una imagen asociada a un producto. El ID serial
// creciente preserva el orden de inserción (define first_image).
func (r *ProductRepo) CreateImage(ctx context.Context, image *entity.ProductImage) error {
	query := `
		INSERT INTO product_images (product_id, image)
		VALUES ($1, $2)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, image.ProductID, image.Image).Scan(&image.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

// GetByIDWithRelations obtiene un producto con títulos de categoría y tipo
// resueltos y sus imágenes en orden de inserción. Devuelve nil si no existe.
func (r *ProductRepo) GetByIDWithRelations(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT p.id, p.uuid, p.title, p.description, p.category_id, p.type_id,
		       p.price, p.is_active, p.created_at, c.title, t.title
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN types t ON t.id = p.type_id
		WHERE p.id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UUID, &p.Title, &p.Description, &p.CategoryID, &p.TypeID,
		&p.Price, &p.IsActive, &p.CreatedAt, &p.CategoryTitle, &p.TypeTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	imagesByProduct, err := r.ImagesByProduct(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.Images = imagesByProduct[p.ID]
	return &p, nil
}

// ListWithRelations devuelve todos los productos con títulos de categoría y
// tipo resueltos por join, ordenados por ID. Las imágenes se traen aparte con
// ImagesByProduct (prefetch en lote).
func (r *ProductRepo) ListWithRelations(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.uuid, p.title, p.description, p.category_id, p.type_id,
		       p.price, p.is_active, p.created_at, c.title, t.title
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN types t ON t.id = p.type_id
		ORDER BY p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.UUID, &p.Title, &p.Description, &p.CategoryID, &p.TypeID,
			&p.Price, &p.IsActive, &p.CreatedAt, &p.CategoryTitle, &p.TypeTitle,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ImagesByProduct trae las imágenes de todos los productos indicados en una
// sola consulta, agrupadas por producto y en orden de inserción (ID).
func (r *ProductRepo) ImagesByProduct(ctx context.Context, productIDs []int64) (map[int64][]entity.ProductImage, error) {
	result := make(map[int64][]entity.ProductImage, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT id, product_id, image
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Image); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		result[img.ProductID] = append(result[img.ProductID], img)
	}
	return result, rows.Err()
}
