package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.TypeRepository = (*TypeRepo)(nil)

// TypeRepo implementación del puerto TypeRepository sobre PostgreSQL
// (usable con pool o tx).
type TypeRepo struct {
	q Querier
}

// NewTypeRepository construye el adaptador de persistencia para tipos.
func NewTypeRepository(q Querier) *TypeRepo {
	return &TypeRepo{q: q}
}

// Create persiste un tipo y asigna el ID generado.
func (r *TypeRepo) Create(ctx context.Context, t *entity.Type) error {
	query := `
		INSERT INTO types (title, description, category_id, crated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, t.Title, t.Description, t.CategoryID, t.CreatedAt).
		Scan(&t.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert type: %w", err)
	}
	return nil
}

// Exists indica si el tipo con ese ID existe.
func (r *TypeRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM types WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists type: %w", err)
	}
	return exists, nil
}

// List devuelve todos los tipos con el título de su categoría resuelto en la
// misma consulta (join), ordenados por ID.
func (r *TypeRepo) List(ctx context.Context) ([]*entity.Type, error) {
	query := `
		SELECT t.id, t.title, t.description, t.category_id, t.crated_at, c.title
		FROM types t
		JOIN categories c ON c.id = t.category_id
		ORDER BY t.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	defer rows.Close()
	var list []*entity.Type
	for rows.Next() {
		var t entity.Type
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.CategoryID, &t.CreatedAt, &t.CategoryTitle); err != nil {
			return nil, fmt.Errorf("scan type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
