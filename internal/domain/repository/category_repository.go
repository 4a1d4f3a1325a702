package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
