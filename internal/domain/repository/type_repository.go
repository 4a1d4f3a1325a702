package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// TypeRepository define el puerto de persistencia para Type (DIP).
// List trae el título de la categoría en la misma consulta (join) para evitar
// lecturas por fila al serializar.
type TypeRepository interface {
	Create(ctx context.Context, t *entity.Type) error
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*entity.Type, error)
}
