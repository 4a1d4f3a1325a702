package usecase

import (
	"context"
	"mime/multipart"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un ProductRepository atado a una transacción:
// producto e imágenes se confirman como unidad o se revierten completos.
type TxRunner interface {
	RunProduct(ctx context.Context, fn func(repo repository.ProductRepository) error) error
}

// MediaStore puerto hacia el blob store de imágenes: acepta un archivo subido,
// devuelve una referencia recuperable y resuelve su URL pública (absoluta si
// hay base URL de la petición, relativa al store si no).
type MediaStore interface {
	Save(dir string, file *multipart.FileHeader) (ref string, err error)
	URL(ref, baseURL string) string
	Remove(ref string) error
}
