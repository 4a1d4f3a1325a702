package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// CategoryUseCase listado de categorías y alta administrativa (cmd/seed).
// El listado no cachea aquí: lo cubre el caché de respuesta HTTP (15 min).
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	media MediaStore
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, media MediaStore) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, media: media}
}

// List devuelve todas las categorías con la URL de su imagen resuelta.
func (uc *CategoryUseCase) List(ctx context.Context, baseURL string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoryResponse{
			ID:       c.ID,
			Title:    c.Title,
			Image:    uc.media.URL(c.Image, baseURL),
			CratedAt: c.CreatedAt,
		})
	}
	return items, nil
}

// Create crea una categoría (solo vía administrativa; no hay endpoint HTTP).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if fields := dto.FieldErrors(in.Validate()); len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	category := &entity.Category{
		Title:     strings.TrimSpace(in.Title),
		Image:     in.Image,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{
		ID:       category.ID,
		Title:    category.Title,
		Image:    uc.media.URL(category.Image, ""),
		CratedAt: category.CreatedAt,
	}, nil
}
