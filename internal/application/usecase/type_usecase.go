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

// TypeUseCase listado de tipos y alta administrativa (cmd/seed).
// El listado no cachea aquí: lo cubre el caché de respuesta HTTP (10 min).
type TypeUseCase struct {
	repo    repository.TypeRepository
	catRepo repository.CategoryRepository
}

// NewTypeUseCase construye el caso de uso.
func NewTypeUseCase(repo repository.TypeRepository, catRepo repository.CategoryRepository) *TypeUseCase {
	return &TypeUseCase{repo: repo, catRepo: catRepo}
}

// List devuelve todos los tipos con el título de su categoría (join, sin N+1).
func (uc *TypeUseCase) List(ctx context.Context) ([]dto.TypeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TypeResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.TypeResponse{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			Category:      t.CategoryID,
			CategoryTitle: t.CategoryTitle,
			CratedAt:      t.CreatedAt,
		})
	}
	return items, nil
}

// Create crea un tipo. La categoría referida debe existir (se verifica contra
// el repositorio al escribir, no solo por la FK del esquema).
func (uc *TypeUseCase) Create(ctx context.Context, in dto.CreateTypeRequest) (*dto.TypeResponse, error) {
	fields := dto.FieldErrors(in.Validate())
	if ok, err := uc.catRepo.Exists(ctx, in.Category); err != nil {
		return nil, err
	} else if !ok {
		fields["category"] = "la categoría indicada no existe"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	t := &entity.Type{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.Category,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return &dto.TypeResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.CategoryID,
		CratedAt:    t.CreatedAt,
	}, nil
}
