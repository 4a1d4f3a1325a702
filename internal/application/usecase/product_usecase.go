package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ProductListKey clave única (global) bajo la que se cachea el listado de
// productos serializado. El endpoint no tiene filtros ni paginación; si algún
// día los tiene, esta clave deja de ser correcta (ver DESIGN.md).
const ProductListKey = "product_list"

// ProductUseCase listados cacheados y creación de productos con imágenes.
//
// Lectura: read-through sobre CacheStore con TTL fijo. Escritura: validación
// agregada por campo, persistencia transaccional producto+imágenes e
// invalidación de ProductListKey después del commit. Una falla del backend de
// caché nunca tumba la petición: se registra y se consulta la base.
type ProductUseCase struct {
	repo     repository.ProductRepository
	catRepo  repository.CategoryRepository
	typeRepo repository.TypeRepository
	tx       TxRunner
	store    repository.CacheStore
	media    MediaStore
	listTTL  time.Duration
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. listTTL es la vigencia del
// listado cacheado (5 minutos en producción).
func NewProductUseCase(
	repo repository.ProductRepository,
	catRepo repository.CategoryRepository,
	typeRepo repository.TypeRepository,
	tx TxRunner,
	store repository.CacheStore,
	media MediaStore,
	listTTL time.Duration,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		repo:     repo,
		catRepo:  catRepo,
		typeRepo: typeRepo,
		tx:       tx,
		store:    store,
		media:    media,
		listTTL:  listTTL,
		log:      log,
	}
}

// List devuelve el listado de productos serializado. Con hit de caché devuelve
// los bytes guardados tal cual (la respuesta repetida es byte-idéntica dentro
// de la ventana del TTL). Con miss arma el listado con dos consultas (join de
// títulos + lote de imágenes), lo serializa y lo guarda bajo ProductListKey.
func (uc *ProductUseCase) List(ctx context.Context, baseURL string) ([]byte, error) {
	if payload, found, err := uc.store.Get(ctx, ProductListKey); err != nil {
		uc.log.Warn().Err(err).Str("key", ProductListKey).Msg("caché no disponible, se consulta la base")
	} else if found {
		return payload, nil
	}

	products, err := uc.repo.ListWithRelations(ctx)
	if err != nil {
		return nil, err
	}

	// Prefetch de imágenes en lote: una sola consulta para todos los
	// productos del listado, ordenada por inserción.
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	imagesByProduct, err := uc.repo.ImagesByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		p.Images = imagesByProduct[p.ID]
		items = append(items, *uc.toResponse(p, baseURL))
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("serializar listado de productos: %w", err)
	}
	if err := uc.store.Set(ctx, ProductListKey, payload, uc.listTTL); err != nil {
		uc.log.Warn().Err(err).Str("key", ProductListKey).Msg("no se pudo guardar el listado en caché")
	}
	return payload, nil
}

// Create valida, persiste el producto con sus imágenes en una transacción e
// invalida el listado cacheado. Devuelve la representación completa de
// lectura (sin pasar por el caché), con first_image resuelta.
//
// Las reglas de campo y las referencias se verifican TODAS y las fallas se
// agregan en un solo ValidationError campo→mensaje.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, images []*multipart.FileHeader, baseURL string) (*dto.ProductResponse, error) {
	fields := dto.FieldErrors(in.Validate())
	if ok, err := uc.catRepo.Exists(ctx, in.Category); err != nil {
		return nil, err
	} else if !ok {
		fields["category"] = "la categoría indicada no existe"
	}
	if ok, err := uc.typeRepo.Exists(ctx, in.TypesProduct); err != nil {
		return nil, err
	} else if !ok {
		fields["types_product"] = "el tipo indicado no existe"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	// Las imágenes se guardan en el blob store antes de la transacción; si
	// algo falla después, se retiran (el commit nunca queda a medias).
	refs := make([]string, 0, len(images))
	cleanup := func() {
		for _, ref := range refs {
			_ = uc.media.Remove(ref)
		}
	}
	for _, fh := range images {
		ref, err := uc.media.Save("product", fh)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("guardar imagen: %w", err)
		}
		refs = append(refs, ref)
	}

	product := &entity.Product{
		UUID:        uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.Category,
		TypeID:      in.TypesProduct,
		Price:       strings.TrimSpace(in.Price),
		IsActive:    in.IsActive,
		CreatedAt:   time.Now(),
	}
	err := uc.tx.RunProduct(ctx, func(repo repository.ProductRepository) error {
		if err := repo.Create(ctx, product); err != nil {
			return err
		}
		// Las imágenes se insertan en el orden en que llegaron: ese orden
		// define first_image en las lecturas.
		for _, ref := range refs {
			img := &entity.ProductImage{ProductID: product.ID, Image: ref}
			if err := repo.CreateImage(ctx, img); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	// Invalidación estrictamente después del commit: el próximo GET
	// /product-list lee fresco. Si el backend de caché falla aquí, el peor
	// caso es servir datos viejos hasta vencer el TTL.
	if err := uc.store.Delete(ctx, ProductListKey); err != nil {
		uc.log.Warn().Err(err).Str("key", ProductListKey).Msg("no se pudo invalidar el listado de productos")
	}

	created, err := uc.repo.GetByIDWithRelations(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(created, baseURL), nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product, baseURL string) *dto.ProductResponse {
	images := make([]dto.ProductImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, dto.ProductImageResponse{
			ID:       img.ID,
			Image:    img.Image,
			ImageURL: uc.media.URL(img.Image, baseURL),
			Product:  img.ProductID,
		})
	}
	var first *string
	if ref := p.FirstImage(); ref != "" {
		u := uc.media.URL(ref, baseURL)
		first = &u
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		UUID:          p.UUID,
		Title:         p.Title,
		Description:   p.Description,
		Category:      p.CategoryID,
		CategoryTitle: p.CategoryTitle,
		TypesProduct:  p.TypeID,
		TypesTitle:    p.TypeTitle,
		CreatedAt:     p.CreatedAt,
		Price:         p.Price,
		FirstImage:    first,
		Images:        images,
		IsActive:      p.IsActive,
	}
}
