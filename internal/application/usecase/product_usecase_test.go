package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeCache implementa repository.CacheStore con reloj manual: los tests
// controlan el paso del tiempo con advance, sin dormir.
type fakeCache struct {
	mu      sync.Mutex
	now     time.Time
	entries map[string]fakeEntry
	deleted []string

	getErr, setErr, delErr error
}

type fakeEntry struct {
	value     []byte
	expiresAt time.Time
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		now:     time.Unix(1700000000, 0),
		entries: make(map[string]fakeEntry),
	}
}

func (f *fakeCache) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	e, ok := f.entries[key]
	if !ok || !f.now.Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = fakeEntry{value: value, expiresAt: f.now.Add(ttl)}
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.entries, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeCategoryRepo struct {
	titles map[int64]string
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	c.ID = int64(len(f.titles) + 1)
	f.titles[c.ID] = c.Title
	return nil
}

func (f *fakeCategoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.titles[id]
	return ok, nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	for id, title := range f.titles {
		list = append(list, &entity.Category{ID: id, Title: title})
	}
	return list, nil
}

type fakeTypeRepo struct {
	titles map[int64]string
}

func (f *fakeTypeRepo) Create(_ context.Context, t *entity.Type) error {
	t.ID = int64(len(f.titles) + 1)
	f.titles[t.ID] = t.Title
	return nil
}

func (f *fakeTypeRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.titles[id]
	return ok, nil
}

func (f *fakeTypeRepo) List(_ context.Context) ([]*entity.Type, error) {
	return nil, nil
}

// fakeProductRepo almacén en memoria con los títulos de categoría/tipo
// resueltos como lo haría el join del repositorio real.
type fakeProductRepo struct {
	catTitles  map[int64]string
	typeTitles map[int64]string

	products  []*entity.Product
	images    map[int64][]entity.ProductImage
	nextID    int64
	nextImgID int64

	listCalls int
	failImage bool
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.nextID++
	p.ID = f.nextID
	clone := *p
	f.products = append(f.products, &clone)
	return nil
}

func (f *fakeProductRepo) CreateImage(_ context.Context, img *entity.ProductImage) error {
	if f.failImage {
		return errors.New("disco lleno")
	}
	f.nextImgID++
	img.ID = f.nextImgID
	f.images[img.ProductID] = append(f.images[img.ProductID], *img)
	return nil
}

func (f *fakeProductRepo) GetByIDWithRelations(_ context.Context, id int64) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			clone := *p
			clone.CategoryTitle = f.catTitles[p.CategoryID]
			clone.TypeTitle = f.typeTitles[p.TypeID]
			clone.Images = append([]entity.ProductImage(nil), f.images[id]...)
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) ListWithRelations(_ context.Context) ([]*entity.Product, error) {
	f.listCalls++
	list := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		clone := *p
		clone.CategoryTitle = f.catTitles[p.CategoryID]
		clone.TypeTitle = f.typeTitles[p.TypeID]
		list = append(list, &clone)
	}
	return list, nil
}

func (f *fakeProductRepo) ImagesByProduct(_ context.Context, productIDs []int64) (map[int64][]entity.ProductImage, error) {
	result := make(map[int64][]entity.ProductImage, len(productIDs))
	for _, id := range productIDs {
		if imgs, ok := f.images[id]; ok {
			result[id] = append([]entity.ProductImage(nil), imgs...)
		}
	}
	return result, nil
}

// fakeTxRunner simula la transacción con instantánea + restauración: si fn
// falla, el estado del repo vuelve exactamente a como estaba (rollback).
type fakeTxRunner struct {
	repo *fakeProductRepo
}

func (f *fakeTxRunner) RunProduct(_ context.Context, fn func(repo repository.ProductRepository) error) error {
	products := append([]*entity.Product(nil), f.repo.products...)
	images := make(map[int64][]entity.ProductImage, len(f.repo.images))
	for k, v := range f.repo.images {
		images[k] = append([]entity.ProductImage(nil), v...)
	}
	nextID, nextImgID := f.repo.nextID, f.repo.nextImgID

	if err := fn(f.repo); err != nil {
		f.repo.products, f.repo.images = products, images
		f.repo.nextID, f.repo.nextImgID = nextID, nextImgID
		return err
	}
	return nil
}

type fakeMedia struct {
	n       int
	saved   []string
	removed []string
	saveErr error
}

func (f *fakeMedia) Save(dir string, file *multipart.FileHeader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.n++
	ref := fmt.Sprintf("%s/img-%d%s", dir, f.n, filepath.Ext(file.Filename))
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *fakeMedia) URL(ref, baseURL string) string {
	if ref == "" {
		return ""
	}
	if baseURL != "" {
		return baseURL + "/media/" + ref
	}
	return "/media/" + ref
}

func (f *fakeMedia) Remove(ref string) error {
	f.removed = append(f.removed, ref)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const listTTL = 5 * time.Minute

type productFixture struct {
	uc    *usecase.ProductUseCase
	repo  *fakeProductRepo
	cache *fakeCache
	media *fakeMedia
}

// newProductFixture arma el caso de uso sobre fakes, con la categoría 1
// ("Bebidas") y el tipo 1 ("Gaseosas") ya existentes.
func newProductFixture() *productFixture {
	cats := &fakeCategoryRepo{titles: map[int64]string{1: "Bebidas"}}
	typs := &fakeTypeRepo{titles: map[int64]string{1: "Gaseosas"}}
	repo := &fakeProductRepo{
		catTitles:  cats.titles,
		typeTitles: typs.titles,
		images:     make(map[int64][]entity.ProductImage),
	}
	store := newFakeCache()
	mediaStore := &fakeMedia{}
	uc := usecase.NewProductUseCase(
		repo, cats, typs, &fakeTxRunner{repo: repo},
		store, mediaStore, listTTL, logger.Nop(),
	)
	return &productFixture{uc: uc, repo: repo, cache: store, media: mediaStore}
}

func validRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Title:        "Cola 350ml",
		Description:  "Gaseosa cola en lata de 350 mililitros.",
		Category:     1,
		TypesProduct: 1,
		Price:        "2.50",
		IsActive:     true,
	}
}

func imageHeaders(names ...string) []*multipart.FileHeader {
	files := make([]*multipart.FileHeader, 0, len(names))
	for _, n := range names {
		files = append(files, &multipart.FileHeader{Filename: n})
	}
	return files
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado: read-through con TTL
// ──────────────────────────────────────────────────────────────────────────────

// La primera lectura consulta la base y puebla product_list; la segunda,
// dentro del TTL, devuelve los mismos bytes sin tocar la base.
func TestProductList_PoblaYReutilizaElCache(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, validRequest(), imageHeaders("a.jpg"), "")
	require.NoError(t, err)

	first, err := f.uc.List(ctx, "http://api.local")
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.listCalls)

	second, err := f.uc.List(ctx, "http://api.local")
	require.NoError(t, err)
	assert.Equal(t, first, second, "el hit devuelve el payload byte-idéntico")
	assert.Equal(t, 1, f.repo.listCalls, "el hit no consulta la base")
}

func TestProductList_ExpiraPorTTLYRepuebla(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	_, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, f.repo.listCalls)

	f.cache.advance(listTTL + time.Second)

	_, err = f.uc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.listCalls, "vencido el TTL se vuelve a la base")
}

// Un backend de caché caído nunca tumba la petición: se trata como miss.
func TestProductList_CacheCaidoConsultaLaBase(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()
	f.cache.getErr = errors.New("connection refused")
	f.cache.setErr = errors.New("connection refused")

	payload, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, payload)
	assert.Equal(t, 1, f.repo.listCalls)

	// sin caché utilizable, cada lectura consulta la base
	_, err = f.uc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.listCalls)
}

// El contenido del listado incluye títulos resueltos, imágenes en orden y
// first_image; el payload es JSON válido.
func TestProductList_Contenido(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, validRequest(), imageHeaders("a.jpg", "b.jpg"), "")
	require.NoError(t, err)

	payload, err := f.uc.List(ctx, "http://api.local")
	require.NoError(t, err)

	var items []dto.ProductResponse
	require.NoError(t, json.Unmarshal(payload, &items))
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, "Bebidas", got.CategoryTitle)
	assert.Equal(t, "Gaseosas", got.TypesTitle)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "product/img-1.jpg", got.Images[0].Image)
	assert.Equal(t, "product/img-2.jpg", got.Images[1].Image)
	require.NotNil(t, got.FirstImage)
	assert.Equal(t, "http://api.local/media/product/img-1.jpg", *got.FirstImage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación: validación agregada, atomicidad e invalidación
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_InvalidaElListado(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	_, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, f.repo.listCalls)

	_, err = f.uc.Create(ctx, validRequest(), nil, "")
	require.NoError(t, err)
	assert.Contains(t, f.cache.deleted, usecase.ProductListKey,
		"la creación debe borrar exactamente la clave product_list")

	// la siguiente lectura ve el producto nuevo aunque el TTL no venciera
	payload, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.listCalls)

	var items []dto.ProductResponse
	require.NoError(t, json.Unmarshal(payload, &items))
	assert.Len(t, items, 1)
}

func TestProductCreate_FirstImageEsLaPrimeraEnviada(t *testing.T) {
	f := newProductFixture()

	out, err := f.uc.Create(context.Background(), validRequest(),
		imageHeaders("uno.jpg", "dos.png", "tres.jpg"), "http://api.local")
	require.NoError(t, err)

	require.NotNil(t, out.FirstImage)
	assert.Equal(t, "http://api.local/media/product/img-1.jpg", *out.FirstImage)
	require.Len(t, out.Images, 3)
	assert.Equal(t, "product/img-1.jpg", out.Images[0].Image)
	assert.Equal(t, "product/img-2.png", out.Images[1].Image)
	assert.Equal(t, "product/img-3.jpg", out.Images[2].Image)
}

func TestProductCreate_SinImagenes(t *testing.T) {
	f := newProductFixture()

	out, err := f.uc.Create(context.Background(), validRequest(), nil, "")
	require.NoError(t, err)
	assert.Nil(t, out.FirstImage, "sin imágenes, first_image es null")
	assert.Empty(t, out.Images)
}

// Todas las fallas de campo y de referencia llegan juntas en un solo error.
func TestProductCreate_ValidacionAgregada(t *testing.T) {
	f := newProductFixture()
	in := validRequest()
	in.Title = "ab"
	in.Price = "-5"
	in.Category = 99
	in.TypesProduct = 99

	_, err := f.uc.Create(context.Background(), in, nil, "")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "price")
	assert.Contains(t, verr.Fields, "category")
	assert.Contains(t, verr.Fields, "types_product")
	assert.NotContains(t, verr.Fields, "description")
}

// Una referencia inexistente se rechaza aunque el resto sea válido.
func TestProductCreate_CategoriaInexistente(t *testing.T) {
	f := newProductFixture()
	in := validRequest()
	in.Category = 42

	_, err := f.uc.Create(context.Background(), in, nil, "")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"category": "la categoría indicada no existe"}, verr.Fields)
	assert.Empty(t, f.repo.products, "no debe persistirse nada")
}

// Si falla el insert de una imagen, la transacción revierte todo y los blobs
// guardados se retiran: ningún estado parcial queda visible.
func TestProductCreate_FallaDeImagenRevierteTodo(t *testing.T) {
	f := newProductFixture()
	f.repo.failImage = true

	_, err := f.uc.Create(context.Background(), validRequest(), imageHeaders("a.jpg", "b.jpg"), "")
	require.Error(t, err)

	assert.Empty(t, f.repo.products, "el producto no debe quedar persistido")
	assert.Empty(t, f.repo.images)
	assert.ElementsMatch(t, f.media.saved, f.media.removed,
		"los archivos guardados deben retirarse")
	assert.Empty(t, f.cache.deleted, "sin commit no hay invalidación")
}

// El fallo al invalidar el caché no tumba la creación (solo sirve viejo
// hasta vencer el TTL).
func TestProductCreate_FalloDeInvalidacionNoEsFatal(t *testing.T) {
	f := newProductFixture()
	f.cache.delErr = errors.New("connection refused")

	out, err := f.uc.Create(context.Background(), validRequest(), nil, "")
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
}

func TestProductCreate_UUIDOpacoUnico(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	a, err := f.uc.Create(ctx, validRequest(), nil, "")
	require.NoError(t, err)
	b, err := f.uc.Create(ctx, validRequest(), nil, "")
	require.NoError(t, err)

	_, err = uuid.Parse(a.UUID)
	require.NoError(t, err, "el identificador opaco debe ser un UUID válido")
	assert.NotEqual(t, a.UUID, b.UUID)

	// estable entre lecturas: el listado muestra el mismo uuid
	payload, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	var items []dto.ProductResponse
	require.NoError(t, json.Unmarshal(payload, &items))
	require.Len(t, items, 2)
	assert.Equal(t, a.UUID, items[0].UUID)
	assert.Equal(t, b.UUID, items[1].UUID)
}

// El título y la descripción se guardan recortados (como exige la regla).
func TestProductCreate_RecortaCampos(t *testing.T) {
	f := newProductFixture()
	in := validRequest()
	in.Title = "  Cola 350ml  "

	out, err := f.uc.Create(context.Background(), in, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Cola 350ml", out.Title)
}
