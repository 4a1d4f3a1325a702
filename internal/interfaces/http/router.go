package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fibercache "github.com/gofiber/fiber/v2/middleware/cache"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	TypeUC     *usecase.TypeUseCase
	ProductUC  *usecase.ProductUseCase

	// TTL del caché de respuesta de los listados de categorías y tipos.
	// El listado de productos no usa este middleware: su caché lo maneja
	// el caso de uso (clave product_list, invalidada al crear).
	CategoryListTTL time.Duration
	TypeListTTL     time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	typeHandler := NewTypeHandler(deps.TypeUC)
	productHandler := NewProductHandler(deps.ProductUC)

	app.Get("/category-list", ResponseCache(deps.CategoryListTTL), categoryHandler.List)
	app.Get("/type-list", ResponseCache(deps.TypeListTTL), typeHandler.List)
	app.Get("/product-list", productHandler.List)
	app.Post("/product-create", productHandler.Create)
}

// ResponseCache caché de respuesta genérico y transparente al handler,
// con clave método+ruta+query. Solo aplica a GET; vence por tiempo, nunca se
// invalida explícitamente.
func ResponseCache(ttl time.Duration) fiber.Handler {
	return fibercache.New(fibercache.Config{
		Expiration: ttl,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Method() + ":" + c.OriginalURL()
		},
	})
}
