package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	infracache "github.com/jhoicas/catalogo-api/internal/infrastructure/cache"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/media"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Backend del caché de listados: memoria por defecto, Redis si la
	// instancia debe compartirlo. Si Redis no responde al arrancar se corta
	// aquí; caído en runtime, los listados consultan la base (miss).
	store := newCacheStore(ctx, cfg, log)

	mediaStore, err := media.NewLocalStore(cfg.Media.Root)
	if err != nil {
		log.Fatal().Err(err).Msg("media store")
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	typeRepo := postgres.NewTypeRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, mediaStore)
	typeUC := usecase.NewTypeUseCase(typeRepo, categoryRepo)
	productUC := usecase.NewProductUseCase(
		productRepo, categoryRepo, typeRepo, txRunner,
		store, mediaStore, cfg.Cache.ProductListTTL, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catálogo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Imágenes subidas, servidas como estáticos
	app.Static("/media", mediaStore.Root())

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:      categoryUC,
		TypeUC:          typeUC,
		ProductUC:       productUC,
		CategoryListTTL: cfg.Cache.CategoryListTTL,
		TypeListTTL:     cfg.Cache.TypeListTTL,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func newCacheStore(ctx context.Context, cfg *config.Config, log *logger.Logger) repository.CacheStore {
	if cfg.Cache.Backend == "redis" {
		store, err := infracache.NewRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("caché de listados en Redis")
		return store
	}
	log.Info().Msg("caché de listados en memoria")
	return infracache.NewMemory()
}
