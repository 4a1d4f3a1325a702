// seed crea categorías y tipos de forma administrativa (no hay endpoints HTTP
// de mutación para ellos). Lee un JSON con la forma:
//
//	{
//	  "categories": [{"title": "Bebidas", "image": "category/bebidas.jpg"}],
//	  "types": [{"title": "Gaseosas", "description": "Bebidas carbonatadas...", "category_title": "Bebidas"}]
//	}
//
// Uso: go run ./cmd/seed [ruta/seed.json]
// Por defecto busca seed.json en el directorio actual. Los tipos referencian
// su categoría por título dentro del mismo archivo.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/media"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

type seedFile struct {
	Categories []struct {
		Title string `json:"title"`
		Image string `json:"image"`
	} `json:"categories"`
	Types []struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		CategoryTitle string `json:"category_title"`
	} `json:"types"`
}

func main() {
	path := "seed.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer %s: %v\n", path, err)
		os.Exit(1)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		fmt.Fprintf(os.Stderr, "decodificar %s: %v\n", path, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	mediaStore, err := media.NewLocalStore(cfg.Media.Root)
	if err != nil {
		log.Fatal().Err(err).Msg("media store")
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	typeRepo := postgres.NewTypeRepository(pool)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, mediaStore)
	typeUC := usecase.NewTypeUseCase(typeRepo, categoryRepo)

	// Las altas pasan por los casos de uso: mismas reglas de validación que
	// el resto del sistema (título ≥ 2; descripción ≥ 10; categoría existente).
	categoryIDs := make(map[string]int64, len(seed.Categories))
	for _, c := range seed.Categories {
		out, err := categoryUC.Create(ctx, dto.CreateCategoryRequest{Title: c.Title, Image: c.Image})
		if err != nil {
			log.Fatal().Err(err).Str("category", c.Title).Msg("crear categoría")
		}
		categoryIDs[out.Title] = out.ID
		log.Info().Int64("id", out.ID).Str("title", out.Title).Msg("categoría creada")
	}

	for _, t := range seed.Types {
		catID, ok := categoryIDs[t.CategoryTitle]
		if !ok {
			log.Fatal().Str("type", t.Title).Str("category_title", t.CategoryTitle).
				Msg("el tipo referencia una categoría que no está en el seed")
		}
		out, err := typeUC.Create(ctx, dto.CreateTypeRequest{
			Title:       t.Title,
			Description: t.Description,
			Category:    catID,
		})
		if err != nil {
			log.Fatal().Err(err).Str("type", t.Title).Msg("crear tipo")
		}
		log.Info().Int64("id", out.ID).Str("title", out.Title).Msg("tipo creado")
	}

	log.Info().
		Int("categories", len(seed.Categories)).
		Int("types", len(seed.Types)).
		Msg("seed completado")
}
