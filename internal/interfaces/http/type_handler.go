package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// TypeHandler maneja las peticiones HTTP para Type.
type TypeHandler struct {
	uc *usecase.TypeUseCase
}

// NewTypeHandler construye el handler.
func NewTypeHandler(uc *usecase.TypeUseCase) *TypeHandler {
	return &TypeHandler{uc: uc}
}

// List godoc
// @Summary      Listar tipos de producto
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.TypeResponse
// @Router       /type-list [get]
func (h *TypeHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}
