package http

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos (cacheado 5 min, clave product_list)
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /product-list [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	// El caso de uso devuelve el payload ya serializado: con hit de caché
	// son los bytes guardados tal cual.
	payload, err := h.uc.List(c.UserContext(), c.BaseURL())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// Create godoc
// @Summary      Crear producto con imágenes (multipart)
// @Tags         catalog
// @Accept       multipart/form-data
// @Produce      json
// @Param        title          formData  string  true   "Título (mínimo 3 caracteres)"
// @Param        description    formData  string  true   "Descripción (mínimo 10 caracteres)"
// @Param        category       formData  int     true   "ID de la categoría"
// @Param        types_product  formData  int     true   "ID del tipo"
// @Param        price          formData  string  true   "Precio (número positivo)"
// @Param        is_active      formData  bool    false  "Activo"
// @Param        images         formData  file    false  "Imágenes (orden = first_image)"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  map[string]string  "mapa campo→mensaje"
// @Router       /product-create [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	var images []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		images = form.File["images"]
	}

	out, err := h.uc.Create(c.UserContext(), in, images, c.BaseURL())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
