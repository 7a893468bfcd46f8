package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jortega/restobar-api/internal/application/catalog"
	"github.com/jortega/restobar-api/internal/application/dto"
)

// ArticuloHandler maneja el catálogo de artículos (protegido).
type ArticuloHandler struct {
	uc *catalog.ArticuloUseCase
}

// NewArticuloHandler construye el handler.
func NewArticuloHandler(uc *catalog.ArticuloUseCase) *ArticuloHandler {
	return &ArticuloHandler{uc: uc}
}

// Create da de alta un artículo (TERMINADO o KIT con receta).
func (h *ArticuloHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista artículos; con q busca por código o nombre sin distinguir acentos.
func (h *ArticuloHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	resp, err := h.uc.List(c.Query("q"), page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// GetByCodigo obtiene un artículo por código.
func (h *ArticuloHandler) GetByCodigo(c *fiber.Ctx) error {
	resp, err := h.uc.GetByCodigo(c.Params("codigo"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Deactivate marca un artículo como inactivo.
func (h *ArticuloHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("codigo")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
