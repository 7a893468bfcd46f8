package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jortega/restobar-api/internal/application/catalog"
	"github.com/jortega/restobar-api/internal/application/dto"
)

// AlmacenHandler maneja el catálogo de almacenes (protegido).
type AlmacenHandler struct {
	uc *catalog.AlmacenUseCase
}

// NewAlmacenHandler construye el handler.
func NewAlmacenHandler(uc *catalog.AlmacenUseCase) *AlmacenHandler {
	return &AlmacenHandler{uc: uc}
}

// Create da de alta un almacén.
func (h *AlmacenHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlmacenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista almacenes paginados.
func (h *AlmacenHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	resp, err := h.uc.List(page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// GetByCodigo obtiene un almacén por código.
func (h *AlmacenHandler) GetByCodigo(c *fiber.Ctx) error {
	resp, err := h.uc.GetByCodigo(c.Params("codigo"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Deactivate marca un almacén como inactivo.
func (h *AlmacenHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("codigo")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
