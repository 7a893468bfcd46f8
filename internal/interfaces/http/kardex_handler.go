package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/application/inventory"
	"github.com/jortega/restobar-api/internal/infrastructure/pdf"
)

// KardexHandler maneja la consulta del kardex, el resumen de stock y la
// exportación del kardex a PDF (protegido).
type KardexHandler struct {
	reader *inventory.KardexReader
	pdfGen *pdf.MarotoKardexGenerator
}

// NewKardexHandler construye el handler.
func NewKardexHandler(reader *inventory.KardexReader, pdfGen *pdf.MarotoKardexGenerator) *KardexHandler {
	return &KardexHandler{reader: reader, pdfGen: pdfGen}
}

// GetKardex godoc
// @Summary      Kardex: movimientos con saldo corrido por (artículo, almacén)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        codigo_articulo  query  string  false  "filtrar por artículo"
// @Param        codigo_almacen   query  string  false  "filtrar por almacén"
// @Param        desde            query  string  false  "inicio de ventana (RFC3339)"
// @Param        hasta            query  string  false  "fin de ventana (RFC3339)"
// @Success      200  {object}  dto.KardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kardex [get]
func (h *KardexHandler) GetKardex(c *fiber.Ctx) error {
	var in dto.KardexRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	resp, err := h.reader.GetKardex(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// GetKardexPDF godoc
// @Summary      Kardex en PDF para auditoría
// @Tags         kardex
// @Security     Bearer
// @Produce      application/pdf
// @Param        codigo_articulo  query  string  false  "filtrar por artículo"
// @Param        codigo_almacen   query  string  false  "filtrar por almacén"
// @Success      200  {file}  binary
// @Router       /api/kardex/pdf [get]
func (h *KardexHandler) GetKardexPDF(c *fiber.Ctx) error {
	var in dto.KardexRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	kardex, err := h.reader.GetKardex(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	bytes, err := h.pdfGen.GenerateKardexPDF(in, kardex)
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="kardex.pdf"`)
	return c.Send(bytes)
}

// GetStockSummary godoc
// @Summary      Saldos actuales materializados por (artículo, almacén)
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        codigo_articulo  query  string  false  "filtrar por artículo"
// @Param        codigo_almacen   query  string  false  "filtrar por almacén"
// @Success      200  {array}  dto.StockResumenDTO
// @Router       /api/stock [get]
func (h *KardexHandler) GetStockSummary(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	page.DefaultPage()
	resp, err := h.reader.GetStockSummary(c.Context(), c.Query("codigo_articulo"), c.Query("codigo_almacen"), page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
