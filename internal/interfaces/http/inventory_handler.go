package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/application/inventory"
)

// InventoryHandler maneja los documentos de inventario: compras, consumos,
// traslados, salidas por factura y reversas (protegido).
type InventoryHandler struct {
	writer   *inventory.TransactionWriter
	reversal *inventory.ReversalEngine
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(writer *inventory.TransactionWriter, reversal *inventory.ReversalEngine) *InventoryHandler {
	return &InventoryHandler{writer: writer, reversal: reversal}
}

// RegisterPurchase godoc
// @Summary      Registrar compra a proveedor
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarCompraRequest  true  "documento, proveedor, almacén y líneas"
// @Success      201   {object}  dto.TransaccionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/compras [post]
func (h *InventoryHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.RegistrarCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.writer.RegisterPurchase(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RegisterConsumption godoc
// @Summary      Registrar consumo interno (mermas, cocina, autoconsumo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarConsumoRequest  true  "motivo, almacén y líneas (admite kits)"
// @Success      201   {object}  dto.TransaccionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/consumos [post]
func (h *InventoryHandler) RegisterConsumption(c *fiber.Ctx) error {
	var in dto.RegistrarConsumoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.writer.RegisterConsumption(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RegisterTransfer godoc
// @Summary      Registrar traslado entre almacenes
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarTrasladoRequest  true  "almacén origen, destino y líneas"
// @Success      201   {object}  dto.TransaccionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/traslados [post]
func (h *InventoryHandler) RegisterTransfer(c *fiber.Ctx) error {
	var in dto.RegistrarTrasladoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.writer.RegisterTransfer(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RegisterInvoiceMovements godoc
// @Summary      Descargar inventario por venta facturada
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarFacturaRequest  true  "número de factura, almacén y líneas vendidas"
// @Success      201   {object}  dto.TransaccionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/facturas [post]
func (h *InventoryHandler) RegisterInvoiceMovements(c *fiber.Ctx) error {
	var in dto.RegistrarFacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.writer.RegisterInvoiceMovements(c.Context(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ReverseInvoice godoc
// @Summary      Revertir los movimientos de una factura anulada
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        numero  path  string  true  "número de factura"
// @Success      201  {object}  dto.ReversaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/facturas/{numero}/reversa [post]
func (h *InventoryHandler) ReverseInvoice(c *fiber.Ctx) error {
	numero := c.Params("numero")
	resp, err := h.reversal.ReverseInvoiceMovements(c.Context(), GetUserID(c), numero)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
