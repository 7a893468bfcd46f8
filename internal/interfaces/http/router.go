package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jortega/restobar-api/internal/application/auth"
	"github.com/jortega/restobar-api/internal/application/catalog"
	"github.com/jortega/restobar-api/internal/application/inventory"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ArticuloUC *catalog.ArticuloUseCase
	AlmacenUC  *catalog.AlmacenUseCase
	Writer     *inventory.TransactionWriter
	Reversal   *inventory.ReversalEngine
	Kardex     *inventory.KardexReader
	KardexPDF  *pdf.MarotoKardexGenerator
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de artículos (lectura para todos; escritura solo admin)
	articulos := protected.Group("/articulos")
	articuloHandler := NewArticuloHandler(deps.ArticuloUC)
	articulos.Get("/", articuloHandler.List)
	articulos.Get("/:codigo", articuloHandler.GetByCodigo)
	articulos.Post("/", RequireRole(entity.RoleAdmin), articuloHandler.Create)
	articulos.Delete("/:codigo", RequireRole(entity.RoleAdmin), articuloHandler.Deactivate)

	// Catálogo de almacenes
	almacenes := protected.Group("/almacenes")
	almacenHandler := NewAlmacenHandler(deps.AlmacenUC)
	almacenes.Get("/", almacenHandler.List)
	almacenes.Get("/:codigo", almacenHandler.GetByCodigo)
	almacenes.Post("/", RequireRole(entity.RoleAdmin), almacenHandler.Create)
	almacenes.Delete("/:codigo", RequireRole(entity.RoleAdmin), almacenHandler.Deactivate)

	// Documentos de inventario
	invGroup := protected.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.Writer, deps.Reversal)
	invGroup.Post("/compras", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.RegisterPurchase)
	invGroup.Post("/consumos", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.RegisterConsumption)
	invGroup.Post("/traslados", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.RegisterTransfer)
	invGroup.Post("/facturas", RequireRole(entity.RoleAdmin, entity.RoleCajero), inventoryHandler.RegisterInvoiceMovements)
	invGroup.Post("/facturas/:numero/reversa", RequireRole(entity.RoleAdmin), inventoryHandler.ReverseInvoice)

	// Kardex y stock (lectura para todos los autenticados)
	kardexHandler := NewKardexHandler(deps.Kardex, deps.KardexPDF)
	protected.Get("/kardex", kardexHandler.GetKardex)
	protected.Get("/kardex/pdf", kardexHandler.GetKardexPDF)
	protected.Get("/stock", kardexHandler.GetStockSummary)
}
