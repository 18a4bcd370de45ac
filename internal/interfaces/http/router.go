package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/location-manager/internal/application/auth"
	"github.com/jhoicas/location-manager/internal/application/export"
	"github.com/jhoicas/location-manager/internal/application/ledger"
	"github.com/jhoicas/location-manager/internal/application/usecase"
	"github.com/jhoicas/location-manager/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ShopUC    *usecase.ShopUseCase
	ProductUC *usecase.ProductUseCase
	EntryUC   *ledger.EntryUseCase
	ExportUC  *export.ShopExportUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	productHandler := NewProductHandler(deps.ProductUC)
	shopHandler := NewShopHandler(deps.ShopUC, deps.EntryUC, deps.ExportUC)
	entryHandler := NewEntryHandler(deps.EntryUC)

	// Localizaciones (token opcional: sin token la lista es vacía)
	api.Get("/products/:id/localizations", OptionalAuth(deps.JWTSecret), productHandler.Localizations)

	// Rutas protegidas (requieren Bearer Token)
	authn := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Shops
	shops := api.Group("/shops", authn)
	shops.Get("/", shopHandler.List)
	shops.Get("/:id", shopHandler.GetByID)
	shops.Get("/:id/entries", shopHandler.Entries)
	shops.Get("/:id/shop-data-download", shopHandler.Download)
	shops.Post("/", adminOnly, shopHandler.Create)
	shops.Put("/:id", adminOnly, shopHandler.Update)
	shops.Delete("/:id", adminOnly, shopHandler.Delete)

	// Products
	products := api.Group("/products", authn)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Entries (autorización por local en el caso de uso)
	entries := api.Group("/entries", authn)
	entries.Post("/", entryHandler.Create)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Put("/:id", entryHandler.Update)
	entries.Delete("/:id", entryHandler.Delete)
}
