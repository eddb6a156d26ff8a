package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Catalogos-api/internal/application/auth"
	"github.com/jhoicas/Catalogos-api/internal/application/catalog"
	"github.com/jhoicas/Catalogos-api/internal/application/export"
	"github.com/jhoicas/Catalogos-api/internal/application/tenant"
	"github.com/jhoicas/Catalogos-api/internal/application/usecase"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Catalogos-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *catalog.UseCase
	TenantUC   *tenant.UseCase
	StoreUC    *usecase.StoreUseCase
	ContentUC  *usecase.ContentUseCase
	ComboUC    *usecase.ComboUseCase
	SwapListUC *usecase.SwapListUseCase
	ExportUC   *export.UseCase
	Metrics    *metrics.Metrics
	JWTSecret  string
	AppName    string
	// ServeBlobs expone /api/blobs/* para el blob store en memoria (con S3 las URLs firmadas apuntan al bucket).
	ServeBlobs bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	contentHandler := NewContentHandler(deps.ContentUC)
	if deps.ServeBlobs {
		api.Get("/blobs/*", contentHandler.ServeBlob)
	}

	// Rutas protegidas (requieren Bearer Token de administrador)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin))

	catalogs := protected.Group("/catalogs")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	swapHandler := NewSwapListHandler(deps.SwapListUC)
	catalogs.Get("/", catalogHandler.List)
	catalogs.Post("/", catalogHandler.Create)
	catalogs.Get("/:id", catalogHandler.Get)
	catalogs.Delete("/:id", catalogHandler.DeleteBranch)
	catalogs.Get("/:id/effective", catalogHandler.Effective)
	catalogs.Post("/:id/branches", catalogHandler.CreateBranch)
	catalogs.Post("/:id/stores", catalogHandler.AddStore)
	catalogs.Delete("/:id/stores/:store", catalogHandler.RemoveStore)
	catalogs.Put("/:id/stores/:store/discount", catalogHandler.SetStoreDiscount)
	catalogs.Put("/:id/stores/:store/fee", catalogHandler.SetStoreFee)
	catalogs.Put("/:id/stores/:store/css", catalogHandler.SetStoreCSS)
	catalogs.Put("/:id/fee", catalogHandler.SetCatalogFee)
	catalogs.Put("/:id/order", catalogHandler.SetOrder)
	catalogs.Put("/:id/swap-rule", swapHandler.SetRule)
	catalogs.Get("/:id/swap-products", swapHandler.CatalogProducts)

	tenants := protected.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.TenantUC)
	exportHandler := NewExportHandler(deps.ExportUC)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.Get)
	tenants.Put("/:id/catalog", tenantHandler.AssignCatalog)
	tenants.Put("/:id/notes", tenantHandler.SetNotes)
	tenants.Get("/:id/view", tenantHandler.View)
	tenants.Get("/:id/export/pdf", exportHandler.PDF)
	tenants.Get("/:id/export/feed", exportHandler.Feed)

	tc := tenants.Group("/:id/catalogs/:catalogId")
	tc.Get("/", tenantHandler.CatalogConfig)
	tc.Put("/flags", tenantHandler.SetFlag)
	tc.Put("/hidden-stores", tenantHandler.SetHiddenStores)
	tc.Put("/forced-supplier", tenantHandler.SetForcedSupplier)
	tc.Get("/events", tenantHandler.ListEvents)
	tc.Post("/events", tenantHandler.CreateEvent)
	tc.Put("/events/:eventId/select", tenantHandler.SelectEvent)
	tc.Delete("/events/:eventId", tenantHandler.DeleteEvent)
	tc.Put("/events/:eventId/discounts", tenantHandler.SetEventDiscount)
	tc.Put("/events/:eventId/stores", tenantHandler.SetEventStores)
	tc.Put("/events/:eventId/combos", tenantHandler.SetEventCombos)
	tc.Put("/events/:eventId/order", tenantHandler.SetEventOrder)

	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Get("/:country/:name", storeHandler.Get)
	stores.Put("/:country/:name/active", storeHandler.SetActive)
	stores.Post("/:country/:name/suppliers", storeHandler.AddSupplier)
	stores.Put("/:country/:name/suppliers/selected", storeHandler.SelectSupplier)
	stores.Put("/:country/:name/suppliers/secondary", storeHandler.SetSecondarySupplier)
	stores.Put("/:country/:name/suppliers/:supplierId", storeHandler.SetSupplierMargin)
	stores.Delete("/:country/:name/suppliers/:supplierId", storeHandler.RemoveSupplier)
	stores.Get("/:country/:name/content", contentHandler.Get)
	stores.Put("/:country/:name/content", contentHandler.Set)
	stores.Post("/:country/:name/image", contentHandler.UploadImage)
	stores.Get("/:country/:name/image", contentHandler.ImageURL)
	stores.Delete("/:country/:name/image", contentHandler.DeleteImage)

	combos := protected.Group("/combos")
	comboHandler := NewComboHandler(deps.ComboUC)
	combos.Get("/masters", comboHandler.ListMasters)
	combos.Post("/masters", comboHandler.CreateMaster)
	combos.Get("/masters/:id", comboHandler.GetMaster)
	combos.Put("/masters/:id", comboHandler.UpdateMaster)
	combos.Delete("/masters/:id", comboHandler.DeleteMaster)
	combos.Get("/instances", comboHandler.ListInstances)
	combos.Post("/instances", comboHandler.CreateInstance)
	combos.Get("/instances/:id", comboHandler.GetInstance)
	combos.Put("/instances/:id", comboHandler.UpdateInstance)
	combos.Delete("/instances/:id", comboHandler.DeleteInstance)
	combos.Get("/:id/content", contentHandler.Get)
	combos.Put("/:id/content", contentHandler.Set)
	combos.Post("/:id/image", contentHandler.UploadImage)
	combos.Get("/:id/image", contentHandler.ImageURL)
	combos.Delete("/:id/image", contentHandler.DeleteImage)

	swapLists := protected.Group("/swap-lists")
	swapLists.Get("/", swapHandler.List)
	swapLists.Post("/", swapHandler.Create)
	swapLists.Get("/:id", swapHandler.Get)
	swapLists.Put("/:id", swapHandler.Update)
	swapLists.Delete("/:id", swapHandler.Delete)
	swapLists.Get("/:id/products", swapHandler.Products)
}
