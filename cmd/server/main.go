package main

import (
	"strings"

	"factoryops-backend/internal/alerts"
	"factoryops-backend/internal/auth"
	"factoryops-backend/internal/catalog"
	"factoryops-backend/internal/config"
	"factoryops-backend/internal/downtime"
	"factoryops-backend/internal/inventory"
	"factoryops-backend/internal/production"
	"factoryops-backend/internal/reporting"
	"factoryops-backend/internal/seed"
	"factoryops-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	st, locker := buildStore(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logrus.WithError(err).Error("unhandled error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/signup", auth.SignupHandler(st))
	api.Post("/login", auth.LoginHandler(cfg, st))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg, st))

	protected.Get("/me", auth.MeHandler())

	// Factory-scoped routes
	factory := protected.Group("")
	factory.Use(auth.RequireFactory())

	// Products
	factory.Get("/products", catalog.ListProductsHandler(st))
	factory.Post("/products", auth.RequirePolicy(auth.ActionCatalogWrite), catalog.CreateProductHandler(st))
	factory.Put("/products/:id", auth.RequirePolicy(auth.ActionCatalogWrite), catalog.UpdateProductHandler(st))
	factory.Delete("/products/:id", auth.RequirePolicy(auth.ActionCatalogDelete), catalog.DeleteProductHandler(st))

	// Raw materials
	factory.Get("/raw-materials", catalog.ListMaterialsHandler(st))
	factory.Post("/raw-materials", auth.RequirePolicy(auth.ActionCatalogWrite), catalog.CreateMaterialHandler(st))
	factory.Put("/raw-materials/:id", auth.RequirePolicy(auth.ActionCatalogWrite), catalog.UpdateMaterialHandler(st))
	factory.Delete("/raw-materials/:id", auth.RequirePolicy(auth.ActionCatalogDelete), catalog.DeleteMaterialHandler(st))

	// Bill of materials
	factory.Get("/bom", catalog.ListBOMHandler(st))
	factory.Get("/bom/product/:productId", catalog.ProductBOMHandler(st))
	factory.Post("/bom", auth.RequirePolicy(auth.ActionBOMWrite), catalog.CreateBOMHandler(st))
	factory.Delete("/bom/:id", auth.RequirePolicy(auth.ActionBOMWrite), catalog.DeleteBOMHandler(st))

	// Inventory
	factory.Get("/inventory", inventory.StockHandler(st))
	factory.Get("/inventory-transactions", inventory.ListTransactionsHandler(st))
	factory.Post("/inventory-transactions", auth.RequirePolicy(auth.ActionInventoryWrite), inventory.CreateTransactionHandler(st))

	// Production orders
	factory.Get("/production-orders", production.ListOrdersHandler(st))
	factory.Post("/production-orders", auth.RequirePolicy(auth.ActionOrderWrite), production.CreateOrderHandler(st))
	factory.Put("/production-orders/:id/start", auth.RequirePolicy(auth.ActionOrderWrite), production.StartOrderHandler(st))
	factory.Put("/production-orders/:id/complete", auth.RequirePolicy(auth.ActionOrderWrite), production.CompleteOrderHandler(st, locker))

	// Downtime
	factory.Get("/downtime-events", downtime.ListEventsHandler(st))
	factory.Post("/downtime-events", auth.RequirePolicy(auth.ActionDowntimeWrite), downtime.CreateEventHandler(st))

	// Alerts
	factory.Get("/alerts", alerts.ListAlertsHandler(st))
	factory.Delete("/alerts/:id", alerts.DismissAlertHandler(st))

	// Reporting
	factory.Get("/dashboard", reporting.DashboardHandler(st))
	factory.Get("/cost-reports", auth.RequirePolicy(auth.ActionCostReports), reporting.CostReportsHandler(st))
	factory.Get("/cost-reports/export", auth.RequirePolicy(auth.ActionCostReports), reporting.ExportCostReportsHandler(st))

	// Fixture loader
	factory.Post("/seed-data", auth.RequirePolicy(auth.ActionSeed), seed.Handler(st))

	logrus.WithField("port", cfg.HTTPPort).Info("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logrus.Fatal(err)
	}
}

func buildStore(cfg *config.Config) (store.Store, production.Locker) {
	switch cfg.StoreDriver {
	case "redis":
		rs := store.NewRedisStore(cfg.RedisAddr)
		return rs, production.NewRedisLocker(rs.Client())
	case "memory":
		return store.NewMemoryStore(), production.NewMemoryLocker()
	default:
		ps, err := store.NewPostgresStore(cfg.DatabaseDSN)
		if err != nil {
			logrus.WithError(err).Fatal("could not open postgres store")
		}
		return ps, production.NewMemoryLocker()
	}
}
