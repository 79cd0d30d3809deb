package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/medimart/marketplace-service/internal/api/http/handlers"
	"github.com/medimart/marketplace-service/internal/auth"
	"github.com/medimart/marketplace-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	Orders         *handlers.OrdersHandler
	Banners        *handlers.BannersHandler
	Rentals        *handlers.RentalsHandler
	AuthMiddleware *auth.Middleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Protection is declared per route: public
// routes simply omit the auth gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	guard := cfg.AuthMiddleware.Handle

	app.Get("/", cfg.Health.Home)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.HTTPHandler()))
	}

	app.Post("/login", cfg.Auth.Login)
	app.Get("/profile", guard, cfg.Auth.Profile)
	app.Patch("/users/:id", guard, cfg.Auth.UpdateUser)

	app.Get("/categories", cfg.Catalog.ListCategories)
	app.Post("/categories", guard, cfg.Catalog.CreateCategory)
	app.Delete("/categories/:id", guard, cfg.Catalog.DeleteCategory)

	app.Post("/products", guard, cfg.Catalog.CreateProduct)
	app.Get("/products", guard, cfg.Catalog.ListProducts)
	app.Get("/products/:id", cfg.Catalog.GetProduct)
	app.Patch("/products/:id", cfg.Catalog.UpdateProduct)
	app.Delete("/products/:id", cfg.Catalog.DeleteProduct)

	app.Post("/orders", guard, cfg.Orders.CreateOrder)
	app.Get("/orders", guard, cfg.Orders.ListMyOrders)
	app.Patch("/orders/:id", guard, cfg.Orders.UpdateOrder)

	app.Post("/payments", guard, cfg.Orders.CreatePayment)
	app.Get("/payments", guard, cfg.Orders.ListPayments)
	app.Get("/payments/my-payments", guard, cfg.Orders.ListMyPayments)
	app.Patch("/payments/:id", guard, cfg.Orders.UpdatePayment)

	app.Post("/banners", guard, cfg.Banners.CreateBanner)
	app.Get("/banners", guard, cfg.Banners.ListBanners)
	app.Get("/banners/my-banners", guard, cfg.Banners.ListMyBanners)
	app.Patch("/banners/:id", guard, cfg.Banners.UpdateBanner)
	app.Delete("/banners/:id", guard, cfg.Banners.DeleteBanner)

	app.Post("/cars", guard, cfg.Rentals.CreateCar)
	app.Get("/cars", cfg.Rentals.ListCars)
	app.Get("/my-cars", guard, cfg.Rentals.ListMyCars)
	app.Get("/cars/:id", cfg.Rentals.GetCar)
	app.Patch("/cars/:id", guard, cfg.Rentals.UpdateCar)
	app.Delete("/cars/:id", guard, cfg.Rentals.DeleteCar)

	app.Post("/bookings", guard, cfg.Rentals.CreateBooking)
	app.Get("/bookings", guard, cfg.Rentals.ListMyBookings)
	app.Patch("/bookings/:id", guard, cfg.Rentals.UpdateBooking)
	app.Delete("/bookings/:id", guard, cfg.Rentals.DeleteBooking)
}
