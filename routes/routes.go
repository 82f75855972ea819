package routes

import (
	"github.com/gofiber/fiber/v2"

	"poshop/controllers"
	"poshop/middleware"
)

func RegisterRoutes(app *fiber.App, auth *controllers.AuthController, products *controllers.ProductController, sales *controllers.SaleController) {

	// auth
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)

	// catalog (admin)
	app.Get("/products", middleware.Authenticate, middleware.RequireAdmin, products.List)
	app.Get("/products/:product_id", middleware.Authenticate, middleware.RequireAdmin, products.Get)
	app.Post("/products", middleware.Authenticate, middleware.RequireAdmin, products.Create)
	app.Put("/products/:product_id", middleware.Authenticate, middleware.RequireAdmin, products.Update)
	app.Delete("/products/:product_id", middleware.Authenticate, middleware.RequireAdmin, products.Delete)

	// pos (employee or admin)
	app.Get("/pos/products", middleware.Authenticate, middleware.RequireEmployee, products.ListForPOS)
	app.Post("/sales", middleware.Authenticate, middleware.RequireEmployee, sales.Create)
	app.Get("/sales/:sale_id/receipt", middleware.Authenticate, middleware.RequireEmployee, sales.Receipt)

	// sales archive (admin)
	app.Get("/sales", middleware.Authenticate, middleware.RequireAdmin, sales.List)
	app.Get("/sales/:sale_id", middleware.Authenticate, middleware.RequireAdmin, sales.Get)
}
