package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"poshop/condb"
	"poshop/controllers"
	"poshop/pos"
	"poshop/routes"
	"poshop/store"
)

func main() {
	pool, err := condb.Connect(context.Background())
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	productStore := store.NewProductPostgres(pool)
	saleStore := store.NewSalePostgres(pool)
	userStore := store.NewUserPostgres(pool)
	processor := pos.NewProcessor(productStore, saleStore, userStore)

	app := fiber.New()

	allow := os.Getenv("ALLOW_ORIGINS")
	if strings.TrimSpace(allow) == "" {
		allow = "http://127.0.0.1:3000,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	if os.Getenv("PROMETHEUS_ENABLED") == "true" {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
		log.Println("/metrics endpoint registered")
	}

	routes.RegisterRoutes(app,
		controllers.NewAuthController(userStore),
		controllers.NewProductController(productStore),
		controllers.NewSaleController(processor, saleStore),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
