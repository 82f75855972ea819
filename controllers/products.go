package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"poshop/models"
	"poshop/store"
)

type ProductController struct {
	products store.ProductStore
}

func NewProductController(products store.ProductStore) *ProductController {
	return &ProductController{products: products}
}

func (pc *ProductController) List(c *fiber.Ctx) error {
	products, err := pc.products.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// ListForPOS feeds the checkout search screen: only products with stock left,
// sorted by name.
func (pc *ProductController) ListForPOS(c *fiber.Ctx) error {
	products, err := pc.products.ListInStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (pc *ProductController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	product, err := pc.products.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

type createProductRequest struct {
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (pc *ProductController) Create(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	product, err := models.NewProduct(req.Name, req.SKU, req.Price, req.Stock)
	if err != nil {
		return respondError(c, err)
	}

	if err := pc.products.Create(c.Context(), product); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

func (pc *ProductController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	var upd models.ProductUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	product, err := pc.products.Update(c.Context(), id, upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (pc *ProductController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	if err := pc.products.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product deleted successfully"})
}
