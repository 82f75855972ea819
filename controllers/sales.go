package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"poshop/models"
	"poshop/pos"
	"poshop/receipt"
	"poshop/store"
)

type SaleController struct {
	processor *pos.Processor
	sales     store.SaleStore
}

func NewSaleController(processor *pos.Processor, sales store.SaleStore) *SaleController {
	return &SaleController{processor: processor, sales: sales}
}

type createSaleRequest struct {
	Items []models.CartItem `json:"items"`
}

func (sc *SaleController) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided, authorization denied"})
	}

	var req createSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	sale, err := sc.processor.Process(c.Context(), userID, req.Items)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (sc *SaleController) List(c *fiber.Ctx) error {
	sales, err := sc.sales.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (sc *SaleController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("sale_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid sale id"})
	}

	sale, err := sc.sales.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// Receipt returns the printable plain-text form of a recorded sale.
func (sc *SaleController) Receipt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("sale_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid sale id"})
	}

	sale, err := sc.sales.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(receipt.Render(sale))
}
