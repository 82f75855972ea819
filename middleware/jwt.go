package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"poshop/models"
	"poshop/utils"
)

// Authenticate verifies the bearer token and stores the caller's id and role
// in locals for the route guards and controllers.
func Authenticate(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no token provided, authorization denied"})
	}

	claims, err := utils.ParseJWTToken(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token is not valid"})
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token is not valid"})
	}

	c.Locals("user_id", userID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func RequireAdmin(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied, admin only"})
	}
	return c.Next()
}

// RequireEmployee admits employees and admins.
func RequireEmployee(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != models.RoleEmployee && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied, employee or admin only"})
	}
	return c.Next()
}
