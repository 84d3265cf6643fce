package respond

import "github.com/gofiber/fiber/v2"

// Data writes the API's response envelope. Every successful route
// replies {"success": true, "data": ...}; errors go through the app
// error handler, which writes the failure envelope.
func Data(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

// Message is the envelope for delete-style acknowledgements.
func Message(c *fiber.Ctx, msg string) error {
	return Data(c, fiber.StatusOK, fiber.Map{"message": msg})
}
