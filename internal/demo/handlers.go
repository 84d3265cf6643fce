package demo

import (
	"github.com/suka712/anvago-travel-planning/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, adminOnly fiber.Handler) {
	r.Get("/demo", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		state, err := svc.Get(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusOK, state)
	})

	r.Patch("/demo", authMiddleware, adminOnly, func(c *fiber.Ctx) error {
		var req Patch
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		state, err := svc.Apply(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusOK, state)
	})
}
