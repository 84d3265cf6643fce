package profile

import (
	"errors"

	"github.com/suka712/anvago-travel-planning/internal/auth"
	"github.com/suka712/anvago-travel-planning/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authSvc *auth.Service, authMiddleware fiber.Handler) {
	r.Get("/me", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		user, err := authSvc.GetUser(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return respond.Data(c, fiber.StatusOK, user)
	})

	r.Get("/me/preferences", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		prefs, err := svc.GetPreferences(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusOK, prefs)
	})

	r.Put("/me/preferences", authMiddleware, func(c *fiber.Ctx) error {
		var req Preferences
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		userID, _ := c.Locals("user_id").(string)
		prefs, err := svc.SavePreferences(c.Context(), userID, req)
		if err != nil {
			if errors.Is(err, ErrTooManyPersonas) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusOK, prefs)
	})
}
