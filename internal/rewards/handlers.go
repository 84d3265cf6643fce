package rewards

import (
	"errors"

	"github.com/suka712/anvago-travel-planning/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/tiers", func(c *fiber.Ctx) error {
		return respond.Data(c, fiber.StatusOK, Tiers)
	})

	r.Get("/gifts", func(c *fiber.Ctx) error {
		return respond.Data(c, fiber.StatusOK, Gifts)
	})

	r.Get("/me", authMiddleware, func(c *fiber.Ctx) error {
		balance, err := svc.Me(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusOK, balance)
	})

	r.Get("/me/contributions", authMiddleware, func(c *fiber.Ctx) error {
		contributions, err := svc.Contributions(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusOK, contributions)
	})

	r.Post("/contributions", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Type         string `json:"type"`
			LocationID   string `json:"location_id"`
			LocationName string `json:"location_name"`
		}
		if err := c.BodyParser(&req); err != nil || req.Type == "" {
			return fiber.NewError(fiber.StatusBadRequest, "type required")
		}
		contribution, err := svc.AddContribution(c.Context(), userID(c), req.Type,
			req.LocationID, req.LocationName)
		if err != nil {
			if errors.Is(err, ErrUnknownContribution) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusCreated, contribution)
	})

	r.Post("/redeem", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			GiftID string `json:"gift_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.GiftID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "gift_id required")
		}
		redemption, err := svc.Redeem(c.Context(), userID(c), req.GiftID)
		if err != nil {
			if errors.Is(err, ErrUnknownGift) || errors.Is(err, ErrInsufficientPoints) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusCreated, redemption)
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
