package itinerary

import (
	"errors"

	"github.com/suka712/anvago-travel-planning/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, optionalAuth fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		itineraries, err := svc.ListByUser(c.Context(), userID(c))
		if err != nil {
			return toHTTPError(err)
		}
		return respond.Data(c, fiber.StatusOK, itineraries)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Itinerary
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title required")
		}
		it, err := svc.Create(c.Context(), userID(c), req)
		if err != nil {
			return toHTTPError(err)
		}
		return respond.Data(c, fiber.StatusCreated, it)
	})

	r.Get("/:id", optionalAuth, func(c *fiber.Ctx) error {
		it, err := svc.Get(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			return toHTTPError(err)
		}
		return respond.Data(c, fiber.StatusOK, it)
	})

	r.Patch("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		it, err := svc.Update(c.Context(), c.Params("id"), userID(c), req)
		if err != nil {
			return toHTTPError(err)
		}
		return respond.Data(c, fiber.StatusOK, it)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id"), userID(c)); err != nil {
			return toHTTPError(err)
		}
		return respond.Message(c, "itinerary deleted")
	})

	r.Post("/:id/duplicate", authMiddleware, func(c *fiber.Ctx) error {
		it, err := svc.Duplicate(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			return toHTTPError(err)
		}
		return respond.Data(c, fiber.StatusCreated, it)
	})

	r.Post("/:id/items", authMiddleware, func(c *fiber.Ctx) error {
		var req Item
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.LocationID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location_id required")
		}
		item, err := svc.AddItem(c.Context(), c.Params("id"), userID(c), req)
		if err != nil {
			return toHTTPError(err)
		}
		return respond.Data(c, fiber.StatusCreated, item)
	})

	r.Post("/:id/items/reorder", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Items []ReorderEntry `json:"items"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.Reorder(c.Context(), c.Params("id"), userID(c), req.Items); err != nil {
			return toHTTPError(err)
		}
		return respond.Message(c, "itinerary reordered")
	})

	r.Patch("/:id/items/:itemId", authMiddleware, func(c *fiber.Ctx) error {
		var req ItemPatch
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		item, err := svc.UpdateItem(c.Context(), c.Params("id"), c.Params("itemId"), userID(c), req)
		if err != nil {
			return toHTTPError(err)
		}
		return respond.Data(c, fiber.StatusOK, item)
	})

	r.Delete("/:id/items/:itemId", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteItem(c.Context(), c.Params("id"), c.Params("itemId"), userID(c)); err != nil {
			return toHTTPError(err)
		}
		return respond.Message(c, "item removed")
	})

	r.Get("/:id/items/:itemId/alternatives", optionalAuth, func(c *fiber.Ctx) error {
		alternatives, err := svc.Alternatives(c.Context(), c.Params("id"),
			c.Params("itemId"), userID(c), c.Query("type"))
		if err != nil {
			return toHTTPError(err)
		}
		return respond.Data(c, fiber.StatusOK, alternatives)
	})

	r.Get("/:id/schedule", optionalAuth, func(c *fiber.Ctx) error {
		schedules, err := svc.Schedule(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			return toHTTPError(err)
		}
		return respond.Data(c, fiber.StatusOK, schedules)
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrBadReorder):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
