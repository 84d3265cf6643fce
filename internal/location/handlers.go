package location

import (
	"github.com/suka712/anvago-travel-planning/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		category := c.Query("category")
		if category != "" && !ValidCategory(category) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown category")
		}
		locations, err := svc.Search(c.Context(), SearchParams{
			City:     c.Query("city"),
			Category: category,
			Query:    c.Query("q"),
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if locations == nil {
			locations = []Location{}
		}
		return respond.Data(c, fiber.StatusOK, locations)
	})

	r.Get("/popular", func(c *fiber.Ctx) error {
		locations, err := svc.Popular(c.Context(), c.Query("city", "Danang"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if locations == nil {
			locations = []Location{}
		}
		return respond.Data(c, fiber.StatusOK, locations)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		loc, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "location not found")
		}
		return respond.Data(c, fiber.StatusOK, loc)
	})
}
