package template

import (
	"strconv"
	"strings"

	"github.com/suka712/anvago-travel-planning/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		templates, err := svc.ListByCity(c.Context(), c.Query("city", "Danang"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusOK, templates)
	})

	r.Get("/suggested", func(c *fiber.Ctx) error {
		q := Query{
			City:      c.Query("city", "Danang"),
			Personas:  splitCSV(c.Query("personas")),
			Vibes:     splitCSV(c.Query("vibes")),
			Budget:    c.Query("budget"),
			Interests: splitCSV(c.Query("interests")),
		}
		if raw := c.Query("duration"); raw != "" {
			duration, err := strconv.Atoi(raw)
			if err != nil || duration < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "duration must be a positive integer")
			}
			q.DurationDays = duration
		}

		scored, err := svc.Suggest(c.Context(), q)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return respond.Data(c, fiber.StatusOK, scored)
	})
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
