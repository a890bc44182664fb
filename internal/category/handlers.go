package category

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		categories, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if categories == nil {
			categories = []Category{}
		}
		return c.JSON(categories)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		category, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(category)
	})
}
