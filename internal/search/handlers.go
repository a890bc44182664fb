package search

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		results, err := svc.SearchAll(c.Context(), c.Query("q"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(results)
	})
}
