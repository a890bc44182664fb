package user

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		profile, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(profile)
	})

	r.Patch("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var patch UpdateRequest
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		profile, err := svc.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(profile)
	})

	r.Put("/:id/categories", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			CategoryIDs []string `json:"category_ids"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.SaveCategories(c.Context(), c.Params("id"), body.CategoryIDs); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Get("/:id/categories", authMiddleware, func(c *fiber.Ctx) error {
		ids, err := svc.ListCategories(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if ids == nil {
			ids = []string{}
		}
		return c.JSON(fiber.Map{"category_ids": ids})
	})
}
