package circle

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		circles, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if circles == nil {
			circles = []Circle{}
		}
		return c.JSON(circles)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Circle
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.CreatorID == "" {
			req.CreatorID, _ = c.Locals("user_id").(string)
		}
		created, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		circle, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(circle)
	})

	r.Post("/:id/activity", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.TouchActivity(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})
}
