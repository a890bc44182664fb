package event

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		lat, _ := strconv.ParseFloat(c.Query("lat"), 64)
		lng, _ := strconv.ParseFloat(c.Query("lng"), 64)
		events, err := svc.List(c.Context(), lat, lng)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(events)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Event
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.OwnerID == "" {
			req.OwnerID, _ = c.Locals("user_id").(string)
		}
		created, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		evt, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(evt)
	})

	r.Patch("/:id/status", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil || body.Status == "" {
			return fiber.NewError(fiber.StatusBadRequest, "status required")
		}
		if err := svc.SetStatus(c.Context(), c.Params("id"), body.Status); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.SetStatus(c.Context(), c.Params("id"), StatusDeleted); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Post("/:id/interested", func(c *fiber.Ctx) error {
		count, err := svc.MarkInterested(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"interested": count})
	})
}
