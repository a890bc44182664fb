package joinrequest

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/:eventID/requests", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		if err := svc.Send(c.Context(), c.Params("eventID"), body.UserID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fiber.NewError(fiber.StatusNotFound, "event not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	r.Get("/requests/pending", authMiddleware, func(c *fiber.Ctx) error {
		ownerID := c.Query("owner_id")
		if ownerID == "" {
			ownerID, _ = c.Locals("user_id").(string)
		}
		requests, err := svc.ListPendingForOwner(c.Context(), ownerID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if requests == nil {
			requests = []JoinRequest{}
		}
		return c.JSON(requests)
	})

	r.Post("/:eventID/requests/:userID/accept", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Accept(c.Context(), c.Params("eventID"), c.Params("userID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Post("/:eventID/requests/:userID/reject", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Reject(c.Context(), c.Params("eventID"), c.Params("userID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})
}
