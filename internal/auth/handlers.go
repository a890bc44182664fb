package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, verifier *Verifier) {
	r.Post("/register", func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		user, tokens, err := svc.Register(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "tokens": tokens})
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email and password required")
		}
		user, resp, err := svc.Login(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return c.JSON(fiber.Map{"user": user, "tokens": resp})
	})

	r.Post("/refresh", func(c *fiber.Ctx) error {
		var req RefreshRequest
		if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
			return fiber.NewError(fiber.StatusBadRequest, "refresh_token required")
		}

		userID, err := svc.ValidateRefreshToken(c.Context(), req.RefreshToken)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		resp, err := svc.GenerateTokens(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(resp)
	})

	r.Get("/jwt/verify", func(c *fiber.Ctx) error {
		token := parseBearer(c.Get("Authorization"))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		userID, err := svc.ValidateAccessToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return c.JSON(fiber.Map{"user_id": userID})
	})

	if verifier != nil {
		r.Post("/verify/send", func(c *fiber.Ctx) error {
			var body struct {
				UserID string `json:"user_id"`
				Email  string `json:"email"`
			}
			if err := c.BodyParser(&body); err != nil || body.UserID == "" || body.Email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "user_id and email required")
			}
			if err := verifier.SendCode(c.Context(), body.UserID, body.Email); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return c.SendStatus(fiber.StatusAccepted)
		})

		r.Post("/verify/confirm", func(c *fiber.Ctx) error {
			var body struct {
				UserID string `json:"user_id"`
				Code   string `json:"code"`
			}
			if err := c.BodyParser(&body); err != nil || body.UserID == "" || body.Code == "" {
				return fiber.NewError(fiber.StatusBadRequest, "user_id and code required")
			}
			err := verifier.ConfirmCode(c.Context(), body.UserID, body.Code)
			if errors.Is(err, ErrCodeMismatch) || errors.Is(err, ErrCodeExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			}
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			return c.SendStatus(fiber.StatusOK)
		})
	}
}

func parseBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
