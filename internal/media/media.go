package media

import (
	"context"
	"strings"
	"time"

	"github.com/doech/Wherenow/internal/db"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const baseURL = "https://media.wherenow.app/"

type Object struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"` // "avatar" or "photo"
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// SaveObject records an upload and returns the object with its served URL.
func (s *Service) SaveObject(ctx context.Context, userID, fileName, kind string) (Object, error) {
	if kind != "avatar" {
		kind = "photo"
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = "upload"
	}
	obj := Object{
		ID:     uuid.NewString(),
		UserID: userID,
		URL:    baseURL + fileName,
		Kind:   kind,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO media_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, obj.ID, obj.UserID, obj.URL, obj.Kind)
	if err := row.Scan(&obj.CreatedAt); err != nil {
		return Object{}, err
	}
	return obj, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Object, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, url, kind, created_at
		FROM media_objects WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []Object
	for rows.Next() {
		var o Object
		if err := rows.Scan(&o.ID, &o.UserID, &o.URL, &o.Kind, &o.CreatedAt); err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	return objects, nil
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/upload", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID   string `json:"user_id"`
			FileName string `json:"file_name"`
			Kind     string `json:"kind"`
		}
		_ = c.BodyParser(&body)
		if body.UserID == "" {
			body.UserID, _ = c.Locals("user_id").(string)
		}
		obj, err := svc.SaveObject(c.Context(), body.UserID, body.FileName, body.Kind)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(obj)
	})

	r.Get("/user/:userID", authMiddleware, func(c *fiber.Ctx) error {
		objects, err := svc.ListForUser(c.Context(), c.Params("userID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if objects == nil {
			objects = []Object{}
		}
		return c.JSON(objects)
	})
}
