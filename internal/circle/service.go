package circle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/doech/Wherenow/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// newCircleID returns a short human-readable id like C417.
func newCircleID() string {
	return fmt.Sprintf("C%d", 100+rand.Intn(900))
}

const createAttempts = 5

// Create inserts a circle with a generated id, retrying on id collision.
// The id space is small on purpose; collisions are expected and cheap.
func (s *Service) Create(ctx context.Context, input Circle) (Circle, error) {
	if input.Visibility == "" {
		input.Visibility = "private"
	}
	if input.Status == "" {
		input.Status = "active"
	}
	now := time.Now()
	input.CreatedAt = now
	input.LastActivity = now
	input.MembersCount = 0

	for i := 0; i < createAttempts; i++ {
		input.ID = newCircleID()
		_, err := s.db.Exec(ctx, `
			INSERT INTO circles (id, name, description, category, creator_id, visibility, status, members_count, created_at, last_activity)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, input.ID, input.Name, input.Description, input.Category, input.CreatorID,
			input.Visibility, input.Status, input.MembersCount, input.CreatedAt, input.LastActivity)
		if err == nil {
			return input, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return Circle{}, err
	}
	return Circle{}, errors.New("could not allocate circle id")
}

func (s *Service) List(ctx context.Context) ([]Circle, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, category, creator_id, visibility, status, members_count, created_at, last_activity
		FROM circles
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var circles []Circle
	for rows.Next() {
		var c Circle
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Category, &c.CreatorID,
			&c.Visibility, &c.Status, &c.MembersCount, &c.CreatedAt, &c.LastActivity); err != nil {
			return nil, err
		}
		circles = append(circles, c)
	}
	return circles, nil
}

func (s *Service) Get(ctx context.Context, id string) (Circle, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, category, creator_id, visibility, status, members_count, created_at, last_activity
		FROM circles WHERE id=$1
	`, id)
	var c Circle
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Category, &c.CreatorID,
		&c.Visibility, &c.Status, &c.MembersCount, &c.CreatedAt, &c.LastActivity); err != nil {
		return Circle{}, err
	}
	return c, nil
}

// TouchActivity bumps last_activity so active circles sort to the top of
// activity-ordered views.
func (s *Service) TouchActivity(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `UPDATE circles SET last_activity=now() WHERE id=$1`, id)
	return err
}
