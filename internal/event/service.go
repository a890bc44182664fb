package event

import (
	"context"
	"errors"
	"time"

	"github.com/doech/Wherenow/internal/db"
	"github.com/doech/Wherenow/internal/shared/geo"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Event) (Event, error) {
	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	if input.PriceText == "" {
		input.PriceText = "Free"
	}
	if input.Status == "" {
		input.Status = StatusActive
	}
	if input.StartAt.IsZero() {
		input.StartAt = time.Now()
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO events (id, name, description, location, lat, lng, distance_text, price_text, status, owner_id, start_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at
	`, input.ID, input.Name, input.Description, input.Location, input.Lat, input.Lng,
		input.DistanceText, input.PriceText, input.Status, input.OwnerID, input.StartAt)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Event{}, err
	}
	return input, nil
}

// List returns non-deleted events ordered by start time. When the caller
// supplies coordinates each event carries a computed distance.
func (s *Service) List(ctx context.Context, lat, lng float64) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, location, COALESCE(lat,0), COALESCE(lng,0),
		       distance_text, price_text, interested, status, owner_id, created_at, start_at
		FROM events
		WHERE status <> 'deleted'
		ORDER BY start_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Location, &e.Lat, &e.Lng,
			&e.DistanceText, &e.PriceText, &e.Interested, &e.Status, &e.OwnerID, &e.CreatedAt, &e.StartAt); err != nil {
			return nil, err
		}
		if (lat != 0 || lng != 0) && (e.Lat != 0 || e.Lng != 0) {
			e.DistanceKm = geo.HaversineKm(lat, lng, e.Lat, e.Lng)
		}
		events = append(events, e)
	}
	return events, nil
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, location, COALESCE(lat,0), COALESCE(lng,0),
		       distance_text, price_text, interested, status, owner_id, created_at, start_at
		FROM events WHERE id=$1
	`, id)
	var e Event
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Location, &e.Lat, &e.Lng,
		&e.DistanceText, &e.PriceText, &e.Interested, &e.Status, &e.OwnerID, &e.CreatedAt, &e.StartAt); err != nil {
		return Event{}, err
	}
	return e, nil
}

var errBadStatus = errors.New("status must be active, inactive or deleted")

// SetStatus flips the lifecycle state. Events are never hard-deleted; a
// delete is a flip to "deleted".
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	if !validStatus(status) {
		return errBadStatus
	}
	_, err := s.db.Exec(ctx, `UPDATE events SET status=$2 WHERE id=$1`, id, status)
	return err
}

func (s *Service) MarkInterested(ctx context.Context, id string) (int, error) {
	var interested int
	err := s.db.QueryRow(ctx, `
		UPDATE events SET interested = interested + 1 WHERE id=$1
		RETURNING interested
	`, id).Scan(&interested)
	return interested, err
}
