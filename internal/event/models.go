package event

import "time"

type Event struct {
	ID           string    `json:"event_id"`
	Name         string    `json:"name" validate:"required"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	DistanceText string    `json:"distance_text"`
	PriceText    string    `json:"price_text"`
	Interested   int       `json:"interested"`
	Status       string    `json:"status"`
	OwnerID      string    `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	StartAt      time.Time `json:"start_at"`

	// DistanceKm is derived from the caller's coordinates at list time.
	DistanceKm float64 `json:"distance_km,omitempty"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

func validStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusDeleted
}
