package circle

import "time"

type Circle struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	CreatorID    string    `json:"creator_id"`
	Visibility   string    `json:"visibility"`
	Status       string    `json:"status"`
	MembersCount int       `json:"members_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}
