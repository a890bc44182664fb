package user

import "time"

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo_url"`
	Bio       string    `json:"bio"`
	Language  string    `json:"language"`
	City      string    `json:"city"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Status    string    `json:"status"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateRequest struct {
	Name     *string  `json:"name"`
	PhotoURL *string  `json:"photo_url"`
	Bio      *string  `json:"bio"`
	Language *string  `json:"language"`
	City     *string  `json:"city"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}
