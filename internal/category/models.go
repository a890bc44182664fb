package category

import "time"

type Category struct {
	ID        string            `json:"id"`
	Name      map[string]string `json:"name"` // {"es": "...", "en": "..."}
	Color     string            `json:"color"`
	Icon      string            `json:"icon"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}
