package category

import (
	"context"
	"encoding/json"

	"github.com/doech/Wherenow/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, color, icon, status, created_at
		FROM categories WHERE status='active' ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		var rawName []byte
		if err := rows.Scan(&c.ID, &rawName, &c.Color, &c.Icon, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawName, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, color, icon, status, created_at
		FROM categories WHERE id=$1
	`, id)
	var c Category
	var rawName []byte
	if err := row.Scan(&c.ID, &rawName, &c.Color, &c.Icon, &c.Status, &c.CreatedAt); err != nil {
		return Category{}, err
	}
	if err := json.Unmarshal(rawName, &c.Name); err != nil {
		return Category{}, err
	}
	return c, nil
}

// Seed installs the fixed onboarding catalog. Safe to run on every boot;
// existing rows are refreshed in place.
func (s *Service) Seed(ctx context.Context) error {
	for _, c := range fixture {
		name, err := json.Marshal(c.Name)
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(ctx, `
			INSERT INTO categories (id, name, color, icon, status)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (id) DO UPDATE
			SET name=EXCLUDED.name, color=EXCLUDED.color, icon=EXCLUDED.icon, status=EXCLUDED.status
		`, c.ID, name, c.Color, c.Icon, c.Status); err != nil {
			return err
		}
	}
	return nil
}

var fixture = []Category{
	{ID: "music", Icon: "music", Color: "#A855F7", Status: "active", Name: map[string]string{"es": "Música", "en": "Music"}},
	{ID: "parties", Icon: "social", Color: "#F93457", Status: "active", Name: map[string]string{"es": "Fiestas", "en": "Parties"}},
	{ID: "sports", Icon: "sports", Color: "#3B82F6", Status: "active", Name: map[string]string{"es": "Deportes", "en": "Sports"}},
	{ID: "nightlife", Icon: "social", Color: "#FF4081", Status: "active", Name: map[string]string{"es": "Vida Nocturna", "en": "Nightlife"}},
	{ID: "concerts", Icon: "music", Color: "#7C4DFF", Status: "active", Name: map[string]string{"es": "Conciertos", "en": "Concerts"}},
	{ID: "workshops", Icon: "learning", Color: "#4CAF50", Status: "active", Name: map[string]string{"es": "Talleres", "en": "Workshops"}},
	{ID: "bar_meetups", Icon: "social", Color: "#FF9800", Status: "active", Name: map[string]string{"es": "Reuniones en Bares", "en": "Bar Meetups"}},
	{ID: "food_experiences", Icon: "food", Color: "#FF5722", Status: "active", Name: map[string]string{"es": "Experiencias Gastronómicas", "en": "Food Experiences"}},
	{ID: "art_exhibitions", Icon: "arts", Color: "#9C27B0", Status: "active", Name: map[string]string{"es": "Exhibiciones de Arte", "en": "Art Exhibitions"}},
	{ID: "volunteering", Icon: "health", Color: "#009688", Status: "active", Name: map[string]string{"es": "Voluntariado", "en": "Volunteering"}},
	{ID: "gaming_events", Icon: "gaming", Color: "#3F51B5", Status: "active", Name: map[string]string{"es": "Eventos Gamer", "en": "Gaming Events"}},
	{ID: "coffee_parties", Icon: "food", Color: "#A1887F", Status: "active", Name: map[string]string{"es": "Cafecitos", "en": "Coffee Parties"}},
}
