package user

import (
	"context"

	"github.com/doech/Wherenow/internal/db"
)

type Service struct {
	db db.TxQuerier
}

func NewService(db db.TxQuerier) *Service {
	return &Service{db: db}
}

const profileColumns = `id, email, username, name, photo_url, bio, language, city, lat, lng, status, verified, created_at, updated_at`

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM users WHERE id=$1`, id)
	var p Profile
	if err := row.Scan(&p.ID, &p.Email, &p.Username, &p.Name, &p.PhotoURL, &p.Bio,
		&p.Language, &p.City, &p.Lat, &p.Lng, &p.Status, &p.Verified, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Update patches only the fields present in the request.
func (s *Service) Update(ctx context.Context, id string, patch UpdateRequest) (Profile, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.PhotoURL != nil {
		current.PhotoURL = *patch.PhotoURL
	}
	if patch.Bio != nil {
		current.Bio = *patch.Bio
	}
	if patch.Language != nil {
		current.Language = *patch.Language
	}
	if patch.City != nil {
		current.City = *patch.City
	}
	if patch.Lat != nil {
		current.Lat = patch.Lat
	}
	if patch.Lng != nil {
		current.Lng = patch.Lng
	}

	_, err = s.db.Exec(ctx, `
		UPDATE users
		SET name=$2, photo_url=$3, bio=$4, language=$5, city=$6, lat=$7, lng=$8, updated_at=now()
		WHERE id=$1
	`, id, current.Name, current.PhotoURL, current.Bio, current.Language, current.City, current.Lat, current.Lng)
	if err != nil {
		return Profile{}, err
	}
	return current, nil
}

// SaveCategories replaces the user's onboarding selection wholesale.
// Delete and re-insert run in one transaction so a failed save never
// leaves a half-replaced selection.
func (s *Service) SaveCategories(ctx context.Context, userID string, categoryIDs []string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_categories WHERE user_id=$1`, userID); err != nil {
		return err
	}
	for _, catID := range categoryIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_categories (user_id, category_id)
			VALUES ($1,$2)
			ON CONFLICT (user_id, category_id) DO NOTHING
		`, userID, catID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Service) ListCategories(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT category_id FROM user_categories WHERE user_id=$1 ORDER BY category_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
