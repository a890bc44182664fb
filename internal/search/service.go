package search

import (
	"context"
	"strings"

	"github.com/doech/Wherenow/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// SearchAll matches events, circles and users by name. A blank query never
// touches the store. Events and circles come back newest first, users
// alphabetically.
func (s *Service) SearchAll(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}
	pattern := "%" + query + "%"

	var results []Result

	events, err := s.collect(ctx, `
		SELECT id, name FROM events
		WHERE name ILIKE $1 AND status <> 'deleted'
		ORDER BY created_at DESC
	`, pattern, "event")
	if err != nil {
		return nil, err
	}
	results = append(results, events...)

	circles, err := s.collect(ctx, `
		SELECT id, name FROM circles
		WHERE name ILIKE $1
		ORDER BY created_at DESC
	`, pattern, "circle")
	if err != nil {
		return nil, err
	}
	results = append(results, circles...)

	users, err := s.collect(ctx, `
		SELECT id, name FROM users
		WHERE name ILIKE $1
		ORDER BY name
	`, pattern, "user")
	if err != nil {
		return nil, err
	}
	results = append(results, users...)

	return results, nil
}

func (s *Service) collect(ctx context.Context, sql, pattern, typ string) ([]Result, error) {
	rows, err := s.db.Query(ctx, sql, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		r.Type = typ
		out = append(out, r)
	}
	return out, nil
}
