package joinrequest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/doech/Wherenow/internal/db"
	"github.com/doech/Wherenow/internal/notify"
)

type Service struct {
	db         db.TxQuerier
	hub        *notify.Hub
	cache      *Cache
	locks      keyedLocks
	retryDelay time.Duration
}

func NewService(db db.TxQuerier, hub *notify.Hub) *Service {
	return &Service{
		db:         db,
		hub:        hub,
		cache:      NewCache(),
		locks:      keyedLocks{entries: map[string]*sync.Mutex{}},
		retryDelay: 100 * time.Millisecond,
	}
}

// Cache exposes the per-owner pending snapshot for subscribers.
func (s *Service) Cache() *Cache {
	return s.cache
}

var errIDsRequired = errors.New("event id and user id required")

// Send upserts the pending request keyed on (event, user). Calling twice for
// the same pair overwrites rather than duplicates. One retry with backoff
// covers transient store failures.
func (s *Service) Send(ctx context.Context, eventID, userID string) error {
	if eventID == "" || userID == "" {
		return errIDsRequired
	}

	var ownerID, eventName string
	row := s.db.QueryRow(ctx, `
		SELECT owner_id, name FROM events WHERE id=$1
	`, eventID)
	if err := row.Scan(&ownerID, &eventName); err != nil {
		return err
	}

	upsert := func() error {
		_, err := s.db.Exec(ctx, `
			INSERT INTO join_requests (event_id, user_id, status, requested_at)
			VALUES ($1,$2,'pending', to_jsonb($3::bigint))
			ON CONFLICT (event_id, user_id)
			DO UPDATE SET status='pending', requested_at=EXCLUDED.requested_at
		`, eventID, userID, time.Now().UnixMilli())
		return err
	}
	if err := upsert(); err != nil {
		time.Sleep(s.retryDelay)
		if err := upsert(); err != nil {
			return err
		}
	}

	s.hub.Push(ownerID, notify.Event{
		Type:      notify.TypeJoinRequestReceived,
		EventID:   eventID,
		EventName: eventName,
		UserID:    userID,
	})
	return nil
}

// ListPendingForOwner collects the pending requests across all events owned by
// ownerID, newest first. A blank owner short-circuits to an empty result
// without touching the store. Store errors surface to the caller so an empty
// list always means "no requests".
func (s *Service) ListPendingForOwner(ctx context.Context, ownerID string) ([]JoinRequest, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name FROM events WHERE owner_id=$1
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	eventNames := map[string]string{}
	var eventIDs []string
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		eventNames[id] = name
		eventIDs = append(eventIDs, id)
	}
	if len(eventIDs) == 0 {
		return nil, nil
	}

	reqRows, err := s.db.Query(ctx, `
		SELECT event_id, user_id, requested_at
		FROM join_requests WHERE event_id = ANY($1)
	`, eventIDs)
	if err != nil {
		return nil, err
	}
	defer reqRows.Close()

	var requests []JoinRequest
	var userIDs []string
	for reqRows.Next() {
		var eventID, userID string
		var rawRequestedAt []byte
		if err := reqRows.Scan(&eventID, &userID, &rawRequestedAt); err != nil {
			return nil, err
		}
		if userID == "" {
			continue
		}
		userIDs = append(userIDs, userID)
		requests = append(requests, JoinRequest{
			EventID:     eventID,
			EventName:   eventNames[eventID],
			UserID:      userID,
			RequestedAt: coerceRequestedAt(rawRequestedAt),
		})
	}

	names, err := s.loadUserNames(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		name, ok := names[requests[i].UserID]
		if !ok || name == "" {
			name = unknownUserName
		}
		requests[i].UserName = name
	}

	sorted := sortRequests(requests)
	s.cache.Set(ownerID, sorted)
	return sorted, nil
}

// Accept materializes the membership in both places and clears the pending
// request inside one transaction. Accept and Reject for the same pair are
// serialized so a double-tap cannot leave an orphan membership.
func (s *Service) Accept(ctx context.Context, eventID, userID string) error {
	if eventID == "" || userID == "" {
		return errIDsRequired
	}

	lock := s.locks.get(eventID, userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_events (user_id, event_id, role)
		VALUES ($1,$2,'participant')
		ON CONFLICT (user_id, event_id) DO UPDATE SET role=EXCLUDED.role
	`, userID, eventID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO event_members (event_id, user_id)
		VALUES ($1,$2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM join_requests WHERE event_id=$1 AND user_id=$2
	`, eventID, userID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.cache.Drop(userID, eventID)
	s.hub.Push(userID, notify.Event{
		Type:    notify.TypeJoinRequestAccepted,
		EventID: eventID,
		UserID:  userID,
	})
	return nil
}

// Reject deletes the pending request only. No membership is created.
func (s *Service) Reject(ctx context.Context, eventID, userID string) error {
	if eventID == "" || userID == "" {
		return errIDsRequired
	}

	lock := s.locks.get(eventID, userID)
	lock.Lock()
	defer lock.Unlock()

	_, err := s.db.Exec(ctx, `
		DELETE FROM join_requests WHERE event_id=$1 AND user_id=$2
	`, eventID, userID)
	if err == nil {
		s.cache.Drop(userID, eventID)
	}
	return err
}

func (s *Service) loadUserNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, name FROM users WHERE id = ANY($1)
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := map[string]string{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, nil
}

func sortRequests(requests []JoinRequest) []JoinRequest {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].RequestedAt > requests[j].RequestedAt
	})
	return requests
}

// keyedLocks serializes accept/reject per (event, user). Entries are never
// evicted; the pair space is bounded by real request traffic.
type keyedLocks struct {
	mu      sync.Mutex
	entries map[string]*sync.Mutex
}

func (k *keyedLocks) get(eventID, userID string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	key := eventID + "\x00" + userID
	if k.entries[key] == nil {
		k.entries[key] = &sync.Mutex{}
	}
	return k.entries[key]
}
