package event

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func TestEventHandlersCreateAndGet(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs(pgxmock.AnyArg(), "Party", "", "", 0.0, 0.0, "", "Free", "active", "owner-1", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	mock.ExpectQuery(`FROM events WHERE id`).
		WithArgs("e1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "location", "lat", "lng", "distance_text", "price_text", "interested", "status", "owner_id", "created_at", "start_at"}).
			AddRow("e1", "Party", "", "", 0.0, 0.0, "", "Free", 0, "active", "owner-1", now, now))

	app := fiber.New()
	RegisterRoutes(app.Group("/events"), NewService(mock), passthrough)

	body, _ := json.Marshal(Event{Name: "Party", OwnerID: "owner-1"})
	req := httptest.NewRequest(http.MethodPost, "/events/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/events/e1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}
}

func TestEventHandlersCreateValidation(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/events"), NewService(nil), passthrough)

	req := httptest.NewRequest(http.MethodPost, "/events/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for missing name")
	}
}

func TestEventHandlersListStatusDelete(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM events`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "location", "lat", "lng", "distance_text", "price_text", "interested", "status", "owner_id", "created_at", "start_at"}).
			AddRow("e1", "Party", "", "", 0.0, 0.0, "", "Free", 0, "active", "o1", now, now))

	mock.ExpectExec(`UPDATE events SET status`).
		WithArgs("e1", "inactive").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectExec(`UPDATE events SET status`).
		WithArgs("e1", "deleted").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/events"), NewService(mock), passthrough)

	req := httptest.NewRequest(http.MethodGet, "/events/", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"status": "inactive"})
	req = httptest.NewRequest(http.MethodPatch, "/events/e1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status: %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/events/e1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEventHandlersInterested(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE events SET interested`).
		WithArgs("e1").
		WillReturnRows(pgxmock.NewRows([]string{"interested"}).AddRow(4))

	app := fiber.New()
	RegisterRoutes(app.Group("/events"), NewService(mock), passthrough)

	req := httptest.NewRequest(http.MethodPost, "/events/e1/interested", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("interested status: %v", err)
	}

	var out map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["interested"] != 4 {
		t.Fatalf("unexpected count: %d", out["interested"])
	}
}

func TestEventHandlersBadStatusBody(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/events"), NewService(nil), passthrough)

	req := httptest.NewRequest(http.MethodPatch, "/events/e1/status", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}
