package circle

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

func TestCircleHandlers(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO circles`).
		WithArgs(anyInsertArgs...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	now := time.Now()
	mock.ExpectQuery(`FROM circles`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "category", "creator_id", "visibility", "status", "members_count", "created_at", "last_activity"}).
			AddRow("C105", "Hikers", "", "cat-1", "u1", "private", "active", 0, now, now))

	mock.ExpectExec(`UPDATE circles SET last_activity`).
		WithArgs("C105").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/circles"), NewService(mock), passthrough)

	body, _ := json.Marshal(Circle{Name: "Hikers", CreatorID: "u1"})
	req := httptest.NewRequest(http.MethodPost, "/circles/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/circles/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/circles/C105/activity", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("activity status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCircleHandlersBadRequest(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/circles"), NewService(nil), passthrough)

	req := httptest.NewRequest(http.MethodPost, "/circles/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for missing name")
	}
}

func TestCircleHandlersEmptyList(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM circles`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "category", "creator_id", "visibility", "status", "members_count", "created_at", "last_activity"}))

	app := fiber.New()
	RegisterRoutes(app.Group("/circles"), NewService(mock), passthrough)

	req := httptest.NewRequest(http.MethodGet, "/circles/", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}
	var out []Circle
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty array, got %v", out)
	}
}
