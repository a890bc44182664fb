package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func TestUserHandlers(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM users WHERE id`).
		WithArgs("u1").
		WillReturnRows(profileRows())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM user_categories`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO user_categories`).
		WithArgs("u1", "cat-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	mock.ExpectQuery(`SELECT category_id FROM user_categories`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"category_id"}).AddRow("cat-1"))

	app := fiber.New()
	RegisterRoutes(app.Group("/users"), NewService(mock), passthrough)

	req := httptest.NewRequest(http.MethodGet, "/users/u1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}

	body, _ := json.Marshal(map[string][]string{"category_ids": {"cat-1"}})
	req = httptest.NewRequest(http.MethodPut, "/users/u1/categories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("save categories status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/users/u1/categories", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list categories status: %v", err)
	}
	var out map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out["category_ids"]) != 1 || out["category_ids"][0] != "cat-1" {
		t.Fatalf("unexpected categories: %v", out)
	}
}

func TestUserHandlersNotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM users WHERE id`).WithArgs("missing").WillReturnError(errUser)

	app := fiber.New()
	RegisterRoutes(app.Group("/users"), NewService(mock), passthrough)

	req := httptest.NewRequest(http.MethodGet, "/users/missing", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestUserHandlersPatch(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM users WHERE id`).
		WithArgs("u1").
		WillReturnRows(profileRows())
	mock.ExpectExec(`UPDATE users`).
		WithArgs("u1", pgxmock.AnyArg(), pgxmock.AnyArg(), "new bio", pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/users"), NewService(mock), passthrough)

	body, _ := json.Marshal(map[string]string{"bio": "new bio"})
	req := httptest.NewRequest(http.MethodPatch, "/users/u1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status: %v", err)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile.Bio != "new bio" || profile.Name != "User One" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}
