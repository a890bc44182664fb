package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthHandlersRegisterLoginVerify(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	createdAt := time.Now()
	updatedAt := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "user@example.com", "user", pgxmock.AnyArg(), "",
			"", "", "es", "", "active").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(createdAt, updatedAt))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock)
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), svc, nil)

	registerBody, _ := json.Marshal(RegisterRequest{Email: "user@example.com", Username: "user", Password: "password"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: %v", err)
	}

	passwordBytes, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	passwordHash := string(passwordBytes)
	mock.ExpectQuery(`SELECT id, email, username, password_hash`).
		WithArgs("user@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "username", "password_hash", "name", "photo_url", "bio", "language", "city", "status", "verified", "created_at", "updated_at"}).
			AddRow("user-1", "user@example.com", "user", passwordHash, "", "", "", "es", "", "active", false, createdAt, updatedAt))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	loginBody, _ := json.Marshal(LoginRequest{Email: "user@example.com", Password: "password"})
	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: %v", err)
	}

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	tokens, _ := svc.GenerateTokens(context.Background(), "user-1")

	req = httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status: %v", err)
	}
}

func TestAuthRefreshInvalidToken(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("test-secret", nil), nil)

	body, _ := json.Marshal(RefreshRequest{RefreshToken: "not-a-token"})
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}
}

func TestAuthLoginMissingFields(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("test-secret", nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestAuthVerifyCodeEndpoints(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET verified`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	sender := &fakeSender{}
	verifier, mr := newVerifierForTest(t, mock, sender)

	svc := NewService("test-secret", mock)
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), svc, verifier)

	body, _ := json.Marshal(map[string]string{"user_id": "user-1", "email": "user@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/auth/verify/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusAccepted {
		t.Fatalf("send status: %v", err)
	}

	code, err := mr.Get("verify:code:user-1")
	if err != nil {
		t.Fatalf("code not stored: %v", err)
	}

	body, _ = json.Marshal(map[string]string{"user_id": "user-1", "code": code})
	req = httptest.NewRequest(http.MethodPost, "/auth/verify/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm status: %v", err)
	}

	body, _ = json.Marshal(map[string]string{"user_id": "user-1", "code": "000000"})
	req = httptest.NewRequest(http.MethodPost, "/auth/verify/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for stale code")
	}
}
