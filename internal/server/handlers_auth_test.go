package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbruns/accountd/internal/domain"
)

// --- handleRegister tests ---

func TestHandleRegister_Success(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{
		registerFn: func(_ context.Context, email, password string) (*domain.Account, error) {
			assert.Equal(t, "a@x.com", email)
			assert.Equal(t, "pw1", password)
			return &domain.Account{ID: uuid.New(), Email: email}, nil
		},
	})

	req := formRequest(http.MethodPost, "/users", "email=a%40x.com&password=pw1")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
	assert.Contains(t, rec.Body.String(), "user created")
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{
		registerFn: func(_ context.Context, _, _ string) (*domain.Account, error) {
			return nil, domain.ErrEmailTaken
		},
	})

	req := formRequest(http.MethodPost, "/users", "email=a%40x.com&password=pw2")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com already exists")
}

func TestHandleRegister_MissingFields(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{})

	req := formRequest(http.MethodPost, "/users", "email=a%40x.com")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	assert.Equal(t, 400, rec.Code)

	req = formRequest(http.MethodPost, "/users", "password=pw1")
	rec = httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestHandleRegister_InternalError(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{
		registerFn: func(_ context.Context, _, _ string) (*domain.Account, error) {
			return nil, fmt.Errorf("connection refused")
		},
	})

	req := formRequest(http.MethodPost, "/users", "email=a%40x.com&password=pw1")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, 500, rec.Code)
	// Infrastructure detail never leaks to the caller.
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

// --- handleLogin tests ---

func TestHandleLogin_Success(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{
		validateLoginFn: func(_ context.Context, email, password string) (bool, error) {
			return email == "a@x.com" && password == "pw1", nil
		},
		createSessionFn: func(_ context.Context, _ string) (string, error) {
			return "token-1", nil
		},
	})

	req := formRequest(http.MethodPost, "/sessions", "email=a%40x.com&password=pw1")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "logged in")
	require.NotEmpty(t, rec.Result().Cookies())

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionName {
			found = true
			assert.True(t, cookie.HttpOnly)
			// The opaque token never travels in the clear.
			assert.NotContains(t, cookie.Value, "token-1")
		}
	}
	assert.True(t, found)
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{
		validateLoginFn: func(_ context.Context, _, _ string) (bool, error) {
			return false, nil
		},
	})

	// Wrong password and unknown email produce the identical response.
	wrongPw := httptest.NewRecorder()
	srv.echo.ServeHTTP(wrongPw, formRequest(http.MethodPost, "/sessions", "email=a%40x.com&password=wrong"))

	unknown := httptest.NewRecorder()
	srv.echo.ServeHTTP(unknown, formRequest(http.MethodPost, "/sessions", "email=nobody%40x.com&password=pw1"))

	assert.Equal(t, 401, wrongPw.Code)
	assert.Equal(t, 401, unknown.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestHandleLogin_AccountVanished(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{
		validateLoginFn: func(_ context.Context, _, _ string) (bool, error) {
			return true, nil
		},
		createSessionFn: func(_ context.Context, _ string) (string, error) {
			return "", domain.ErrAccountNotFound
		},
	})

	req := formRequest(http.MethodPost, "/sessions", "email=a%40x.com&password=pw1")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, 401, rec.Code)
}

// --- handleLogout tests ---

func TestHandleLogout_WithSession(t *testing.T) {
	var destroyed string
	srv := newTestServer(t, &mockAuthService{
		destroySessionFn: func(_ context.Context, token string) error {
			destroyed = token
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/sessions", nil)
	for _, cookie := range sessionCookies(t, srv, "token-1") {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, 302, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "token-1", destroyed)

	// Cookie is expired on the way out.
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionName {
			assert.Negative(t, cookie.MaxAge)
		}
	}
}

func TestHandleLogout_NoSession(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodDelete, "/sessions", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	// Idempotent: logging out without a session still succeeds.
	assert.Equal(t, 302, rec.Code)
}

// --- requireAuth / handleProfile tests ---

func TestHandleProfile_Authenticated(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{
		resolveSessionFn: func(_ context.Context, token string) (*domain.Account, error) {
			if token == "token-1" {
				return &domain.Account{ID: uuid.New(), Email: "a@x.com"}, nil
			}
			return nil, domain.ErrUnauthenticated
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	for _, cookie := range sessionCookies(t, srv, "token-1") {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestHandleProfile_NoCookie(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, 403, rec.Code)
}

func TestHandleProfile_StaleToken(t *testing.T) {
	srv := newTestServer(t, &mockAuthService{
		resolveSessionFn: func(_ context.Context, _ string) (*domain.Account, error) {
			return nil, domain.ErrUnauthenticated
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	for _, cookie := range sessionCookies(t, srv, "destroyed-token") {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, 403, rec.Code)
}
