package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/huntbase/zonehunt/internal/database"
	"github.com/huntbase/zonehunt/internal/geo"
	"github.com/huntbase/zonehunt/internal/session"
)

const adminPassword = "hunt-master"

func setupAdminRouter(t *testing.T) (*chi.Mux, *DocStore) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store, err := NewDocStore(ctx, db)
	if err != nil {
		t.Fatalf("init doc store: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	locator, err := geo.DefaultLocator()
	if err != nil {
		t.Fatalf("load zones: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	addRoutes(r, logger, Deps{
		Store:             store,
		Sessions:          session.NewRegistry(time.Hour),
		Locator:           locator,
		DB:                db,
		AdminPasswordHash: string(hash),
	})
	return r, store
}

func adminLogin(t *testing.T, r *chi.Mux, password string) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(AdminLoginRequest{Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName {
			return c
		}
	}
	t.Fatal("login did not set the admin cookie")
	return nil
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r, _ := setupAdminRouter(t)

	body, _ := json.Marshal(AdminLoginRequest{Password: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminRoutesRequireCookie(t *testing.T) {
	r, _ := setupAdminRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/games", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", w.Code)
	}
}

func TestAdminListAndDeleteGames(t *testing.T) {
	r, store := setupAdminRouter(t)
	ctx := context.Background()
	store.EnsureGame(ctx, "g1")
	store.EnsureGame(ctx, "g2")

	cookie := adminLogin(t, r, adminPassword)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/games", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp AdminGamesResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(resp.Games))
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/games/g1", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/games/g1", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a deleted game, got %d", w.Code)
	}
}

func TestAdminLogoutInvalidatesSession(t *testing.T) {
	r, _ := setupAdminRouter(t)
	cookie := adminLogin(t, r, adminPassword)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/games", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestAdminLoginDisabledWithoutHash(t *testing.T) {
	r, _, _ := setupRouter(t) // no AdminPasswordHash

	body, _ := json.Marshal(AdminLoginRequest{Password: adminPassword})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when admin is not configured, got %d", w.Code)
	}
}
