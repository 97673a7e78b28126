package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"barboard/models"
)

func seedAdmin(t *testing.T, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	db, cleanup := withTestBackend(t)
	t.Cleanup(cleanup)
	admin := models.AdminUser{Email: email, PasswordHash: string(hash), Name: "Nadia"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
}

func loginRequest(t *testing.T, email, password string) *http.Request {
	t.Helper()
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	ctx, err := sessionManager.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	return req.WithContext(ctx)
}

func TestLoginRejectsInvalidCredentials(t *testing.T) {
	_, restore := withTestSessionManager(t)
	t.Cleanup(restore)
	seedAdmin(t, "nadia@barboard.app", "correct-horse")

	req := loginRequest(t, "nadia@barboard.app", "wrong-horse")
	w := httptest.NewRecorder()
	Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected the login form re-rendered, got status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Fatalf("expected the rejection message in the body, got: %s", w.Body.String())
	}
	if ActiveSession(req) {
		t.Fatal("expected no authenticated session after a failed login")
	}
}

func TestLoginUnknownEmailGetsSameMessage(t *testing.T) {
	_, restore := withTestSessionManager(t)
	t.Cleanup(restore)
	seedAdmin(t, "nadia@barboard.app", "correct-horse")

	req := loginRequest(t, "nobody@barboard.app", "correct-horse")
	w := httptest.NewRecorder()
	Login(w, req)

	if !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Fatal("expected unknown accounts to get the same rejection message")
	}
}

func TestLoginSuccessRedirectsToDashboard(t *testing.T) {
	_, restore := withTestSessionManager(t)
	t.Cleanup(restore)
	seedAdmin(t, "nadia@barboard.app", "correct-horse")

	req := loginRequest(t, "Nadia@Barboard.app", "correct-horse")
	w := httptest.NewRecorder()
	Login(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/admin" {
		t.Fatalf("expected redirect to /admin, got %q", got)
	}
	if !ActiveSession(req) {
		t.Fatal("expected an authenticated session after login")
	}
	if currentAdminName(req) != "Nadia" {
		t.Fatalf("expected the admin name stored in the session, got %q", currentAdminName(req))
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	_, restore := withTestSessionManager(t)
	t.Cleanup(restore)
	seedAdmin(t, "nadia@barboard.app", "correct-horse")

	req := loginRequest(t, "nadia@barboard.app", "")
	w := httptest.NewRecorder()
	Login(w, req)

	if !strings.Contains(w.Body.String(), "Email and password are required.") {
		t.Fatal("expected the required-fields message")
	}
}

func TestRequireAuthenticationRedirectsBrowser(t *testing.T) {
	sm, restore := withTestSessionManager(t)
	t.Cleanup(restore)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("expected the guarded handler to stay unreached")
	})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	w := httptest.NewRecorder()
	RequireAuthentication(next).ServeHTTP(w, req.WithContext(ctx))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login" {
		t.Fatalf("expected redirect to /login, got %q", got)
	}
}

func TestRequireAuthenticationReturnsJSONForAPI(t *testing.T) {
	sm, restore := withTestSessionManager(t)
	t.Cleanup(restore)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("expected the guarded handler to stay unreached")
	})
	req := httptest.NewRequest(http.MethodGet, "/admin/api/tags", nil)
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	w := httptest.NewRecorder()
	RequireAuthentication(next).ServeHTTP(w, req.WithContext(ctx))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("expected a JSON error for API paths, got %q", ct)
	}
}

func TestRequireAuthenticationPassesActiveSession(t *testing.T) {
	sm, restore := withTestSessionManager(t)
	t.Cleanup(restore)

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = authenticateRequest(t, sm, req, 1)
	w := httptest.NewRecorder()
	RequireAuthentication(next).ServeHTTP(w, req)

	if !reached {
		t.Fatal("expected the guarded handler to run for an authenticated session")
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	sm, restore := withTestSessionManager(t)
	t.Cleanup(restore)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req = authenticateRequest(t, sm, req, 1)
	w := httptest.NewRecorder()
	Logout(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if ActiveSession(req) {
		t.Fatal("expected the session destroyed after logout")
	}
}
