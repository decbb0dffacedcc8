package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/plantops/maintgo/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/register", map[string]interface{}{
		"email":     "tech@plant.local",
		"password":  "secret123",
		"role":      "technician",
		"full_name": "Plant Tech",
	})
	wantStatus(t, rec, http.StatusCreated)
	body := decodeBody(t, rec)
	if body["message"] != "User registered successfully" {
		t.Errorf("message = %q", body["message"])
	}
	if token, _ := body["token"].(string); token == "" {
		t.Error("expected a token in the registration response")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/login", map[string]interface{}{
		"email":    "tech@plant.local",
		"password": "secret123",
	})
	wantStatus(t, rec, http.StatusOK)
	body = decodeBody(t, rec)
	if body["message"] != "Login successful" {
		t.Errorf("message = %q", body["message"])
	}

	rec = doJSON(t, router, http.MethodPost, "/api/login", map[string]interface{}{
		"email":    "tech@plant.local",
		"password": "wrong",
	})
	wantError(t, rec, http.StatusUnauthorized, "Invalid email or password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := map[string]interface{}{
		"email":    "dup@plant.local",
		"password": "pw",
		"role":     "user",
	}
	rec := doJSON(t, router, http.MethodPost, "/api/register", payload)
	wantStatus(t, rec, http.StatusCreated)

	rec = doJSON(t, router, http.MethodPost, "/api/register", payload)
	wantError(t, rec, http.StatusConflict, "Email already registered")
}

func TestRegisterMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/register", map[string]interface{}{
		"email": "nobody@plant.local",
	})
	wantError(t, rec, http.StatusBadRequest, "Email, password, and role are required")
}

func TestGetRole(t *testing.T) {
	router, db := newTestRouter(t)
	db.Create(&models.Profile{Email: "admin@plant.local", Password: "pw", Role: "admin"})

	rec := doJSON(t, router, http.MethodPost, "/api/getRole", map[string]interface{}{
		"email":    "admin@plant.local",
		"password": "pw",
	})
	wantStatus(t, rec, http.StatusOK)
	body := decodeBody(t, rec)
	if body["role"] != "admin" {
		t.Errorf("role = %q, want admin", body["role"])
	}

	rec = doJSON(t, router, http.MethodPost, "/api/getRole", map[string]interface{}{
		"email":    "admin@plant.local",
		"password": "nope",
	})
	wantError(t, rec, http.StatusNotFound, "User not found or invalid credentials")
}

func TestMeRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/me", nil)
	wantStatus(t, rec, http.StatusUnauthorized)
}

func TestMeWithToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/register", map[string]interface{}{
		"email":    "me@plant.local",
		"password": "pw",
		"role":     "user",
	})
	wantStatus(t, rec, http.StatusCreated)
	token := decodeBody(t, rec)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)

	if out.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", out.Code, out.Body.String())
	}
	body := map[string]interface{}{}
	if err := json.Unmarshal(out.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["email"] != "me@plant.local" {
		t.Errorf("email claim = %q", body["email"])
	}
	if body["role"] != "user" {
		t.Errorf("role claim = %q", body["role"])
	}
}

func TestListUsersOmitsCredentials(t *testing.T) {
	router, db := newTestRouter(t)
	db.Create(&models.Profile{Email: "a@plant.local", Password: "pw", Role: "user"})

	rec := doJSON(t, router, http.MethodGet, "/api/users", nil)
	wantStatus(t, rec, http.StatusOK)
	if got := rec.Body.String(); strings.Contains(got, "password") || strings.Contains(got, `"pw"`) {
		t.Errorf("user listing leaks credentials: %s", got)
	}
}
