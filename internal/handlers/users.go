package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/plantops/maintgo/internal/middleware"
	"github.com/plantops/maintgo/internal/models"
	"github.com/plantops/maintgo/internal/utils"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// userView is the safe subset of a profile returned by auth endpoints.
type userView struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// login verifies credentials and returns the profile with a fresh token.
// Passwords are compared as stored, in plain text, matching the system this
// backend replaces.
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var body credentialsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Email == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.Profile
	if err := r.db.Where("email = ?", body.Email).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if user.Password != body.Password {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(&user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user": userView{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}

// register creates a new profile and logs it straight in.
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Email == "" || body.Password == "" || body.Role == "" {
		respondError(w, http.StatusBadRequest, "Email, password, and role are required")
		return
	}

	user := models.Profile{
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
		FullName: body.FullName,
	}
	if err := r.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusConflict, "Email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error during registration")
		return
	}

	token, err := utils.GenerateToken(&user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "User created but failed to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   token,
		"user": userView{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
		},
	})
}

// getRole returns the role for a matching email/password pair
func (r *Router) getRole(w http.ResponseWriter, req *http.Request) {
	var body credentialsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Email == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.Profile
	err := r.db.Where("email = ? AND password = ?", body.Email, body.Password).First(&user).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found or invalid credentials")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"role": user.Role})
}

// listUsers returns every profile without credentials
func (r *Router) listUsers(w http.ResponseWriter, req *http.Request) {
	var users []struct {
		ID        string    `json:"id"`
		FullName  string    `json:"full_name"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}
	err := r.db.Model(&models.Profile{}).
		Select("id, full_name, role, created_at").
		Order("created_at DESC").
		Scan(&users).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error fetching users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// me echoes the identity claims of the bearer token.
func (r *Router) me(w http.ResponseWriter, req *http.Request) {
	claims, ok := req.Context().Value(middleware.UserContextKey).(jwt.MapClaims)
	if !ok {
		respondError(w, http.StatusUnauthorized, "No authenticated user")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":    claims["id"],
		"email": claims["email"],
		"role":  claims["role"],
	})
}

// profileStats summarizes a user's activity for the profile page.
func (r *Router) profileStats(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var user models.Profile
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Profile not found")
		return
	}

	var reportedBreakdowns int64
	if err := r.db.Model(&models.BreakdownLog{}).Where("reported_by = ?", id).Count(&reportedBreakdowns).Error; err != nil {
		reportedBreakdowns = 0
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"role":            user.Role,
		"department":      "Engineering",
		"reported_issues": reportedBreakdowns,
		"last_login":      user.UpdatedAt,
	})
}
