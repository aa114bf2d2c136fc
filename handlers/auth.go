package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wicaksana/kedai/config"
	"github.com/wicaksana/kedai/database"
	"github.com/wicaksana/kedai/database/dbhelper"
	"github.com/wicaksana/kedai/middlewares"
	"github.com/wicaksana/kedai/models"
	"github.com/wicaksana/kedai/utils"
)

func Register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "all fields are required")
		return
	}
	if len(req.Password) < 6 {
		respondWithError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	exists, err := dbhelper.IsUserExists(req.Email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to check user existence")
		return
	}
	if exists {
		respondWithError(w, http.StatusBadRequest, "user already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	var userID uuid.UUID
	var accToken, refToken string
	txErr := database.Tx(func(tx *sql.Tx) error {
		userID, err = dbhelper.CreateUser(tx, req.Name, req.Email, req.Phone, hashedPassword)
		if err != nil {
			logrus.Printf("failed to create user, error: %v", err)
			return err
		}

		if err = dbhelper.AssignRole(tx, userID, models.RoleCustomer); err != nil {
			logrus.Printf("failed to assign role to the user, error: %v", err)
			return err
		}

		accToken, refToken, err = utils.GenerateTokens(userID, []string{string(models.RoleCustomer)})
		if err != nil {
			logrus.Printf("failed to generate token, error: %v", err)
			return err
		}

		return nil
	})
	if txErr != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	setRefreshCookie(w, refToken)
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id":      userID,
		"name":         req.Name,
		"email":        req.Email,
		"access_token": accToken,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	userID, name, err := dbhelper.GetUserByPassword(req.Email, req.Password)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	roles, err := dbhelper.GetUserRoles(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load roles")
		return
	}

	accToken, refToken, err := utils.GenerateTokens(userID, roles)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	setRefreshCookie(w, refToken)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":      userID,
		"name":         name,
		"access_token": accToken,
	})
}

func RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "refresh token missing")
		return
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return config.SecretKey, nil
	})
	if err != nil || !token.Valid {
		respondWithError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "invalid refresh token subject")
		return
	}

	roles, err := dbhelper.GetUserRoles(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load roles")
		return
	}

	accToken, refToken, err := utils.GenerateTokens(userID, roles)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	setRefreshCookie(w, refToken)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": accToken,
	})
}

// Logout clears the refresh cookie and drops the user's session cart.
func Logout(w http.ResponseWriter, r *http.Request) {
	if claims, err := middlewares.GetAuthenticatedUser(r); err == nil {
		Carts.Drop(claims.UserID.String())
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HttpOnly: true,
	})
}
