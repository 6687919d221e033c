package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"answerly/common"
	"answerly/model"
	"answerly/service"
)

// AuthHandler exposes the session lifecycle endpoints.
type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates an account. No tokens are issued; the caller must log in afterwards.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user body model.RegisterRequest true "Registration payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  common.AppError "User already exists"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if err := h.service.Register(req); err != nil {
		if err == service.ErrUserExists {
			return common.NewAppError(http.StatusBadRequest, "User already exists", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not register user", err)
	}

	writeJSON(w, http.StatusCreated, map[string]string{"msg": "Registered successfully"})
	return nil
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Login payload"
// @Success      200  {object}  service.TokenPair
// @Failure      400  {object}  common.AppError
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	pair, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrUserNotFound, service.ErrInvalidCredentials:
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not log in", err)
		}
	}

	writeJSON(w, http.StatusOK, pair)
	return nil
}

// Refresh godoc
// @Summary      Mint a new access token from a refresh token
// @Description  The refresh token is presented as the bearer credential. Failure to verify responds with a bare 403.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  common.AppError "No refresh token provided"
// @Failure      403  "Refresh token invalid or expired"
// @Router       /api/auth/refresh [get]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return common.NewAppError(http.StatusUnauthorized, "No refresh token provided", nil)
	}

	accessToken, err := h.service.RefreshAccessToken(parts[1])
	if err != nil {
		// Bare status, no JSON body. Documented contract for this path.
		w.WriteHeader(http.StatusForbidden)
		return nil
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
	return nil
}

// Me godoc
// @Summary      Return the authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Failure      404  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	user, err := h.service.CurrentUser(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Server error", err)
	}

	writeJSON(w, http.StatusOK, user)
	return nil
}

// Logout is a stateless acknowledgment. Tokens are bearer credentials with no
// server-side record; the client discards its local copies.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "Logged out"})
	return nil
}

// UpdateUsername changes the caller's display name.
func (h *AuthHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	var req model.UpdateUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}
	if req.Username == "" {
		return common.NewAppError(http.StatusBadRequest, "Username is required", nil)
	}

	user, err := h.service.UpdateUsername(userID, req.Username)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Server error", err)
	}

	writeJSON(w, http.StatusOK, map[string]*model.User{"user": user})
	return nil
}
