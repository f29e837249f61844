package server

import (
	"errors"
	"net/http"

	"Inshpho/core/identity"
	"Inshpho/logger"

	"github.com/gorilla/mux"
)

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler handles POST /api/auth/register.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req identity.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.identity.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "firstName, lastName, email and password are required")
		case errors.Is(err, identity.ErrUserExists):
			logger.Warn("[Register] email already registered", logger.String("email", req.Email))
			writeError(w, http.StatusBadRequest, "User already exists")
		default:
			logger.Error("[Register] failed", logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, "Server error in registration")
		}
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// LoginHandler handles POST /api/auth/login.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			logger.Warn("[Login] invalid credentials", logger.String("email", req.Email))
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		logger.Error("[Login] failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Server error in login")
		return
	}

	logger.Info("[Login] success", logger.String("username", res.Username))
	writeJSON(w, http.StatusOK, res)
}

// GetUserHandler handles GET /api/auth/user for the token's subject.
func (h *APIHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	h.writeProfile(w, r, userID)
}

// GetUserByIDHandler handles GET /api/auth/users/{userId} and GET /users/{id}.
func (h *APIHandler) GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	if userID == "" {
		userID = vars["id"]
	}
	h.writeProfile(w, r, userID)
}

func (h *APIHandler) writeProfile(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.identity.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logger.Error("[Profile] failed", logger.String("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Server error fetching profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
