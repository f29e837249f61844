package server

import (
	"errors"
	"net/http"

	"Inshpho/core/identity"
	"Inshpho/logger"

	"github.com/gorilla/mux"
)

// ownsTarget enforces that the caller's token subject matches the path id
// when ownership enforcement is on. It writes the error response itself.
func (h *APIHandler) ownsTarget(w http.ResponseWriter, r *http.Request, targetID string) bool {
	if !h.cfg.EnforceOwnership {
		return true
	}
	callerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	if err := h.identity.Authorize(callerID, targetID); err != nil {
		logger.Warn("[Users] ownership mismatch",
			logger.String("caller", callerID),
			logger.String("target", targetID))
		writeError(w, http.StatusForbidden, "Forbidden")
		return false
	}
	return true
}

// SubmitFeedbackHandler handles POST /users/{id}/feedback.
func (h *APIHandler) SubmitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !h.ownsTarget(w, r, userID) {
		return
	}

	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.identity.SubmitFeedback(r.Context(), userID, req.Feedback); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logger.Error("[Feedback] failed", logger.String("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Msg: "Feedback submitted successfully"})
}

// UpdatePasswordHandler handles POST /users/{id}/update-password.
func (h *APIHandler) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if !h.ownsTarget(w, r, userID) {
		return
	}

	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.identity.UpdatePassword(r.Context(), userID, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "newPassword is required")
		case errors.Is(err, identity.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			logger.Error("[UpdatePassword] failed", logger.String("userId", userID), logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	logger.Info("[UpdatePassword] password changed", logger.String("userId", userID))
	writeJSON(w, http.StatusOK, messageResponse{Msg: "Password updated successfully"})
}
