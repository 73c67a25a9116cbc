package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/talx-hub/points-ledger/internal/api/dto"
	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/utils/auth"
)

type AuthHandler struct {
	logger *slog.Logger
	secret []byte
}

// Login issues a session token for the given user id. An empty id opens
// a session for a fresh user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelDebug, "failed to decode login request",
			slog.Any(model.KeyLoggerError, err))
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if err := req.IsValid(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = uuid.NewString()
	}

	token, cookie, err := auth.Authenticate(req.UserID, h.secret)
	if err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelError, "failed to issue token",
			slog.Any(model.KeyLoggerError, err))
		http.Error(w, http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &cookie)
	writeJSON(r.Context(), h.logger, w, http.StatusOK,
		dto.LoginResponse{Token: token, UserID: req.UserID})
}
