package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/talx-hub/points-ledger/internal/model"
	"github.com/talx-hub/points-ledger/internal/serviceerrs"
	"github.com/talx-hub/points-ledger/internal/utils/auth"
)

// Authentication puts the user id of a valid session token into the
// request context. The token comes from the bearer header or the cookie.
func Authentication(secret []byte, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		authFunc := func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := auth.TokenFromRequest(r)
			if !ok {
				log.LogAttrs(r.Context(),
					slog.LevelDebug,
					"failed to find token in request",
				)
				http.Error(w, "authentication failed", http.StatusUnauthorized)
				return
			}

			claims, err := auth.CheckToken(tokenStr, secret)
			if err != nil {
				level := slog.LevelError
				if errors.Is(err, serviceerrs.ErrTokenExpired) {
					level = slog.LevelDebug
				}
				log.LogAttrs(r.Context(),
					level,
					"authentication failed",
					slog.Any(model.KeyLoggerError, err),
				)
				http.Error(w, "authentication failed", http.StatusUnauthorized)
				return
			}

			idCtx := context.WithValue(
				r.Context(), model.KeyContextUserID, claims.UserID)
			next.ServeHTTP(w, r.WithContext(idCtx))
		}
		return http.HandlerFunc(authFunc)
	}
}
