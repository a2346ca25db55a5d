package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/languro/drill-api/internal/api/shared"
	"github.com/languro/drill-api/internal/platform/logger"
)

// UserIDHeader carries the authenticated learner's ID, set by the upstream
// gateway after it has verified the session.
const UserIDHeader = "X-User-ID"

// IdentityMiddleware extracts the learner's user ID from the gateway header
// and attaches it to the request context. Requests without a valid ID are
// rejected with 401 before reaching any handler.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			log.Debug("missing user ID header",
				slog.String("path", r.URL.Path))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "User identity required")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			log.Warn("invalid user ID header",
				slog.String("path", r.URL.Path))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid user identity")
			return
		}

		ctx := shared.WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
