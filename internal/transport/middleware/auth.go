package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

type TokenValidator interface {
	OwnerIDFromToken(token string) (int64, error)
}

// Authenticate requires a Bearer token and puts its owner into the request context.
func Authenticate(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				writeUnauthorized(w, errors.ErrInvalidToken)
				return
			}

			ownerID, err := validator.OwnerIDFromToken(token)
			if err != nil {
				appErr, ok := errors.IsAppError(err)
				if !ok {
					appErr = errors.ErrInvalidToken
				}
				writeUnauthorized(w, appErr)
				return
			}

			ctx := errors.ContextWithOwnerID(r.Context(), ownerID)
			ctx = logger.With(ctx, "user_id", ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(errors.Response{Error: appErr})
}
