package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mi-wada/todo-api/internal/apperror"
	"github.com/mi-wada/todo-api/internal/model"
	"github.com/mi-wada/todo-api/internal/repository"
)

// contextKey is an unexported type for context keys in this package.
// Only this package can create a contextKey, so no other package can read or
// shadow the principal stored in the request context.
type contextKey string

const principalKey contextKey = "principal"

// RequireAuth returns a middleware enforcing authentication on protected
// routes. It runs a fixed sequence once per request, short-circuiting on the
// first failure:
//
//  1. extract the Authorization header
//  2. parse the "Bearer <token>" form
//  3. decode and verify the token
//  4. resolve the subject to a stored user
//  5. attach the user to the request context and forward
//
// Every failure in steps 1–3 except expiry is the same 401
// AuthenticationFailed; an unknown subject in step 4 is too, so a 401 never
// confirms that an ID exists. A store failure in step 4 is the one distinct
// outcome: a generic 500, because the credentials were never judged. The
// precise cause is logged, never returned.
//
// Downstream handlers read the principal via UserFromContext and never
// re-validate the token.
func RequireAuth(tokens *TokenService, users repository.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				logger.Debug("auth: missing or malformed Authorization header")
				reject(w, http.StatusUnauthorized, apperror.AuthenticationFailed())
				return
			}

			userID, err := tokens.Decode(tokenStr)
			if err != nil {
				logger.Debug("auth: token rejected", slog.String("error", err.Error()))
				if errors.Is(err, ErrTokenExpired) {
					reject(w, http.StatusUnauthorized, apperror.TokenExpired())
				} else {
					reject(w, http.StatusUnauthorized, apperror.AuthenticationFailed())
				}
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, apperror.ErrNotFound) {
					// Indistinguishable from a bad token on the wire.
					logger.Debug("auth: token subject not found", slog.String("userID", userID.String()))
					reject(w, http.StatusUnauthorized, apperror.AuthenticationFailed())
					return
				}
				logger.Error("auth: resolving principal", slog.String("error", err.Error()))
				rejectInternal(w)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated principal attached by
// RequireAuth. The second return is false on routes outside the middleware.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(principalKey).(model.User)
	return user, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Missing header and malformed value are not distinguished — both
// end in the same rejection.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// errorBody mirrors handler.ErrorResponse. Duplicated here rather than
// imported so the dependency arrow keeps pointing handler → auth.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func reject(w http.ResponseWriter, status int, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Code: appErr.Code, Message: appErr.Message}); err != nil {
		slog.Error("auth: encoding error response", slog.String("error", err.Error()))
	}
}

func rejectInternal(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if err := json.NewEncoder(w).Encode(errorBody{Code: "InternalServerError", Message: "Internal server error"}); err != nil {
		slog.Error("auth: encoding error response", slog.String("error", err.Error()))
	}
}
