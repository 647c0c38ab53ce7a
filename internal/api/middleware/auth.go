package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/api/handlers"
	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/pkg/authtoken"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
	nameKey   contextKey = "name"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
)

// Auth проверяет JWT из заголовка Authorization и кладет клеймы в контекст
func Auth(tokens *authtoken.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == header {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, domain.Role(claims.Role))
			ctx = context.WithValue(ctx, nameKey, claims.Name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только запросы с одной из указанных ролей
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok || !allowed[role] {
				handlers.RespondForbidden(w, "недостаточно прав")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetRole возвращает роль пользователя из контекста запроса
func GetRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(roleKey).(domain.Role)
	return role, ok
}

// GetUserName возвращает имя пользователя из контекста запроса
func GetUserName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(nameKey).(string)
	return name, ok
}
