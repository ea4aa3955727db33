package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers"
)

type contextKey string

// MemberIDKey ключ контекста с ID аутентифицированного члена клуба
const MemberIDKey contextKey = "memberID"

// HeaderMemberID заголовок аутентификации, проставляется API-гейтвеем
const HeaderMemberID = "X-Member-ID"

// Auth проверяет наличие и формат заголовка X-Member-ID и кладет ID в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderMemberID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Member-ID")
			return
		}

		memberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || memberID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-Member-ID")
			return
		}

		ctx := context.WithValue(r.Context(), MemberIDKey, memberID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MemberIDFromContext извлекает ID члена клуба, положенный Auth middleware
func MemberIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(MemberIDKey).(int64)
	return id, ok
}
