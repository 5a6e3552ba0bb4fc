// Package middleware HTTP-middleware сервиса
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

type contextKey string

const businessIDKey contextKey = "businessID"

// HeaderBusinessID заголовок аутентификации владельца бизнеса.
// Проверка подлинности выполняется на API-гейтвее, сюда приходит
// уже проверенный идентификатор
const HeaderBusinessID = "X-Business-ID"

// Auth требует валидный заголовок X-Business-ID и кладет ID бизнеса в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderBusinessID)
		if raw == "" {
			respondUnauthorized(w, "missing "+HeaderBusinessID+" header")
			return
		}

		businessID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || businessID <= 0 {
			respondUnauthorized(w, "invalid "+HeaderBusinessID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), businessIDKey, businessID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BusinessIDFromContext извлекает ID бизнеса, положенный Auth middleware
func BusinessIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(businessIDKey).(int64)
	return id, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
