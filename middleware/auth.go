package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const adminContextKey contextKey = "admin"

// RoleAdmin - единственная роль, которую выдает панель администратора.
const RoleAdmin = "admin"

var (
	ErrMissingToken = errors.New("authentication token is missing")
	ErrInvalidToken = errors.New("authentication token is invalid or expired")
)

// NewAdminToken подписывает HS256 токен для администратора с указанным email.
func NewAdminToken(secret []byte, email string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := jwt.MapClaims{
		jwtClaimEmail: email,
		jwtClaimRole:  RoleAdmin,
		"exp":         expiresAt.Unix(),
		"iat":         now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Authenticate требует валидный токен администратора в заголовке Authorization.
// WebSocket клиенты, которые не могут выставить заголовок, передают его в ?token=.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				unauthorized(w, ErrMissingToken)
				return
			}

			claims, err := parseToken(secret, raw)
			if err != nil {
				unauthorized(w, ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize допускает только перечисленные роли.
func Authorize(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(adminContextKey).(jwt.MapClaims)
			if !ok {
				unauthorized(w, ErrMissingToken)
				return
			}
			role, _ := claims[jwtClaimRole].(string)
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "you do not have permission to access this resource")
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

func parseToken(secret []byte, raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, ok := claims["exp"]; !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, err.Error())
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
