package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/hackfest/models"
)

// Имена JWT claims
const (
	jwtClaimEmail = "email"
	jwtClaimRole  = "role"
)

// GetAdminFromContext возвращает сессию, которую положил в контекст Authenticate.
func GetAdminFromContext(ctx context.Context) (models.AdminSession, error) {
	claims, ok := ctx.Value(adminContextKey).(jwt.MapClaims)
	if !ok {
		return models.AdminSession{}, errors.New("admin claims not found in context or invalid type")
	}

	email, ok := claims[jwtClaimEmail].(string)
	if !ok || email == "" {
		return models.AdminSession{}, fmt.Errorf("missing '%s' claim in token", jwtClaimEmail)
	}

	session := models.AdminSession{Email: email}
	// jwt.MapClaims хранит числа как float64
	if exp, ok := claims["exp"].(float64); ok {
		session.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return session, nil
}
