package services

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/utils"
)

type AuthService interface {
	Login(ctx context.Context, input models.AdminCredentials) (string, error)
}

// authService проверяет учетные данные единственного настроенного администратора.
type authService struct {
	adminEmail   string
	passwordHash string
}

func NewAuthService(adminEmail, passwordHash string) AuthService {
	return &authService{
		adminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: passwordHash,
	}
}

// Login при успехе возвращает нормализованный email администратора.
func (s *authService) Login(_ context.Context, input models.AdminCredentials) (string, error) {
	if s.adminEmail == "" || s.passwordHash == "" {
		return "", ErrAdminNotConfigured
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	passOK := utils.CheckPasswordHash(input.Password, s.passwordHash)
	if !emailOK || !passOK {
		return "", ErrAuthInvalidCredentials
	}
	return s.adminEmail, nil
}
