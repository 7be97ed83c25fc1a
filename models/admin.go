package models

import "time"

// AdminSession описывает проверенный токен администратора.
type AdminSession struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AdminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
