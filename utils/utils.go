package utils

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 12

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsValidEmail принимает только голый адрес ("a@b.c"), без отображаемого имени.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// IsValidPhone принимает ровно десять цифр.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsHTTPURL сообщает, является ли s абсолютной http(s) ссылкой с хостом.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
