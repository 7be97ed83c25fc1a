package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/hackfest/middleware"
	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/services"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
	now         func() time.Time
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
		now:         time.Now,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.AdminCredentials

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	email, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, expiresAt, err := middleware.NewAdminToken(h.jwtSecret, email, tokenTTL, h.now())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"token":      token,
		"expires_at": expiresAt.UTC(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Session возвращает администратора текущего токена.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetAdminFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"admin": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
