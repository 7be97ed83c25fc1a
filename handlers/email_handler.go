package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/services"
)

// EmailHandler открывает отправку подтверждений по HTTP для клиентов, которые
// сами хранят регистрации и используют сервис только для писем.
type EmailHandler struct {
	notifier services.Notifier
}

func NewEmailHandler(notifier services.Notifier) *EmailHandler {
	return &EmailHandler{notifier: notifier}
}

type sendEmailInput struct {
	FormData *models.Registration `json:"formData"`
}

func (h *EmailHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var input sendEmailInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, jsonResponse{"success": false, "error": err.Error()}, nil) //nolint:errcheck
		return
	}
	if input.FormData == nil {
		writeJSON(w, http.StatusBadRequest, jsonResponse{"success": false, "error": "Form data is required"}, nil) //nolint:errcheck
		return
	}

	receipt, err := h.notifier.Notify(r.Context(), input.FormData)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrMailDisabled) {
			status = http.StatusServiceUnavailable
		}
		slog.ErrorContext(r.Context(), "send-email failed",
			slog.String("team", input.FormData.TeamName),
			slog.Any("error", err),
		)
		writeJSON(w, status, jsonResponse{"success": false, "error": err.Error()}, nil) //nolint:errcheck
		return
	}

	response := jsonResponse{
		"success":   true,
		"message":   "Confirmation email sent successfully",
		"messageId": receipt.MessageID,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EmailHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{"status": "ok", "message": "Email server is running"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
