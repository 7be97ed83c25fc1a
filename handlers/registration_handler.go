package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/services"
)

const confirmationMessage = "A confirmation email has been sent to your registered email."

// RegistrationInput - тело запроса POST /api/registrations.
type RegistrationInput struct {
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	CollegeName      string              `json:"collegeName"`
	Department       string              `json:"department"`
	TeamName         string              `json:"teamName"`
	TeamSize         int                 `json:"teamSize"`
	TeamMembers      []models.TeamMember `json:"teamMembers"`
	SelectedProblem  string              `json:"selectedProblem"`
	PaymentReference string              `json:"paymentReference"`
}

type RegistrationHandler struct {
	registrationService *services.RegistrationService
	paymentLink         bool
}

func NewRegistrationHandler(s *services.RegistrationService, paymentLink bool) *RegistrationHandler {
	return &RegistrationHandler{registrationService: s, paymentLink: paymentLink}
}

// Problems возвращает доступные для выбора задачи.
func (h *RegistrationHandler) Problems(w http.ResponseWriter, r *http.Request) {
	mode := "upi"
	if h.paymentLink {
		mode = "link"
	}
	response := jsonResponse{
		"problems":      h.registrationService.Catalog(),
		"payment_mode":  mode,
		"min_team_size": models.MinTeamSize,
		"max_team_size": models.MaxTeamSize,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input RegistrationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draft, errs := h.buildDraft(input)
	for k, v := range draft.Validate(h.registrationService.Catalog(), h.paymentLink) {
		if _, ok := errs[k]; !ok {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		failedValidationResponse(w, r, errs)
		return
	}

	result, err := h.registrationService.Submit(r.Context(), draft)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// Письмо не влияет на ответ: регистрация уже сохранена
	response := jsonResponse{
		"registration":           result.Registration,
		"message":                confirmationMessage,
		"notification_delivered": result.NotificationDelivered(),
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// buildDraft переносит поля формы в новый черновик. Отклоненные правки
// возвращаются по полям.
func (h *RegistrationHandler) buildDraft(input RegistrationInput) (*models.Draft, map[string]string) {
	errs := make(map[string]string)
	d := models.NewDraft()

	scalars := []struct{ name, value string }{
		{"name", input.Name},
		{"email", input.Email},
		{"phone", input.Phone},
		{"collegeName", input.CollegeName},
		{"department", input.Department},
		{"teamName", input.TeamName},
		{"paymentReference", input.PaymentReference},
	}
	for _, f := range scalars {
		_ = d.UpdateField(f.name, f.value)
	}

	if err := d.ResizeTeam(input.TeamSize); err != nil {
		errs["teamSize"] = err.Error()
	} else if len(input.TeamMembers) != input.TeamSize {
		errs["teamMembers"] = models.ErrTeamSizeMismatch.Error()
	}
	for i, m := range input.TeamMembers {
		if err := d.SetMember(i, m); err != nil {
			break
		}
	}

	if err := d.SelectProblem(input.SelectedProblem, h.registrationService.Catalog()); err != nil {
		if errors.Is(err, models.ErrUnknownProblem) {
			errs["selectedProblem"] = "must be one of the listed problem statements"
		}
	}
	return d, errs
}
