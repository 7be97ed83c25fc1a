package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/services"
)

type submitResponse struct {
	Registration          models.Registration `json:"registration"`
	Message               string              `json:"message"`
	NotificationDelivered bool                `json:"notification_delivered"`
}

func TestRegistrationHandler_Submit(t *testing.T) {
	repo := &memoryRepo{}
	notifier := &stubNotifier{receipt: &models.DeliveryReceipt{MessageID: "<m1>", Recipients: []string{"asha@example.com"}}}
	h := NewRegistrationHandler(newRegistrationService(repo, notifier), false)

	req := httptest.NewRequest(http.MethodPost, "/api/registrations", jsonBody(t, validInput()))
	rec := serve(h.Submit, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp submitResponse
	decode(t, rec, &resp)
	require.Equal(t, confirmationMessage, resp.Message)
	require.True(t, resp.NotificationDelivered)
	require.Equal(t, "reg-a", resp.Registration.ID)
	require.Equal(t, 2, resp.Registration.TeamSize)
	require.Len(t, resp.Registration.TeamMembers, 2)

	require.Len(t, repo.records, 1)
	require.Len(t, notifier.got, 1)
}

func TestRegistrationHandler_Submit_NotificationFailureStillSucceeds(t *testing.T) {
	repo := &memoryRepo{}
	notifier := &stubNotifier{err: &services.NotificationError{Err: errors.New("smtp down")}}
	h := NewRegistrationHandler(newRegistrationService(repo, notifier), false)

	rec := serve(h.Submit, httptest.NewRequest(http.MethodPost, "/api/registrations", jsonBody(t, validInput())))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp submitResponse
	decode(t, rec, &resp)
	require.Equal(t, confirmationMessage, resp.Message)
	require.False(t, resp.NotificationDelivered)
	require.Len(t, repo.records, 1)
}

func TestRegistrationHandler_Submit_StoreUnavailable(t *testing.T) {
	repo := &memoryRepo{err: errors.New("connection refused")}
	notifier := &stubNotifier{}
	h := NewRegistrationHandler(newRegistrationService(repo, notifier), false)

	rec := serve(h.Submit, httptest.NewRequest(http.MethodPost, "/api/registrations", jsonBody(t, validInput())))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "please try again")
	require.Empty(t, notifier.got, "no email without a stored registration")
}

func TestRegistrationHandler_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *RegistrationInput)
		field  string
	}{
		{"bad email", func(in *RegistrationInput) { in.Email = "asha" }, "email"},
		{"short phone", func(in *RegistrationInput) { in.Phone = "12345" }, "phone"},
		{"team too large", func(in *RegistrationInput) { in.TeamSize = 6 }, "teamSize"},
		{"team size zero", func(in *RegistrationInput) { in.TeamSize = 0 }, "teamSize"},
		{"member count mismatch", func(in *RegistrationInput) { in.TeamSize = 3 }, "teamMembers"},
		{"unknown problem", func(in *RegistrationInput) { in.SelectedProblem = "Space" }, "selectedProblem"},
		{"missing payment", func(in *RegistrationInput) { in.PaymentReference = " " }, "paymentReference"},
		{"bad member gender", func(in *RegistrationInput) { in.TeamMembers[1].Gender = "x" }, "teamMembers[1].gender"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepo{}
			h := NewRegistrationHandler(newRegistrationService(repo, &stubNotifier{}), false)
			in := validInput()
			tt.mutate(&in)

			rec := serve(h.Submit, httptest.NewRequest(http.MethodPost, "/api/registrations", jsonBody(t, in)))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			var resp struct {
				Error map[string]string `json:"error"`
			}
			decode(t, rec, &resp)
			require.Contains(t, resp.Error, tt.field)
			require.Empty(t, repo.records)
		})
	}
}

func TestRegistrationHandler_Submit_PaymentLinkMode(t *testing.T) {
	repo := &memoryRepo{}
	h := NewRegistrationHandler(newRegistrationService(repo, &stubNotifier{}), true)

	rec := serve(h.Submit, httptest.NewRequest(http.MethodPost, "/api/registrations", jsonBody(t, validInput())))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	in := validInput()
	in.PaymentReference = "https://forms.example.com/r/42"
	rec = serve(h.Submit, httptest.NewRequest(http.MethodPost, "/api/registrations", jsonBody(t, in)))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegistrationHandler_Submit_BadJSON(t *testing.T) {
	h := NewRegistrationHandler(newRegistrationService(&memoryRepo{}, &stubNotifier{}), false)

	rec := serve(h.Submit, httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(`{"name":`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h.Submit, httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(`{"upi":"x"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "unknown key")
}

func TestRegistrationHandler_Problems(t *testing.T) {
	h := NewRegistrationHandler(newRegistrationService(&memoryRepo{}, &stubNotifier{}), true)

	rec := serve(h.Problems, httptest.NewRequest(http.MethodGet, "/api/problems", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Problems    []string `json:"problems"`
		PaymentMode string   `json:"payment_mode"`
		MaxTeamSize int      `json:"max_team_size"`
	}
	decode(t, rec, &resp)
	require.Equal(t, []string{"Healthcare", "Agriculture"}, resp.Problems)
	require.Equal(t, "link", resp.PaymentMode)
	require.Equal(t, 5, resp.MaxTeamSize)
}
