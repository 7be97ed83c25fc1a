package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/services"
)

var testCatalog = models.NewProblemCatalog([]string{"Healthcare", "Agriculture"})

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryRepo struct {
	mu      sync.Mutex
	records []*models.Registration
	err     error
}

func (r *memoryRepo) Append(_ context.Context, reg *models.Registration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	reg.ID = "reg-" + string(rune('a'+len(r.records)))
	reg.SubmittedAt = time.Date(2026, 3, 1, 10, len(r.records), 0, 0, time.UTC)
	stored := *reg
	r.records = append(r.records, &stored)
	return reg.ID, nil
}

func (r *memoryRepo) ListAll(context.Context) ([]*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*models.Registration, len(r.records))
	copy(out, r.records)
	return out, nil
}

type stubNotifier struct {
	receipt *models.DeliveryReceipt
	err     error
	got     []*models.Registration
}

func (n *stubNotifier) Notify(_ context.Context, reg *models.Registration) (*models.DeliveryReceipt, error) {
	n.got = append(n.got, reg)
	return n.receipt, n.err
}

func newRegistrationService(repo *memoryRepo, notifier services.Notifier) *services.RegistrationService {
	return services.NewRegistrationService(repo, notifier, nil, testCatalog, discardLogger())
}

func validInput() RegistrationInput {
	return RegistrationInput{
		Name:        "Asha",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		CollegeName: "City College",
		Department:  "CSE",
		TeamName:    "Byte Me",
		TeamSize:    2,
		TeamMembers: []models.TeamMember{
			{Name: "Asha", Email: "asha@example.com", Phone: "9876543210", Gender: models.GenderFemale},
			{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543211", Gender: models.GenderMale},
		},
		SelectedProblem:  "Healthcare",
		PaymentReference: "TXN123",
	}
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}
