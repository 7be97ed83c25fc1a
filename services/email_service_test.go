package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackfest/models"
)

func sampleRecord() *models.Registration {
	return &models.Registration{
		ID:       "reg-1",
		Name:     "Asha",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		TeamName: "Byte <Me>",
		TeamSize: 2,
		TeamMembers: []models.TeamMember{
			{Name: "Asha", Email: "asha@example.com", Phone: "9876543210", Gender: models.GenderFemale},
			{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543211", Gender: models.GenderMale},
		},
		SelectedProblem:  "Healthcare",
		PaymentReference: "TXN123",
	}
}

func newTestEmailService(t *testing.T, mailer Mailer, operator string) *EmailService {
	t.Helper()
	svc, err := NewEmailService(mailer, EmailConfig{
		From:          "team@hackfest.dev",
		FromName:      "Hackathon Team",
		OperatorEmail: operator,
		EventName:     "AI HACKFEST",
	}, discardLogger())
	require.NoError(t, err)
	return svc
}

func TestEmailService_RenderConfirmation(t *testing.T) {
	svc := newTestEmailService(t, &recordingMailer{}, operatorEmail)

	html, err := svc.RenderConfirmation(sampleRecord())
	require.NoError(t, err)

	for _, want := range []string{"Asha", "asha@example.com", "9876543210", "Healthcare", "TXN123", "2 Member(s)", "Ravi", "UPI Transaction ID", "AI HACKFEST"} {
		require.Contains(t, html, want)
	}
	require.Contains(t, html, "Byte &lt;Me&gt;", "team name is HTML-escaped")
	require.Less(t, strings.Index(html, "Asha</td>"), strings.Index(html, "Ravi</td>"), "members keep their order")
	require.Contains(t, html, "<td>1</td>")
	require.Contains(t, html, "<td>2</td>")
}

func TestEmailService_Notify_Subjects(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestEmailService(t, mailer, operatorEmail)

	receipt, err := svc.Notify(context.Background(), sampleRecord())
	require.NoError(t, err)
	require.Equal(t, "<id-asha@example.com>", receipt.MessageID)

	require.Len(t, mailer.attempts, 2)
	require.Equal(t, "Registration Confirmed - Team Byte <Me>", mailer.attempts[0].Subject)
	require.Equal(t, "New Registration - Team Byte <Me>", mailer.attempts[1].Subject)
	for _, m := range mailer.attempts {
		require.Equal(t, "team@hackfest.dev", m.From)
		require.Equal(t, "Hackathon Team", m.FromName)
	}
}

func TestEmailService_Notify_NoOperatorConfigured(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestEmailService(t, mailer, "")

	receipt, err := svc.Notify(context.Background(), sampleRecord())
	require.Nil(t, receipt)
	require.ErrorIs(t, err, ErrOperatorNotConfigured)
	require.Len(t, mailer.attempts, 1)

	var notifyErr *NotificationError
	require.ErrorAs(t, err, &notifyErr)
	require.Equal(t, []string{"asha@example.com"}, notifyErr.Delivered)
	require.Equal(t, "operator", notifyErr.Recipient)
}

func TestSubmit_MissingOperatorIsNotDelivered(t *testing.T) {
	mailer := &recordingMailer{}
	repo := &memoryRepo{}
	svc := NewRegistrationService(repo, newTestEmailService(t, mailer, ""), nil, testCatalog, discardLogger())

	res, err := svc.Submit(context.Background(), ashaDraft(t))
	require.NoError(t, err, "the stored registration still counts as success")
	require.Len(t, repo.records, 1)
	require.False(t, res.NotificationDelivered())
	require.ErrorIs(t, res.NotificationErr, ErrOperatorNotConfigured)
}

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage(Message{
		FromName: "Hackathon Team",
		From:     "team@hackfest.dev",
		To:       "asha@example.com",
		Subject:  "Registration Confirmed - Team Byte Me",
		HTML:     "<p>hi</p>",
	}, "<abc@hackfest.dev>", sampleRecord().SubmittedAt))

	require.Contains(t, raw, "From: \"Hackathon Team\" <team@hackfest.dev>\r\n")
	require.Contains(t, raw, "To: asha@example.com\r\n")
	require.Contains(t, raw, "Message-ID: <abc@hackfest.dev>\r\n")
	require.Contains(t, raw, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	require.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>hi</p>\r\n"))
}

func TestNewMessageID(t *testing.T) {
	id := newMessageID("team@hackfest.dev")
	require.True(t, strings.HasPrefix(id, "<"))
	require.True(t, strings.HasSuffix(id, "@hackfest.dev>"))
	require.NotEqual(t, id, newMessageID("team@hackfest.dev"))
}
