package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/Dosada05/hackfest/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Notifier отправляет подтверждения регистрации.
type Notifier interface {
	Notify(ctx context.Context, reg *models.Registration) (*models.DeliveryReceipt, error)
}

type EmailConfig struct {
	From          string
	FromName      string
	OperatorEmail string
	EventName     string
	PaymentLabel  string
}

// EmailService формирует письмо-подтверждение и отправляет его лидеру команды,
// а затем на адрес оператора.
type EmailService struct {
	mailer Mailer
	cfg    EmailConfig
	tmpl   *template.Template
	logger *slog.Logger
}

func NewEmailService(mailer Mailer, cfg EmailConfig, logger *slog.Logger) (*EmailService, error) {
	tmpl, err := template.New("").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templatesFS, "templates/registration_confirmed.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга шаблона письма: %w", err)
	}
	if cfg.PaymentLabel == "" {
		cfg.PaymentLabel = "UPI Transaction ID"
	}
	return &EmailService{
		mailer: mailer,
		cfg:    cfg,
		tmpl:   tmpl.Lookup("registration_confirmed.html"),
		logger: logger,
	}, nil
}

// RenderConfirmation возвращает HTML тело письма, общее для обоих получателей.
func (s *EmailService) RenderConfirmation(reg *models.Registration) (string, error) {
	data := struct {
		EventName    string
		PaymentLabel string
		Registration *models.Registration
	}{
		EventName:    s.cfg.EventName,
		PaymentLabel: s.cfg.PaymentLabel,
		Registration: reg,
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("ошибка выполнения шаблона письма: %w", err)
	}
	return body.String(), nil
}

// Notify сначала отправляет письмо участнику, копия оператору уходит только после
// успешной первой отправки. Без адреса оператора доставка считается неудачной.
func (s *EmailService) Notify(ctx context.Context, reg *models.Registration) (*models.DeliveryReceipt, error) {
	html, err := s.RenderConfirmation(reg)
	if err != nil {
		return nil, &NotificationError{Err: err}
	}

	leader := Message{
		FromName: s.cfg.FromName,
		From:     s.cfg.From,
		To:       reg.Email,
		Subject:  fmt.Sprintf("Registration Confirmed - Team %s", reg.TeamName),
		HTML:     html,
	}
	messageID, err := s.mailer.Send(ctx, leader)
	if err != nil {
		return nil, &NotificationError{Recipient: reg.Email, Err: err}
	}

	receipt := &models.DeliveryReceipt{MessageID: messageID, Recipients: []string{reg.Email}}
	if s.cfg.OperatorEmail == "" {
		return nil, &NotificationError{Delivered: receipt.Recipients, Recipient: "operator", Err: ErrOperatorNotConfigured}
	}

	operator := leader
	operator.To = s.cfg.OperatorEmail
	operator.Subject = fmt.Sprintf("New Registration - Team %s", reg.TeamName)
	if _, err := s.mailer.Send(ctx, operator); err != nil {
		return nil, &NotificationError{Delivered: receipt.Recipients, Recipient: s.cfg.OperatorEmail, Err: err}
	}
	receipt.Recipients = append(receipt.Recipients, s.cfg.OperatorEmail)

	s.logger.Info("confirmation emails sent",
		slog.String("team", reg.TeamName),
		slog.String("message_id", messageID),
		slog.Any("recipients", receipt.Recipients),
	)
	return receipt, nil
}

// disabledNotifier используется, когда почтовый транспорт не настроен.
type disabledNotifier struct{}

func NewDisabledNotifier() Notifier { return disabledNotifier{} }

func (disabledNotifier) Notify(context.Context, *models.Registration) (*models.DeliveryReceipt, error) {
	return nil, &NotificationError{Err: ErrMailDisabled}
}
