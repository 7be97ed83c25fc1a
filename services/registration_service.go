package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/repositories"
)

// RegistrationPublisher получает регистрации сразу после сохранения.
type RegistrationPublisher interface {
	PublishRegistration(reg *models.Registration)
}

// SubmitResult - результат успешной отправки. NotificationErr носит
// только информационный характер.
type SubmitResult struct {
	Registration    *models.Registration
	Receipt         *models.DeliveryReceipt
	NotificationErr error
}

// NotificationDelivered сообщает, ушли ли оба письма-подтверждения.
func (r *SubmitResult) NotificationDelivered() bool {
	return r.NotificationErr == nil && r.Receipt != nil
}

type RegistrationService struct {
	repo      repositories.RegistrationRepository
	notifier  Notifier
	publisher RegistrationPublisher
	catalog   models.ProblemCatalog
	logger    *slog.Logger
}

func NewRegistrationService(
	repo repositories.RegistrationRepository,
	notifier Notifier,
	publisher RegistrationPublisher,
	catalog models.ProblemCatalog,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		catalog:   catalog,
		logger:    logger,
	}
}

// Catalog возвращает настроенный список задач.
func (s *RegistrationService) Catalog() models.ProblemCatalog {
	return s.catalog
}

// Submit сохраняет черновик и затем пытается отправить подтверждения.
// Успех определяется только записью в хранилище. При PersistenceError
// черновик остается без изменений.
func (s *RegistrationService) Submit(ctx context.Context, draft *models.Draft) (*SubmitResult, error) {
	if !draft.BeginSubmit() {
		return nil, ErrSubmissionInFlight
	}
	defer draft.EndSubmit()

	record, err := draft.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if !s.catalog.Contains(record.SelectedProblem) {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, models.ErrUnknownProblem)
	}

	// Начатую запись отменить нельзя
	if _, err := s.repo.Append(context.WithoutCancel(ctx), &record); err != nil {
		s.logger.Error("registration write failed",
			slog.String("team", record.TeamName),
			slog.Any("error", err),
		)
		return nil, &PersistenceError{Err: err}
	}

	s.logger.Info("registration stored",
		slog.String("id", record.ID),
		slog.String("team", record.TeamName),
		slog.Time("submitted_at", record.SubmittedAt),
	)

	result := &SubmitResult{Registration: &record}
	result.Receipt, result.NotificationErr = s.notifyBestEffort(ctx, &record)

	if s.publisher != nil {
		s.publisher.PublishRegistration(&record)
	}
	return result, nil
}

// notifyBestEffort доставляет подтверждения для уже сохраненной регистрации.
// Возвращаемая ошибка только логируется, Submit никогда не превращает ее в отказ.
func (s *RegistrationService) notifyBestEffort(ctx context.Context, reg *models.Registration) (*models.DeliveryReceipt, error) {
	receipt, err := s.notifier.Notify(ctx, reg)
	if err == nil {
		return receipt, nil
	}

	var notifErr *NotificationError
	if !errors.As(err, &notifErr) {
		notifErr = &NotificationError{Err: err}
	}
	s.logger.Warn("confirmation email failed, registration kept",
		slog.String("id", reg.ID),
		slog.String("team", reg.TeamName),
		slog.Any("error", notifErr),
	)
	return nil, notifErr
}
