package services

import (
	"errors"
	"fmt"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrSubmissionInFlight = errors.New("a submission for this registration is already in progress")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAdminNotConfigured     = errors.New("admin account is not configured")

	ErrMailDisabled          = errors.New("mail transport is not configured")
	ErrOperatorNotConfigured = errors.New("operator email address is not configured")
	ErrExportNotEnabled      = errors.New("export target is not configured")
	ErrUnknownExport         = errors.New("unknown export format or view")
)

// PersistenceError означает, что запись в хранилище не состоялась. Черновик
// не изменен, отправку можно повторить.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("registration could not be saved: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError означает, что доставка подтверждения не удалась после
// сохранения регистрации.
type NotificationError struct {
	// Delivered - получатели, которым письмо ушло до сбоя.
	Delivered []string
	// Recipient - адрес, на который доставка не удалась, если он известен.
	Recipient string
	Err       error
}

func (e *NotificationError) Error() string {
	var b strings.Builder
	b.WriteString("confirmation email not delivered")
	if e.Recipient != "" {
		b.WriteString(" to ")
		b.WriteString(e.Recipient)
	}
	if len(e.Delivered) > 0 {
		b.WriteString(" (delivered to ")
		b.WriteString(strings.Join(e.Delivered, ", "))
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *NotificationError) Unwrap() error { return e.Err }
