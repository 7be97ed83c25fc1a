package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message - одно исходящее HTML письмо.
type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	HTML     string
}

// Mailer доставляет одно письмо и возвращает его Message-ID.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Timeout  time.Duration
}

type smtpMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) (string, error) {
	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprint(m.cfg.Port))
	dialer := &net.Dialer{Timeout: m.cfg.Timeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("ошибка соединения SMTP: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(m.cfg.Timeout))
	}

	tlsconfig := &tls.Config{ServerName: m.cfg.Host}

	var client *smtp.Client
	if m.cfg.Port == 465 {
		// Прямое TLS-соединение (обычно порт 465)
		client, err = smtp.NewClient(tls.Client(conn, tlsconfig), m.cfg.Host)
		if err != nil {
			conn.Close()
			return "", fmt.Errorf("ошибка создания SMTP клиента: %w", err)
		}
	} else {
		// STARTTLS (обычно порт 587)
		client, err = smtp.NewClient(conn, m.cfg.Host)
		if err != nil {
			conn.Close()
			return "", fmt.Errorf("ошибка создания SMTP клиента: %w", err)
		}
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err = client.StartTLS(tlsconfig); err != nil {
				client.Close()
				return "", fmt.Errorf("ошибка команды STARTTLS: %w", err)
			}
		}
	}
	defer client.Close()

	if m.cfg.User != "" {
		auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return "", fmt.Errorf("ошибка аутентификации SMTP: %w", err)
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return "", fmt.Errorf("ошибка MAIL FROM: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return "", fmt.Errorf("ошибка RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return "", fmt.Errorf("ошибка команды DATA: %w", err)
	}

	messageID := newMessageID(msg.From)
	if _, err = w.Write(buildMessage(msg, messageID, time.Now())); err != nil {
		return "", fmt.Errorf("ошибка записи сообщения: %w", err)
	}
	if err = w.Close(); err != nil {
		return "", fmt.Errorf("ошибка закрытия DATA: %w", err)
	}

	return messageID, client.Quit()
}

func newMessageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

func buildMessage(msg Message, messageID string, date time.Time) []byte {
	from := (&mail.Address{Name: msg.FromName, Address: msg.From}).String()

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("Date: " + date.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("Message-ID: " + messageID + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")
	return []byte(b.String())
}
