package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// PaymentMode определяет, что участник указывает в поле оплаты.
type PaymentMode string

const (
	PaymentModeUPI  PaymentMode = "upi"  // свободный идентификатор транзакции
	PaymentModeLink PaymentMode = "link" // ссылка на внешнюю форму с подтверждением
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	AllowedOrigins []string

	AdminEmail        string
	AdminPasswordHash string

	// Почтовый транспорт
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPass           string
	SMTPFrom           string
	SMTPFromName       string
	OperatorEmail      string
	MailAPIURL         string
	MailTimeoutSeconds int

	EventName         string
	PaymentMode       PaymentMode
	ProblemStatements []string

	// Необязательные интеграции, пустые значения их отключают
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	GoogleServiceAccountJSON string
	SheetsSpreadsheetID      string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.Getenv)
}

// FromLookup собирает Config из произвольного источника переменных.
func FromLookup(getenv func(string) string) (*Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := &Config{
		DatabaseURL:       get("DATABASE_URL"),
		JWTSecretKey:      get("JWT_SECRET_KEY"),
		AdminEmail:        get("ADMIN_EMAIL"),
		AdminPasswordHash: get("ADMIN_PASSWORD_HASH"),

		SMTPHost:      get("SMTP_HOST"),
		SMTPUser:      get("SMTP_USER"),
		SMTPPass:      get("SMTP_PASS"),
		SMTPFrom:      get("SMTP_FROM"),
		SMTPFromName:  get("SMTP_FROM_NAME"),
		OperatorEmail: get("OPERATOR_EMAIL"),
		MailAPIURL:    strings.TrimRight(get("MAIL_API_URL"), "/"),

		EventName:   get("EVENT_NAME"),
		PaymentMode: PaymentMode(strings.ToLower(get("PAYMENT_MODE"))),

		R2AccountID:       get("R2_ACCOUNT_ID"),
		R2AccessKeyID:     get("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: get("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      get("R2_BUCKET_NAME"),
		R2PublicBaseURL:   get("R2_PUBLIC_BASE_URL"),

		GoogleServiceAccountJSON: get("GOOGLE_SERVICE_ACCOUNT_JSON"),
		SheetsSpreadsheetID:      get("GOOGLE_SHEETS_SPREADSHEET_ID"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intOrDefault(get("SERVER_PORT"), 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	cfg.SMTPPort, err = intOrDefault(get("SMTP_PORT"), 587)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT environment variable: %w", err)
	}
	cfg.MailTimeoutSeconds, err = intOrDefault(get("MAIL_TIMEOUT_SECONDS"), 15)
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_TIMEOUT_SECONDS environment variable: %w", err)
	}

	if cfg.SMTPHost != "" && cfg.OperatorEmail == "" {
		return nil, fmt.Errorf("OPERATOR_EMAIL environment variable is required when SMTP_HOST is set")
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}
	if cfg.SMTPFromName == "" {
		cfg.SMTPFromName = "Hackathon Team"
	}
	if cfg.EventName == "" {
		cfg.EventName = "AI HACKFEST"
	}

	switch cfg.PaymentMode {
	case "":
		cfg.PaymentMode = PaymentModeUPI
	case PaymentModeUPI, PaymentModeLink:
	default:
		return nil, fmt.Errorf("PAYMENT_MODE must be %q or %q, got %q", PaymentModeUPI, PaymentModeLink, cfg.PaymentMode)
	}

	cfg.AllowedOrigins = splitList(get("ALLOWED_ORIGINS"), ",")
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}
	cfg.ProblemStatements = splitList(get("PROBLEM_STATEMENTS"), ";")

	return cfg, nil
}

// MailEnabled сообщает, настроен ли исходящий почтовый транспорт.
func (c *Config) MailEnabled() bool {
	return c.MailAPIURL != "" || c.SMTPHost != ""
}

// R2Enabled сообщает, настроено ли архивирование выгрузок в объектное хранилище.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2BucketName != ""
}

// SheetsEnabled сообщает, настроена ли синхронизация с Google Sheets.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleServiceAccountJSON != "" && c.SheetsSpreadsheetID != ""
}

func intOrDefault(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func splitList(raw, sep string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
