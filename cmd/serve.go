package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/hackfest/config"
	"github.com/Dosada05/hackfest/db"
	"github.com/Dosada05/hackfest/exports"
	"github.com/Dosada05/hackfest/handlers"
	"github.com/Dosada05/hackfest/live"
	"github.com/Dosada05/hackfest/mailclient"
	"github.com/Dosada05/hackfest/models"
	"github.com/Dosada05/hackfest/repositories"
	"github.com/Dosada05/hackfest/routes"
	"github.com/Dosada05/hackfest/services"
	"github.com/Dosada05/hackfest/storage"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE:  runServe,
	}
	cmd.Flags().Bool("migrate", true, "apply pending migrations before serving")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		return err
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		return err
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if runMigrations, _ := cmd.Flags().GetBool("migrate"); runMigrations {
		version, err := db.Migrate(ctx, dbConn)
		if err != nil {
			logger.Error("failed to apply migrations", slog.Any("error", err))
			return err
		}
		logger.Info("schema is up to date", slog.Uint64("version", uint64(version)))
	}

	hub := live.NewHub(logger)

	// Отправка писем
	mailTimeout := time.Duration(cfg.MailTimeoutSeconds) * time.Second
	emailNotifier, err := newEmailNotifier(cfg, mailTimeout, logger)
	if err != nil {
		logger.Error("failed to initialize email service", slog.Any("error", err))
		return err
	}
	var pipelineNotifier services.Notifier = emailNotifier
	if cfg.MailAPIURL != "" {
		mailAPI := mailclient.New(cfg.MailAPIURL, mailTimeout)
		checkMailAPI(ctx, mailAPI, logger)
		pipelineNotifier = mailAPI
		logger.Info("confirmations go through mail API", slog.String("url", cfg.MailAPIURL))
	}

	// Необязательные интеграции экспорта
	var archive handlers.ExportArchiver
	if cfg.R2Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			return err
		}
		archive = storage.NewExportArchive(uploader)
		logger.Info("Cloudflare R2 export archive initialized")
	}

	var sheets handlers.SheetSyncer
	if cfg.SheetsEnabled() {
		syncer, err := exports.NewSheetsSyncerFromFile(ctx, cfg.GoogleServiceAccountJSON, cfg.SheetsSpreadsheetID)
		if err != nil {
			logger.Error("failed to initialize Google Sheets sync", slog.Any("error", err))
			return err
		}
		sheets = syncer
		logger.Info("Google Sheets sync initialized", slog.String("spreadsheet_id", syncer.SpreadsheetID()))
	}

	// Репозитории и сервисы
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	catalog := models.NewProblemCatalog(cfg.ProblemStatements)

	registrationService := services.NewRegistrationService(registrationRepo, pipelineNotifier, hub, catalog, logger)
	adminService := services.NewAdminService(registrationRepo)
	authService := services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash)
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		logger.Warn("admin credentials not configured, dashboard login disabled")
	}
	logger.Info("services initialized", slog.Int("problem_statements", len(catalog)))

	router := chi.NewRouter()
	routes.SetupRoutes(router,
		routes.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			JWTSecret:      []byte(cfg.JWTSecretKey),
		},
		routes.Handlers{
			Registration: handlers.NewRegistrationHandler(registrationService, cfg.PaymentMode == config.PaymentModeLink),
			Email:        handlers.NewEmailHandler(emailNotifier),
			Auth:         handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
			Admin:        handlers.NewAdminHandler(adminService, archive, sheets),
			Dashboard:    handlers.NewDashboardHandler(adminService),
			WebSocket:    handlers.NewWebSocketHandler(hub, cfg.AllowedOrigins),
		},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gCtx)
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			return server.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		return err
	}
	logger.Info("application exited")
	return nil
}

// checkMailAPI опрашивает GET /api/health почтового сервиса. Письма не
// блокируют регистрацию, поэтому недоступность только логируется.
func checkMailAPI(ctx context.Context, client *mailclient.Client, logger *slog.Logger) bool {
	ok, err := client.Health(ctx)
	switch {
	case err != nil:
		logger.Warn("mail API is unreachable, confirmations may not be delivered", slog.Any("error", err))
	case !ok:
		logger.Warn("mail API reports unhealthy status, confirmations may not be delivered")
	default:
		logger.Info("mail API is healthy")
	}
	return err == nil && ok
}

// newEmailNotifier создает SMTP-отправитель, либо отключенный, если SMTP не настроен.
func newEmailNotifier(cfg *config.Config, timeout time.Duration, logger *slog.Logger) (services.Notifier, error) {
	if !cfg.MailEnabled() {
		logger.Warn("no mail transport configured, confirmation emails disabled")
		return services.NewDisabledNotifier(), nil
	}
	if cfg.SMTPHost == "" {
		logger.Info("SMTP not configured, /api/send-email is disabled")
		return services.NewDisabledNotifier(), nil
	}

	label := "UPI Transaction ID"
	if cfg.PaymentMode == config.PaymentModeLink {
		label = "Payment Proof Link"
	}
	mailer := services.NewSMTPMailer(services.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		Timeout:  timeout,
	})
	svc, err := services.NewEmailService(mailer, services.EmailConfig{
		From:          cfg.SMTPFrom,
		FromName:      cfg.SMTPFromName,
		OperatorEmail: cfg.OperatorEmail,
		EventName:     cfg.EventName,
		PaymentLabel:  label,
	}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("SMTP email service initialized", slog.String("host", cfg.SMTPHost), slog.Int("port", cfg.SMTPPort))
	return svc, nil
}
