package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/hackfest/handlers"
	"github.com/Dosada05/hackfest/middleware"
)

type Options struct {
	AllowedOrigins []string
	JWTSecret      []byte
}

type Handlers struct {
	Registration *handlers.RegistrationHandler
	Email        *handlers.EmailHandler
	Auth         *handlers.AuthHandler
	Admin        *handlers.AdminHandler
	Dashboard    *handlers.DashboardHandler
	WebSocket    *handlers.WebSocketHandler
}

func SetupRoutes(router chi.Router, opts Options, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.JWTSecret)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(60 * time.Second))

		// Публичные маршруты
		r.Get("/problems", h.Registration.Problems)
		r.Post("/registrations", h.Registration.Submit)
		r.Post("/send-email", h.Email.SendEmail)
		r.Get("/health", h.Email.Health)
		r.Post("/admin/login", h.Auth.Login)

		// Маршруты админки
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize(middleware.RoleAdmin))

			r.Get("/admin/session", h.Auth.Session)
			r.Get("/admin/registrations", h.Admin.ListRegistrations)
			r.Get("/admin/registrations/export", h.Admin.Export)
			r.Post("/admin/registrations/export/archive", h.Admin.ArchiveExport)
			r.Post("/admin/registrations/sync", h.Admin.SyncSheets)
			r.Get("/admin/dashboard/stats", h.Dashboard.Stats)
		})
	})

	router.With(authenticate, middleware.Authorize(middleware.RoleAdmin)).
		Get("/ws/admin/registrations", h.WebSocket.ServeWs)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n")) //nolint:errcheck
	})
}
