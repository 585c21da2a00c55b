package http

import (
	"io"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const (
	appName    = "attendance-ledger"
	appVersion = "v1.0.0"
)

// NewLogger builds the JSON ECS logger shared by request logging and the
// services.
func NewLogger(out io.Writer, env string, level string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", env),
	)
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(
	logger *slog.Logger,
	allowedOrigins []string,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	holidayHandler HolidayHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api", func(r chi.Router) {
		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.GetMonth)
			r.Post("/start", attendanceHandler.ClockIn)
			r.Post("/end", attendanceHandler.ClockOut)
			r.Post("/report", attendanceHandler.SubmitReport)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Use(middleware.AdminOnly)

				r.Post("/approve", attendanceHandler.Approve)
				r.Post("/reject", attendanceHandler.Reject)
				r.Post("/revoke", attendanceHandler.Revoke)
			})
		})

		r.Get("/holidays", holidayHandler.List)
	})
	return r
}
