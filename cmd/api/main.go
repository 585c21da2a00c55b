package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	holidayService "github.com/cmlabs-hris/attendance-backend-go/internal/service/holiday"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bucketRepo, closeStore, err := repository.OpenBucketRepository(ctx, cfg)
	if err != nil {
		slog.Error("Error opening bucket store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	policy := attendanceService.PermissivePolicy
	if cfg.Ledger.StrictApproval {
		policy = attendanceService.StrictPolicy
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	attendanceSvc := attendanceService.NewAttendanceService(bucketRepo, cfg.Ledger.Location, policy)
	holidaySvc := holidayService.NewHolidayService(cfg.Holiday.URL, cfg.Holiday.Timeout)

	scheduler := cron.NewScheduler()
	cron.NewHolidayJobs(holidaySvc).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)

	router := appHTTP.NewRouter(
		logger,
		cfg.App.AllowedOrigins,
		JWTService,
		attendanceHandler,
		holidayHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Driver, "approval_policy", policy.String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
	}
}
