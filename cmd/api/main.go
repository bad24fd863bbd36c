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
	_ "time/tzdata"

	"github.com/cmlabs-hris/scan-attendance-go/internal/config"
	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	appHTTP "github.com/cmlabs-hris/scan-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/scan-attendance-go/internal/repository/mongodb"
	"github.com/cmlabs-hris/scan-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/scan-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/scan-attendance-go/internal/service/auth"
	departmentService "github.com/cmlabs-hris/scan-attendance-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/scan-attendance-go/internal/service/employee"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}

	var walletRepo wallet.WalletRepository
	switch cfg.Attendance.WalletStore {
	case config.WalletStoreMongoDB:
		mongoDB, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoDB.Close(closeCtx); err != nil {
				slog.Error("Failed to close mongodb", "error", err)
			}
		}()

		if err := mongodb.EnsureIndexes(ctx, mongoDB); err != nil {
			return fmt.Errorf("ensure mongodb indexes: %w", err)
		}
		walletRepo = mongodb.NewWalletRepository(mongoDB, cfg.Attendance.StrictAlternation)
	default:
		walletRepo = postgresql.NewWalletRepository(db, cfg.Attendance.StrictAlternation)
	}
	slog.Info("Wallet store selected", "store", cfg.Attendance.WalletStore, "strict", cfg.Attendance.StrictAlternation)

	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	txManager := postgresql.NewTxManager(db)

	hub := sse.NewHub()
	defer hub.Close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.AccessTokenLifetime(), !cfg.IsDevelopment())

	authService := serviceAuth.NewAuthService(userRepo, departmentRepo, JWTService)
	deptService := departmentService.NewDepartmentService(departmentRepo, userRepo)
	empService := employeeService.NewEmployeeService(txManager, employeeRepo, departmentRepo, cfg.Attendance.DefaultHourlyRate)
	scanService := attendanceService.NewAttendanceService(
		walletRepo,
		employeeRepo,
		departmentRepo,
		userRepo,
		hub,
		attendanceService.Options{
			DefaultHourlyRate: cfg.Attendance.DefaultHourlyRate,
			ReportLocation:    cfg.ReportLocation(),
			SampleEnabled:     cfg.IsDevelopment(),
		},
	)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
			LogLevel:    cfg.LogLevel(),
		},
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authService),
		appHTTP.NewDepartmentHandler(deptService),
		appHTTP.NewEmployeeHandler(empService),
		appHTTP.NewAttendanceHandler(scanService, JWTService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	// Live streams only end when their subscriptions close.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
