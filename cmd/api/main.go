package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/payroll-backend-go/internal/service/auth"
	departmentService "github.com/cmlabs-hris/payroll-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/payroll-backend-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
	timeEntryService "github.com/cmlabs-hris/payroll-backend-go/internal/service/timeentry"
	userService "github.com/cmlabs-hris/payroll-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("Error running migrations", "error", err)
		os.Exit(1)
	}

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	calculator := payrollService.NewCalculator(cfg.Payroll)

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	timeEntrySvc := timeEntryService.NewTimeEntryService(txManager, timeEntryRepo, employeeRepo, cfg.Payroll.DailyOvertimeThreshold)
	payrollSvc := payrollService.NewPayrollService(txManager, payrollRepo, employeeRepo, timeEntryRepo, calculator)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewUserHandler(userSvc, employeeSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewDepartmentHandler(departmentSvc),
		appHTTP.NewTimeEntryHandler(timeEntrySvc),
		appHTTP.NewPayrollHandler(payrollSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
