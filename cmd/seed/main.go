package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const samplePassword = "password123"

var sampleDepartments = []struct {
	name        string
	description string
}{
	{"Human Resources", "People operations and recruiting"},
	{"Engineering", "Product development"},
	{"Sales", "Sales and account management"},
	{"Finance", "Accounting and payroll"},
}

var sampleUsers = []struct {
	username   string
	fullName   string
	department string
	position   string
}{
	{"john.doe", "John Doe", "Engineering", "Software Engineer"},
	{"jane.smith", "Jane Smith", "Human Resources", "HR Specialist"},
	{"bob.wilson", "Bob Wilson", "Sales", "Account Executive"},
}

type seeder struct {
	users       user.UserRepository
	departments department.DepartmentRepository
	employees   employee.EmployeeRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if cfg.Seed.AdminPassword == "" {
		fmt.Println("SEED_ADMIN_PASSWORD is required")
		os.Exit(1)
	}

	ctx := context.Background()
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

	s := seeder{
		users:       postgresql.NewUserRepository(db),
		departments: postgresql.NewDepartmentRepository(db),
		employees:   postgresql.NewEmployeeRepository(db),
	}
	if err := s.run(ctx, cfg.Seed); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Seeding completed")
}

func (s seeder) run(ctx context.Context, seed config.SeedConfig) error {
	if _, err := s.ensureUser(ctx, seed.AdminUsername, seed.AdminEmail, seed.AdminFullName, seed.AdminPassword, true); err != nil {
		return fmt.Errorf("admin: %w", err)
	}

	departmentIDs := make(map[string]string, len(sampleDepartments))
	for _, d := range sampleDepartments {
		id, err := s.ensureDepartment(ctx, d.name, d.description)
		if err != nil {
			return fmt.Errorf("department %s: %w", d.name, err)
		}
		departmentIDs[d.name] = id
	}

	for i, u := range sampleUsers {
		created, err := s.ensureUser(ctx, u.username, u.username+"@company.com", u.fullName, samplePassword, false)
		if err != nil {
			return fmt.Errorf("user %s: %w", u.username, err)
		}

		deptID := departmentIDs[u.department]
		code := fmt.Sprintf("EMP%03d", i+1)
		if err := s.ensureEmployee(ctx, created.ID, code, &deptID, u.position); err != nil {
			return fmt.Errorf("employee %s: %w", code, err)
		}
	}
	return nil
}

func (s seeder) ensureUser(ctx context.Context, username, email, fullName, password string, admin bool) (user.User, error) {
	exists, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return user.User{}, err
	}
	if exists {
		slog.Info("User already exists, skipping", "username", username)
		return s.users.GetByLogin(ctx, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}

	created, err := s.users.Create(ctx, user.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		IsActive:     true,
		IsAdmin:      admin,
	})
	if err != nil {
		return user.User{}, err
	}
	slog.Info("User created", "username", username, "admin", admin)
	return created, nil
}

func (s seeder) ensureDepartment(ctx context.Context, name, description string) (string, error) {
	existing, err := s.departments.GetByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, department.ErrDepartmentNotFound) {
		return "", err
	}

	created, err := s.departments.Create(ctx, department.Department{
		Name:        name,
		Description: &description,
		IsActive:    true,
	})
	if err != nil {
		return "", err
	}
	slog.Info("Department created", "name", name)
	return created.ID, nil
}

func (s seeder) ensureEmployee(ctx context.Context, userID, code string, departmentID *string, position string) error {
	_, err := s.employees.GetByUserID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return err
	}

	hourlyRate := decimal.RequireFromString("36.06")
	_, err = s.employees.Create(ctx, employee.Employee{
		UserID:         userID,
		EmployeeCode:   code,
		DepartmentID:   departmentID,
		Position:       position,
		HireDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		EmploymentType: employee.EmploymentTypeFullTime,
		Salary:         decimal.NewFromInt(75000),
		HourlyRate:     &hourlyRate,
		IsActive:       true,
	})
	if err != nil {
		return err
	}
	slog.Info("Employee created", "employee_code", code)
	return nil
}
