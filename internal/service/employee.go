package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/logger"
	"rentalpos-backend/internal/repository"
	"rentalpos-backend/internal/security"
)

type employeeService struct {
	store  repository.Store
	tokens security.TokenManager
	now    func() time.Time
}

func NewEmployeeService(store repository.Store, tokens security.TokenManager) EmployeeService {
	return &employeeService{store: store, tokens: tokens, now: time.Now}
}

// Login verifies credentials and issues an access token. A wrong
// username and a wrong password are indistinguishable to the caller.
func (s *employeeService) Login(ctx context.Context, username, password string) (*domain.Employee, string, error) {
	employee, err := s.store.Employees().GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !employee.IsActive {
		return nil, "", domain.ErrEmployeeInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Failed login attempt", "username", username)
		return nil, "", domain.ErrInvalidCredentials
	}

	now := s.now()
	employee.LastLogin = &now
	if err := s.store.Employees().Update(ctx, employee); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(employee.ID, employee.Username, string(employee.Role))
	if err != nil {
		return nil, "", err
	}

	logger.Info("Employee logged in", "username", employee.Username, "role", employee.Role)
	return employee, token, nil
}

func (s *employeeService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if len(input.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if _, err := s.store.Employees().GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username %s already exists", username)
	} else if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCashier
	}

	employee := &domain.Employee{
		EmployeeID:   strings.TrimSpace(input.EmployeeID),
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.store.Employees().Create(ctx, employee); err != nil {
		return nil, err
	}

	logger.Info("Employee created", "username", employee.Username, "role", employee.Role)
	return employee, nil
}

func (s *employeeService) ChangePassword(ctx context.Context, employeeID int32, oldPassword, newPassword string) error {
	employee, err := s.store.Employees().GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return s.setPassword(ctx, employee, newPassword)
}

// ResetPassword sets a new password without the old one. The caller
// is responsible for having verified manager authority.
func (s *employeeService) ResetPassword(ctx context.Context, employeeID int32, newPassword string) error {
	employee, err := s.store.Employees().GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, employee, newPassword)
}

func (s *employeeService) setPassword(ctx context.Context, employee *domain.Employee, password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	employee.PasswordHash = string(hash)
	if err := s.store.Employees().Update(ctx, employee); err != nil {
		return err
	}
	logger.Info("Password updated", "username", employee.Username)
	return nil
}

func (s *employeeService) GetEmployee(ctx context.Context, id int32) (*domain.Employee, error) {
	return s.store.Employees().GetByID(ctx, id)
}

func (s *employeeService) ListEmployees(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	return s.store.Employees().List(ctx, activeOnly)
}

func (s *employeeService) setActive(ctx context.Context, id int32, active bool) error {
	employee, err := s.store.Employees().GetByID(ctx, id)
	if err != nil {
		return err
	}
	employee.IsActive = active
	return s.store.Employees().Update(ctx, employee)
}

func (s *employeeService) DeactivateEmployee(ctx context.Context, id int32) error {
	if err := s.setActive(ctx, id, false); err != nil {
		return err
	}
	logger.Info("Employee deactivated", "id", id)
	return nil
}

func (s *employeeService) RestoreEmployee(ctx context.Context, id int32) error {
	if err := s.setActive(ctx, id, true); err != nil {
		return err
	}
	logger.Info("Employee restored", "id", id)
	return nil
}
