package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

type employeeRepository struct {
	db DBTX
}

func NewEmployeeRepository(db DBTX) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, employee_id, username, password_hash, first_name, last_name, role, is_active, last_login, created_on, updated_on`

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (employee_id, username, password_hash, first_name, last_name, role, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, e.EmployeeID, e.Username, e.PasswordHash,
		e.FirstName, e.LastName, e.Role, e.IsActive, now, now).Scan(&e.ID)
}

func (r *employeeRepository) scanEmployee(row *sql.Row) (*domain.Employee, error) {
	e := &domain.Employee{}
	err := row.Scan(&e.ID, &e.EmployeeID, &e.Username, &e.PasswordHash, &e.FirstName,
		&e.LastName, &e.Role, &e.IsActive, &e.LastLogin, &e.CreatedOn, &e.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int32) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return r.scanEmployee(r.db.QueryRowContext(ctx, query, id))
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`
	return r.scanEmployee(r.db.QueryRowContext(ctx, query, employeeID))
}

func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE username = $1`
	return r.scanEmployee(r.db.QueryRowContext(ctx, query, username))
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	query := `UPDATE employees SET username=$1, password_hash=$2, first_name=$3, last_name=$4,
	          role=$5, is_active=$6, last_login=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, e.Username, e.PasswordHash, e.FirstName, e.LastName,
		e.Role, e.IsActive, e.LastLogin, time.Now(), e.ID)
	return err
}

func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY employee_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Username, &e.PasswordHash, &e.FirstName,
			&e.LastName, &e.Role, &e.IsActive, &e.LastLogin, &e.CreatedOn, &e.UpdatedOn); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
