package domain

import "time"

type EmployeeRole string

const (
	RoleCashier EmployeeRole = "CASHIER"
	RoleManager EmployeeRole = "MANAGER"
	RoleAdmin   EmployeeRole = "ADMIN"
)

// Employee is a register operator. Authorization decisions belong to
// the calling layer; the role is carried as data only.
type Employee struct {
	ID           int32        `json:"id"`
	EmployeeID   string       `json:"employee_id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Role         EmployeeRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	LastLogin    *time.Time   `json:"last_login,omitempty"`
	CreatedOn    time.Time    `json:"created_on"`
	UpdatedOn    time.Time    `json:"updated_on"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
