package domain

import "time"

// Customer is identified by phone number. Customers are created
// implicitly on their first sale or rental and never deleted, since
// historical transactions and rentals reference them.
type Customer struct {
	ID        int32     `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
