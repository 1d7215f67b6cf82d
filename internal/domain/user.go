package domain

import "time"

// UserRole is a closed set; role checks dispatch on it explicitly rather
// than probing for role-specific fields.
type UserRole string

const (
	UserRoleClient      UserRole = "CLIENT"
	UserRoleInterpreter UserRole = "INTERPRETER"
	UserRoleAdmin       UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleClient, UserRoleInterpreter, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Interpreter is the interpreter profile consulted by language matching and
// offer notification.
type Interpreter struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Languages []string `json:"languages"`
	Gender    string   `json:"gender"`
	Active    bool     `json:"active"`
}

// Client is the billing party a booking belongs to.
type Client struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BillingEmail string `json:"billing_email"`
	CostCode     string `json:"cost_code"`
}

// Actor is the authenticated caller as resolved by the session layer.
type Actor struct {
	ID   string
	Name string
	Role UserRole
}
