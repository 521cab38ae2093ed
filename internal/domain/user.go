package domain

import "strings"

// Role is the account role used by route gating
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStore Role = "STORE"
	RoleBuyer Role = "BUYER"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStore, RoleBuyer:
		return true
	}
	return false
}

// User is an account in the identity directory. Passwords are kept in plain
// text: accounts are mocked and carry no security guarantees.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	ShopID   string `json:"shopId,omitempty"`
}

// NormalizeEmail trims and lowercases an email, the form used as natural key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
