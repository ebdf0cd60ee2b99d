package models

// Role is the identity class of an authenticated caller.
type Role string

const (
	RoleNone  Role = ""
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a role that can own a credential row.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Credential field limits enforced by the input layer and the password flows.
const (
	UsernameMaxLen    = 20
	PasswordMinLen    = 4
	PasswordMaxLen    = 20
	DefaultUserPasswd = "1234"
)

// User represents a credential row keyed by role.
// It maps to the `users` table in SQLite.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Role         Role   `db:"role" json:"role"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// Credentials are the values submitted at the login gate.
type Credentials struct {
	Username string `validate:"required,username_len"`
	Password string `validate:"required,password_len"`
}
