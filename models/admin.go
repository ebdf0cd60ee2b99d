package models

// Conventional ids of the two seeded credential rows.
const (
	AdminUserID int64 = 0
	PlainUserID int64 = 1
)

// NewAdmin creates the admin credential row with Role preset to "admin".
func NewAdmin(username, passwordHash string) *User {
	return &User{ID: AdminUserID, Username: username, Role: RoleAdmin, PasswordHash: passwordHash}
}

// NewPlainUser creates the regular credential row with Role preset to "user".
func NewPlainUser(username, passwordHash string) *User {
	return &User{ID: PlainUserID, Username: username, Role: RoleUser, PasswordHash: passwordHash}
}
