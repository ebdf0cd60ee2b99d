package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"myContacts/internal/auth"
	"myContacts/internal/validate"
	"myContacts/models"
	"myContacts/repository"
)

// SeedConfig names the two credential rows created on first run.
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
	UserUsername  string
	UserPassword  string
}

// Accounts implements the login gate and the password flows.
type Accounts struct {
	users    repository.UserStore
	sessions *auth.Sessions
	seed     SeedConfig
	log      *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAccounts creates an account service.
func NewAccounts(users repository.UserStore, sessions *auth.Sessions, seed SeedConfig, log *zap.Logger) *Accounts {
	if log == nil {
		log = zap.NewNop()
	}
	return &Accounts{users: users, sessions: sessions, seed: seed, log: log}
}

// SeedDefaultUsers creates the admin and user rows when the credential table
// is empty. It reports whether rows were inserted.
func (a *Accounts) SeedDefaultUsers(ctx context.Context) (bool, error) {
	adminHash, err := auth.HashPassword(a.seed.AdminPassword)
	if err != nil {
		return false, err
	}
	userHash, err := auth.HashPassword(a.seed.UserPassword)
	if err != nil {
		return false, err
	}
	inserted, err := a.users.SeedIfEmpty(ctx, []*models.User{
		models.NewAdmin(a.seed.AdminUsername, adminHash),
		models.NewPlainUser(a.seed.UserUsername, userHash),
	})
	if err != nil {
		a.log.Error("seed default users", zap.Error(err))
		return false, failed("seed", MsgSeedFailed, err)
	}
	if inserted {
		a.log.Info("default users created",
			zap.String("admin", a.seed.AdminUsername), zap.String("user", a.seed.UserUsername))
	}
	return inserted, nil
}

// burn runs one bcrypt comparison against a throwaway hash. Used for unknown usernames.
func (a *Accounts) burn(password string) {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = auth.HashPassword("not-a-real-password")
	})
	_ = auth.CheckPassword(a.dummyHash, password)
}

// Authenticate checks username and password against the credential table.
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (*auth.Principal, error) {
	if err := validate.Limits(models.Credentials{Username: username, Password: password}); err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		a.log.Error("authenticate", zap.String("username", username), zap.Error(err))
		return nil, failed("login", MsgLoginFailed, err)
	}
	if u == nil {
		a.burn(password)
		a.log.Info("login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		a.log.Info("login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	return &auth.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}, nil
}

// Login authenticates and issues a session token for the returned principal.
func (a *Accounts) Login(ctx context.Context, username, password string) (string, *auth.Principal, error) {
	p, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	tok, err := a.sessions.Issue(p)
	if err != nil {
		return "", nil, err
	}
	a.log.Info("login", zap.String("username", p.Username), zap.String("role", string(p.Role)))
	return tok, p, nil
}

// Resume turns a stored session token back into a principal. The credential
// row must still exist under the same username and role.
func (a *Accounts) Resume(ctx context.Context, token string) (*auth.Principal, error) {
	p, err := a.sessions.Parse(token)
	if err != nil {
		return nil, err
	}
	u, err := a.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, failed("session", MsgLoginFailed, err)
	}
	if u == nil || u.Username != p.Username || u.Role != p.Role {
		return nil, fmt.Errorf("%w: session no longer matches a user", auth.ErrUnauthenticated)
	}
	return p, nil
}

// ChangePassword replaces the password of userID. The caller must be logged in
// as that user. Checks run in a fixed order and the first failure is returned.
func (a *Accounts) ChangePassword(ctx context.Context, userID int64, current, newPassword, confirm string) error {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return fmt.Errorf("%w: cannot change another user's password", auth.ErrForbidden)
	}
	current = strings.TrimSpace(current)
	newPassword = strings.TrimSpace(newPassword)
	confirm = strings.TrimSpace(confirm)

	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return failed("change password", MsgPassFailed, err)
	}
	if u == nil {
		return fmt.Errorf("%w: user %d does not exist", auth.ErrUnauthenticated, userID)
	}

	switch n := validate.Length(newPassword); {
	case !auth.CheckPassword(u.PasswordHash, current):
		return invalid("Current Password", "Incorrect Password")
	case n < models.PasswordMinLen || n > models.PasswordMaxLen:
		return invalid("New Password", "Length of Password should be %d to %d characters", models.PasswordMinLen, models.PasswordMaxLen)
	case newPassword != confirm:
		return invalid("Confirm Password", "Confirm Password does not match with the New Password")
	case newPassword == current:
		return invalid("New Password", "New Password must be different from the Current Password")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return failed("change password", MsgPassFailed, err)
	}
	if err := a.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		a.log.Error("change password", zap.Int64("user_id", userID), zap.Error(err))
		return failed("change password", MsgPassFailed, err)
	}
	a.log.Info("password changed", zap.String("username", u.Username))
	return nil
}

// ResetUserPassword sets the password of the "user" role row back to
// models.DefaultUserPasswd. Only an admin may call it.
func (a *Accounts) ResetUserPassword(ctx context.Context) error {
	p, err := auth.RequireAdmin(ctx, a.users)
	if err != nil {
		return err
	}
	u, err := a.users.GetByRole(ctx, models.RoleUser)
	if err != nil {
		return failed("reset password", MsgResetFailed, err)
	}
	if u == nil {
		return failed("reset password", MsgResetFailed, errors.New("no user row"))
	}
	hash, err := auth.HashPassword(models.DefaultUserPasswd)
	if err != nil {
		return failed("reset password", MsgResetFailed, err)
	}
	if err := a.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		a.log.Error("reset user password", zap.Error(err))
		return failed("reset password", MsgResetFailed, err)
	}
	a.log.Info("user password reset", zap.String("by", p.Username))
	return nil
}
