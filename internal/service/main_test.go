package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"myContacts/internal/auth"
	"myContacts/internal/testutil"
	"myContacts/models"
	"myContacts/repository"
)

func init() {
	auth.HashCost = bcrypt.MinCost
}

func adminCtx() context.Context {
	return auth.WithPrincipal(context.Background(), &auth.Principal{UserID: models.AdminUserID, Username: "admin", Role: models.RoleAdmin})
}

func userCtx() context.Context {
	return auth.WithPrincipal(context.Background(), &auth.Principal{UserID: models.PlainUserID, Username: "user", Role: models.RoleUser})
}

func newContacts(t *testing.T) (*Contacts, *repository.ContactRepository) {
	t.Helper()
	repo := repository.NewContactRepository(testutil.OpenInMemoryDB(t))
	return NewContacts(repo, nil), repo
}

var testSeed = SeedConfig{AdminUsername: "admin", AdminPassword: "admin1234", UserUsername: "user", UserPassword: "1234"}

func newAccounts(t *testing.T) (*Accounts, *repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepository(testutil.OpenInMemoryDB(t))
	a := NewAccounts(users, auth.NewSessions("test-secret", 0), testSeed, nil)
	if _, err := a.SeedDefaultUsers(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return a, users
}
