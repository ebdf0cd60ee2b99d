package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"myContacts/internal/auth"
	"myContacts/internal/service"
	"myContacts/internal/testutil"
	"myContacts/models"
)

func init() {
	auth.HashCost = bcrypt.MinCost
}

// setupEnv points every file the CLI touches into a temp dir.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "contacts.sqlite"))
	t.Setenv("SESSION_FILE", filepath.Join(dir, "session"))
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("LOG_FILE", filepath.Join(dir, "mycontacts.log"))
	t.Setenv("LOG_LEVEL", "debug")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := &cli{}
	root := newRootCmd(c)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	c.close()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	require.NoError(t, err, "mycontacts %s", strings.Join(args, " "))
	return out
}

func TestAbout(t *testing.T) {
	out := mustRun(t, "about")
	assert.Contains(t, out, "MyContacts")
	assert.Contains(t, out, "version:")
}

func TestCommandsRequireLogin(t *testing.T) {
	setupEnv(t)
	for _, args := range [][]string{
		{"whoami"},
		{"contacts", "list"},
		{"password", "reset-user"},
		{"db", "version"},
	} {
		_, err := run(t, "", args...)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated, strings.Join(args, " "))
	}
}

func TestLoginLogout(t *testing.T) {
	dir := setupEnv(t)

	_, err := run(t, "", "login", "-u", "admin", "-p", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	out := mustRun(t, "login", "-u", "admin", "-p", "admin1234")
	assert.Equal(t, "Logged in as admin (admin)\n", out)

	info, err := os.Stat(filepath.Join(dir, "session"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.Equal(t, "admin (admin)\n", mustRun(t, "whoami"))

	assert.Equal(t, "Logged out\n", mustRun(t, "logout"))
	_, err = run(t, "", "whoami")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestTamperedSessionIsRejected(t *testing.T) {
	dir := setupEnv(t)
	mustRun(t, "login", "-u", "user", "-p", "1234")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session"), []byte("not-a-token"), 0o600))

	_, err := run(t, "", "contacts", "list")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func listJSON(t *testing.T, args ...string) []models.Contact {
	t.Helper()
	out := mustRun(t, append([]string{"contacts", "list", "-o", "json"}, args...)...)
	var list []models.Contact
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	return list
}

func TestContactsLifecycle(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "-u", "user", "-p", "1234")

	assert.Equal(t, "No contacts found\n", mustRun(t, "contacts", "list"))
	assert.Empty(t, listJSON(t))

	out := mustRun(t, "contacts", "add", "--name", " anna smith ", "--job", "dev", "--location", "pune", "--contact", "9876543210")
	assert.Equal(t, "Record added successfully (id 1)\n", out)
	mustRun(t, "contacts", "add", "--name", "bob", "--job", "chef", "--location", "delhi", "--contact", "9123456780")

	list := listJSON(t)
	require.Len(t, list, 2)
	assert.Equal(t, models.Contact{ID: 1, Name: "ANNA SMITH", Job: "DEV", Location: "PUNE", Contact: "9876543210"}, list[0])
	assert.Equal(t, "BOB", list[1].Name)

	table := mustRun(t, "contacts", "list")
	assert.Contains(t, table, "ANNA SMITH")
	assert.Contains(t, table, "Contact No.")

	_, err := run(t, "", "contacts", "add", "--name", "carl", "--job", "pilot", "--location", "goa", "--contact", "9876543210")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Contact number 9876543210 used by ANNA SMITH", userMessage(err))

	assert.Equal(t, "Record updated successfully\n", mustRun(t, "contacts", "update", "1", "--job", "lead"))
	yml := mustRun(t, "contacts", "list", "-o", "yaml", "--by", "job", "-q", "le")
	assert.Contains(t, yml, "job: LEAD")
	assert.NotContains(t, yml, "BOB")

	filtered := listJSON(t, "--by", "location", "-q", "DEL")
	require.Len(t, filtered, 1)
	assert.Equal(t, "BOB", filtered[0].Name)

	out, err = run(t, "n\n", "contacts", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Do you want to remove 'ANNA SMITH' from your Contact Book?")
	assert.Contains(t, out, "Cancelled")
	assert.Len(t, listJSON(t), 2)

	assert.Equal(t, "Record removed successfully\n", mustRun(t, "contacts", "remove", "1", "-y"))
	assert.Len(t, listJSON(t), 1)

	_, err = run(t, "", "contacts", "remove", "1", "-y")
	assert.ErrorIs(t, err, service.ErrContactNotFound)
}

func TestContactsListRejectsUnknownInputs(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "-u", "user", "-p", "1234")

	_, err := run(t, "", "contacts", "list", "--by", "email", "-q", "a")
	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = run(t, "", "contacts", "list", "-o", "xml")
	assert.Error(t, err)

	_, err = run(t, "", "contacts", "update", "abc", "--name", "x")
	assert.Error(t, err)
}

func TestPasswordChange(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "-u", "user", "-p", "1234")

	_, err := run(t, "", "password", "change", "--current", "nope", "--new", "abcd", "--confirm", "abcd")
	require.Error(t, err)
	assert.Equal(t, "Incorrect Password", userMessage(err))

	out := mustRun(t, "password", "change", "--current", "1234", "--new", "abcd", "--confirm", "abcd")
	assert.Equal(t, "Password has been changed successfully\n", out)

	mustRun(t, "logout")
	_, err = run(t, "", "login", "-u", "user", "-p", "1234")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mustRun(t, "login", "-u", "user", "-p", "abcd")
}

func TestResetUserIsAdminOnly(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "-u", "user", "-p", "1234")
	mustRun(t, "password", "change", "--current", "1234", "--new", "wxyz", "--confirm", "wxyz")

	_, err := run(t, "", "password", "reset-user")
	assert.ErrorIs(t, err, auth.ErrForbidden)
	_, err = run(t, "", "db", "version")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	mustRun(t, "login", "-u", "admin", "-p", "admin1234")
	assert.Equal(t, "Password of the user has been reset to 1234\n", mustRun(t, "password", "reset-user"))
	assert.Equal(t, "schema version 3\n", mustRun(t, "db", "version"))

	mustRun(t, "login", "-u", "user", "-p", "1234")
}

func TestDBCommandOnlyReportsVersion(t *testing.T) {
	root := newRootCmd(&cli{})
	dbCmd, _, err := root.Find([]string{"db"})
	require.NoError(t, err)
	var names []string
	for _, sub := range dbCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Equal(t, []string{"version"}, names)
}

func TestChangedPasswordsSurviveRestarts(t *testing.T) {
	setupEnv(t)
	mustRun(t, "login", "-u", "admin", "-p", "admin1234")
	mustRun(t, "password", "change", "--current", "admin1234", "--new", "newsecret", "--confirm", "newsecret")
	assert.Equal(t, "schema version 3\n", mustRun(t, "db", "version"))
	mustRun(t, "logout")

	_, err := run(t, "", "login", "-u", "admin", "-p", "admin1234")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mustRun(t, "login", "-u", "admin", "-p", "newsecret")
}

func TestSessionSecretIsStoredPerDatabase(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("SESSION_SECRET", "")

	mustRun(t, "login", "-u", "user", "-p", "1234")
	assert.Equal(t, "user (user)\n", mustRun(t, "whoami"))

	// A token signed with any guessable secret is refused.
	forged := testutil.GenerateSessionToken(t, "dev-secret-change-me", models.PlainUserID, "user", models.RoleUser, time.Hour)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session"), []byte(forged), 0o600))
	_, err := run(t, "", "whoami")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	// A second book gets its own secret, so the first book's session does not carry over.
	mustRun(t, "login", "-u", "user", "-p", "1234")
	t.Setenv("DB_PATH", filepath.Join(dir, "other.sqlite"))
	_, err = run(t, "", "whoami")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &service.ValidationError{Field: "Name", Message: "Name field cannot be empty"}, "Name field cannot be empty"},
		{"operation", fmt.Errorf("wrapped: %w", &service.OperationError{Op: "add", Message: service.MsgAddFailed, Err: errors.New("disk full")}), service.MsgAddFailed},
		{"credentials", service.ErrInvalidCredentials, "Invalid username/password"},
		{"forbidden", fmt.Errorf("%w: admin only", auth.ErrForbidden), "Only admin can perform this action"},
		{"other", errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userMessage(tt.err))
		})
	}
}
