package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"myContacts/internal/auth"
	"myContacts/internal/config"
	"myContacts/internal/db"
	"myContacts/internal/logger"
	"myContacts/internal/service"
	"myContacts/repository"
)

const annotationAuth = "auth"

// cli holds the process-wide collaborators shared by every command.
type cli struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *sql.DB
	users    *repository.UserRepository
	contacts *service.Contacts
	accounts *service.Accounts
	session  *sessionFile
}

func requiresLogin(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationAuth] == "required" {
			return true
		}
	}
	return false
}

func needsLogin() map[string]string {
	return map[string]string{annotationAuth: "required"}
}

// setup loads configuration, opens the store and wires the services.
// Failure to open the store is the one fatal condition.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	c.log = log
	c.log.Debug("configuration loaded", zap.Stringer("config", cfg))

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		c.log.Error("open database", zap.String("path", cfg.Database.Path), zap.Error(err))
		return fmt.Errorf("unable to connect to the database: %w", err)
	}
	c.db = d

	secret := cfg.Auth.SessionSecret
	if secret == "" {
		if secret, err = auth.StoredSecret(cmd.Context(), repository.NewSettingsRepository(d)); err != nil {
			c.log.Error("session secret", zap.Error(err))
			return err
		}
	}

	c.users = repository.NewUserRepository(d)
	c.contacts = service.NewContacts(repository.NewContactRepository(d), log.Named("contacts"))
	c.accounts = service.NewAccounts(c.users, auth.NewSessions(secret, cfg.Auth.SessionTTL), service.SeedConfig{
		AdminUsername: cfg.Auth.AdminUsername,
		AdminPassword: cfg.Auth.AdminPassword,
		UserUsername:  cfg.Auth.PlainUsername,
		UserPassword:  cfg.Auth.PlainUserPassword,
	}, log.Named("accounts"))
	c.session = &sessionFile{path: cfg.Auth.SessionFile}

	if _, err := c.accounts.SeedDefaultUsers(cmd.Context()); err != nil {
		return err
	}

	if !requiresLogin(cmd) {
		return nil
	}
	tok, err := c.session.Load()
	if err != nil {
		return err
	}
	p, err := c.accounts.Resume(cmd.Context(), tok)
	if err != nil {
		return err
	}
	cmd.SetContext(auth.WithPrincipal(cmd.Context(), p))
	return nil
}

func (c *cli) close() {
	if c.db != nil {
		if err := c.db.Close(); err != nil && c.log != nil {
			c.log.Warn("close db", zap.Error(err))
		}
		c.db = nil
	}
	if c.log != nil {
		_ = c.log.Sync()
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "mycontacts",
		Short: "MyContacts - a contacts book in a local SQLite file",
		Long: `MyContacts keeps names, jobs, locations and phone numbers in a single
SQLite file. Log in once with "mycontacts login"; later commands reuse the
session until it expires or you log out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newContactsCmd(c),
		newPasswordCmd(c),
		newDBCmd(c),
		newAboutCmd(),
	)
	return root
}
