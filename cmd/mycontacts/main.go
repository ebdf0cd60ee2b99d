package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"myContacts/internal/auth"
	"myContacts/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &cli{}
	root := newRootCmd(c)
	err := root.ExecuteContext(ctx)
	c.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

// userMessage maps an error to the single line shown to the user.
func userMessage(err error) string {
	var verr *service.ValidationError
	var oerr *service.OperationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.As(err, &oerr):
		return oerr.Message
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username/password"
	case errors.Is(err, service.ErrContactNotFound):
		return "No contact with that id"
	case errors.Is(err, auth.ErrUnauthenticated):
		return "Please log in first: mycontacts login -u <username> -p <password>"
	case errors.Is(err, auth.ErrForbidden):
		return "Only admin can perform this action"
	}
	return "Error: " + err.Error()
}
