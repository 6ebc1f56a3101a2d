package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/epic-events/epic-crm/internal/shared"
)

// NewRootCommand assembles the epiccrm command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "epiccrm",
		Short: "Customer relationship management for Epic Events staff",
		Long: `epiccrm manages clients, contracts and events of Epic Events.

Run "epiccrm init" once to create the schema, default permissions and the first
Management account, then "epiccrm login <username>" to open a shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newInitCommand(),
		newPermissionsCommand(),
		newLoginCommand(),
		newRunCommand(),
		newLogoutCommand(),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, args []string, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintln(stderr, userMessage(err))
	}
	return 1
}

func userMessage(err error) string {
	var verr *shared.ValidationError
	switch {
	case errors.Is(err, shared.ErrNotAuthorized),
		errors.As(err, &verr),
		errors.Is(err, shared.ErrNotFound),
		errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrSessionExpired),
		errors.Is(err, shared.ErrStorageUnavailable):
		return shared.UserSafeMessage(err)
	}
	return "Error: " + err.Error()
}
