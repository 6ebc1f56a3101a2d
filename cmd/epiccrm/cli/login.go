package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/epic-events/epic-crm/internal/shared"
)

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate and open an interactive shell",
		Long: `Authenticate with your password and open the epiccrm shell.

When REDIS_ADDR is set the login is also stored as a session, so that
"epiccrm run <command>" works until "epiccrm logout" or the session expires.`,
		Args: cobra.ExactArgs(1),
		RunE: runLogin,
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := rt.connect(ctx); err != nil {
		return err
	}

	console := NewConsole(cmd.InOrStdin(), out)
	password, err := console.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	caller, err := rt.auth.Authenticate(ctx, args[0], password)
	if err != nil {
		rt.logger.Warn("login failed", slog.String("username", args[0]), slog.Any("error", err))
		return err
	}
	rt.logger.Info("login", slog.String("username", caller.Username), slog.String("role", caller.Role))

	var sessionID string
	if rt.cfg.SessionsEnabled() {
		if err := rt.connectSessions(ctx); err != nil {
			fmt.Fprintln(out, "Session storage unavailable, `epiccrm run` will not work for this login.")
		} else {
			session, err := rt.sessions.Create(ctx, caller)
			if err != nil {
				return err
			}
			if err := writeSessionFile(rt.cfg.SessionFile, session.ID); err != nil {
				return err
			}
			sessionID = session.ID
		}
	}

	fmt.Fprintf(out, "Welcome %s (%s).\n", caller.Username, caller.Role)
	sh := NewShell(rt.services, rt.guard(), console, out, rt.logger)
	loggedOut, err := sh.Run(shared.ContextWithCaller(ctx, caller))
	if loggedOut {
		if sessionID != "" {
			if err := rt.endSession(ctx, sessionID); err != nil {
				return err
			}
		}
		rt.logger.Info("logout", slog.String("username", caller.Username))
		fmt.Fprintln(out, "Logged out.")
	}
	return err
}
