package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/epic-events/epic-crm/internal/shared"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Run one shell command with the stored session",
		Long: `Run a single shell command, for example "epiccrm run list_clients".
The role is read from the database on every call, so role changes apply at once.`,
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE:               runOnce,
	}
}

func runOnce(cmd *cobra.Command, args []string) error {
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
	if err := rt.connectSessions(ctx); err != nil {
		return err
	}

	id, err := readSessionFile(rt.cfg.SessionFile)
	if err != nil {
		return err
	}
	session, err := rt.sessions.Load(ctx, id)
	if err != nil {
		return err
	}
	caller, err := rt.auth.ResolveCaller(ctx, session.UserID)
	if err != nil {
		return err
	}

	sh := NewShell(rt.services, rt.guard(), NewConsole(cmd.InOrStdin(), out), out, rt.logger)
	err = sh.Dispatch(shared.ContextWithCaller(ctx, caller), args)
	switch {
	case err == nil, errors.Is(err, errExit):
		return nil
	case errors.Is(err, errLogout):
		if err := rt.endSession(ctx, id); err != nil {
			return err
		}
		rt.logger.Info("logout", slog.String("username", caller.Username))
		fmt.Fprintln(out, "Logged out.")
		return nil
	default:
		sh.report(args[0], err)
		return errReported
	}
}
