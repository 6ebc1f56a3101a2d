package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/epic-events/epic-crm/internal/rbac"
	"github.com/epic-events/epic-crm/internal/shared"
)

var (
	errExit   = errors.New("exit shell")
	errLogout = errors.New("logout")
	// errReported marks failures whose message was already printed.
	errReported = errors.New("reported")
)

// Shell dispatches CRM commands on behalf of the caller stored in context.
type Shell struct {
	services Services
	guard    rbac.Guard
	console  *Console
	out      io.Writer
	logger   *slog.Logger
	audit    *shared.AuditLogger
	commands map[string]*command
	ordered  []*command
}

// NewShell builds a Shell over the given services.
func NewShell(services Services, guard rbac.Guard, console *Console, out io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sh := &Shell{
		services: services,
		guard:    guard,
		console:  console,
		out:      out,
		logger:   logger,
		audit:    shared.NewAuditLogger(logger),
		commands: make(map[string]*command),
	}
	for _, c := range commandTable() {
		sh.commands[c.name] = c
		sh.ordered = append(sh.ordered, c)
	}
	return sh
}

// Run reads commands until exit, logout or end of input. loggedOut reports an explicit logout.
func (sh *Shell) Run(ctx context.Context) (loggedOut bool, err error) {
	caller, _ := shared.CallerFromContext(ctx)
	fmt.Fprintln(sh.out, "Type `help` to list commands.")
	prompt := fmt.Sprintf("epiccrm(%s)> ", caller.Username)

	for {
		if ctx.Err() != nil {
			return false, nil
		}
		line, err := sh.console.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(sh.out)
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("read command: %w", err)
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		err = sh.Dispatch(ctx, args)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			return false, nil
		case errors.Is(err, errLogout):
			return true, nil
		case errors.Is(err, shared.ErrStorageUnavailable):
			sh.report(args[0], err)
			return false, errReported
		default:
			sh.report(args[0], err)
		}
	}
}

// Dispatch runs a single command line. The permission check happens before arguments are read.
func (sh *Shell) Dispatch(ctx context.Context, args []string) error {
	name := strings.ToLower(args[0])
	cmd, ok := sh.commands[name]
	if !ok {
		return shared.NewValidationError("", "unknown command %q, type `help` for the list", args[0])
	}

	if cmd.gated() {
		if err := sh.guard.Require(ctx, cmd.entity, cmd.action); err != nil {
			return err
		}
	} else if cmd.needsCaller {
		if _, ok := shared.CallerFromContext(ctx); !ok {
			return fmt.Errorf("%w: not logged in", shared.ErrNotAuthorized)
		}
	}

	rest := args[1:]
	if len(rest) < cmd.minArgs {
		return cmd.usageError()
	}
	if err := cmd.run(ctx, sh, rest); err != nil {
		return err
	}
	if cmd.gated() && cmd.action != shared.ActionRead {
		entry := shared.AuditLog{Action: cmd.action, Entity: cmd.entity, Command: cmd.name}
		if cmd.action != shared.ActionCreate {
			entry.Target = rest[0]
		}
		if err := sh.audit.Record(ctx, entry); err != nil {
			sh.logger.Warn("audit record", slog.Any("error", err))
		}
	}
	return nil
}

func (sh *Shell) report(name string, err error) {
	var verr *shared.ValidationError
	switch {
	case errors.Is(err, shared.ErrNotAuthorized):
	case errors.As(err, &verr), errors.Is(err, shared.ErrNotFound):
		sh.logger.Info("command rejected", slog.String("command", name), slog.Any("error", err))
	default:
		sh.logger.Error("command failed", slog.String("command", name), slog.Any("error", err))
	}
	fmt.Fprintln(sh.out, shared.UserSafeMessage(err))
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

func callerOf(ctx context.Context) (shared.Caller, error) {
	caller, ok := shared.CallerFromContext(ctx)
	if !ok {
		return shared.Caller{}, fmt.Errorf("%w: not logged in", shared.ErrNotAuthorized)
	}
	return caller, nil
}
