package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/epic-events/epic-crm/internal/platform/db"
	"github.com/epic-events/epic-crm/internal/shared"
	"github.com/epic-events/epic-crm/internal/users"
)

const (
	adminUsernameFlag = "admin-username"
	adminEmailFlag    = "admin-email"
)

var initFlags = map[string]cobraflags.Flag{
	adminUsernameFlag: &cobraflags.StringFlag{
		Name:  adminUsernameFlag,
		Value: "admin",
		Usage: "Username of the first Management account",
	},
	adminEmailFlag: &cobraflags.StringFlag{
		Name:  adminEmailFlag,
		Value: "",
		Usage: "Email of the first Management account. Prompted when empty",
	},
}

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the schema, default permissions and the first Management account",
		Long: `Apply pending migrations, seed the default permission table when it is empty
and, when no Management account exists yet, create one. The password is prompted.

Running init again is safe: finished steps are skipped.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	cobraflags.RegisterMap(cmd, initFlags)
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	version, err := db.Migrate(rt.cfg.PGDSN)
	if err != nil {
		rt.logger.Error("migrate", slog.Any("error", err))
		return err
	}
	rt.logger.Info("schema migrated", slog.Uint64("version", uint64(version)))
	fmt.Fprintf(out, "Schema at version %d.\n", version)

	if err := rt.connect(ctx); err != nil {
		return err
	}

	seeded, err := rt.rbac.EnsureSeeded(ctx)
	if err != nil {
		return err
	}
	if seeded {
		fmt.Fprintf(out, "Seeded %d default permissions.\n", len(rt.rbac.Grants()))
	} else {
		fmt.Fprintf(out, "Permissions already present (%d grants).\n", len(rt.rbac.Grants()))
	}

	exists, err := hasManagementUser(ctx, rt.services.Users)
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintln(out, "A Management account already exists.")
		return nil
	}

	console := NewConsole(cmd.InOrStdin(), out)
	username := initFlags[adminUsernameFlag].GetString()
	email := initFlags[adminEmailFlag].GetString()
	if email == "" {
		if email, err = console.ReadLine("Email for " + username + ": "); err != nil {
			return err
		}
	}
	password, err := console.NewPassword("Password for " + username + ": ")
	if err != nil {
		return err
	}

	user, err := rt.services.Users.Create(ctx, users.CreateUserRequest{
		Username: username,
		Password: password,
		Role:     shared.RoleManagement,
		Email:    email,
	})
	if err != nil {
		return err
	}
	rt.logger.Info("management account created", slog.String("username", user.Username))
	fmt.Fprintf(out, "Created Management account %s (#%d).\n", user.Username, user.ID)
	return nil
}

func hasManagementUser(ctx context.Context, svc UserService) (bool, error) {
	list, err := svc.List(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range list {
		if u.Role == shared.RoleManagement {
			return true, nil
		}
	}
	return false, nil
}
