package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPermissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Inspect or reset the role permission table",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the loaded role, entity and action grants",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rt, err := loadRuntime()
				if err != nil {
					return err
				}
				defer rt.Close()
				if err := rt.connect(cmd.Context()); err != nil {
					return err
				}
				return renderGrants(cmd.OutOrStdout(), rt.rbac.Grants())
			},
		},
		&cobra.Command{
			Use:   "reseed",
			Short: "Replace the permission table with the defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rt, err := loadRuntime()
				if err != nil {
					return err
				}
				defer rt.Close()
				if err := rt.connect(cmd.Context()); err != nil {
					return err
				}
				if err := rt.rbac.Reseed(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Permission table reset to %d default grants.\n", len(rt.rbac.Grants()))
				return nil
			},
		},
	)
	return cmd
}
