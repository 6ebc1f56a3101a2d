package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epic-events/epic-crm/internal/shared"
)

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			id, err := readSessionFile(rt.cfg.SessionFile)
			if errors.Is(err, shared.ErrSessionExpired) {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}
			if err != nil {
				return err
			}
			if err := rt.connectSessions(cmd.Context()); err != nil && !errors.Is(err, errSessionsDisabled) {
				return err
			}
			if err := rt.endSession(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(out, "Logged out.")
			return nil
		},
	}
}
