package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				if err := s.entries.Delete(args[0]); err != nil {
					return storeError(fmt.Errorf("delete entry: %w", err))
				}
				out := cmd.OutOrStdout()
				if flags.jsonMode {
					return writeJSON(out, map[string]string{"deleted": args[0]})
				}
				fmt.Fprintf(out, "Deleted entry: %s\n", args[0])
				return nil
			})
		},
	}
}
