package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print an entry as an Atom document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				e, err := s.entries.Get(args[0])
				if err != nil {
					return storeError(fmt.Errorf("get entry: %w", err))
				}
				out := cmd.OutOrStdout()
				if flags.jsonMode {
					return writeJSON(out, summarize(e))
				}
				if err := s.encoder.Encode(out, e); err != nil {
					return sysError(err)
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}
}
