package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gentry/internal/paths"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize gentry storage",
		Long:  "Create the configuration and data directories, write a default\nconfig.yaml if none exists, then initialize the entry store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(flags.configDir)
			if err != nil {
				return sysError(fmt.Errorf("resolve config dir: %w", err))
			}

			// Only a data dir given on the command line is recorded; otherwise
			// the file leaves data_dir to the environment and the default.
			created, err := writeConfigIfMissing(configDir, flags.dataDir)
			if err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}

			return withSession(flags, func(s *session) error {
				out := cmd.OutOrStdout()
				if flags.jsonMode {
					return writeJSON(out, map[string]any{
						"config_dir":     s.settings.configDir,
						"data_dir":       s.settings.store.DataDir,
						"config_created": created,
					})
				}
				fmt.Fprintf(out, "Initialized gentry in %s (config %s)\n", s.settings.store.DataDir, s.settings.configDir)
				return nil
			})
		},
	}
}
