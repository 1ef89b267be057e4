package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gentry/pkg/types"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var kind, scheme, term, title string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries with optional filters",
		Long: `List prints stored entries. Filters are ANDed; --scheme and --term must
match the same category.

Example:
  gentry list
  gentry list --kind contact
  gentry list --scheme urn:labels --term friends`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := types.Filter{}
			for key, val := range map[string]string{
				types.FilterKind:   kind,
				types.FilterScheme: scheme,
				types.FilterTerm:   term,
				types.FilterTitle:  title,
			} {
				if val != "" {
					filter[key] = val
				}
			}

			return withSession(flags, func(s *session) error {
				found, err := s.entries.Fetch(filter)
				if err != nil {
					return storeError(fmt.Errorf("fetch entries: %w", err))
				}

				out := cmd.OutOrStdout()
				if flags.jsonMode {
					sums := make([]entrySummary, 0, len(found))
					for _, e := range found {
						sums = append(sums, summarize(e))
					}
					return writeJSON(out, sums)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, e := range found {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Owner(), e.Title)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "entry kind (e.g. contact)")
	cmd.Flags().StringVar(&scheme, "scheme", "", "category scheme")
	cmd.Flags().StringVar(&term, "term", "", "category term")
	cmd.Flags().StringVar(&title, "title", "", "exact title")
	return cmd
}
