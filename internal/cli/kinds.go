package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gentry/pkg/extensions"
	"github.com/mesh-intelligence/gentry/pkg/types"
)

type kindJSON struct {
	Type        types.EntryType  `json:"type"`
	Category    *types.Category  `json:"category,omitempty"`
	Descriptors []descriptorJSON `json:"descriptors"`
}

type descriptorJSON struct {
	Type        types.ElementType `json:"type"`
	Namespace   string            `json:"namespace"`
	LocalName   string            `json:"local_name"`
	Cardinality string            `json:"cardinality"`
}

func newKindsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List entry kinds and the extensions they declare",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := extensions.NewProfile()
			if err != nil {
				return sysError(err)
			}

			var kinds []kindJSON
			for _, k := range profile.Kinds() {
				kj := kindJSON{Type: k.Type, Descriptors: []descriptorJSON{}}
				if k.Category != (types.Category{}) {
					c := k.Category
					kj.Category = &c
				}
				for _, d := range profile.DescriptorsFor(k.Type) {
					kj.Descriptors = append(kj.Descriptors, descriptorJSON{
						Type:        d.Type,
						Namespace:   d.Namespace,
						LocalName:   d.LocalName,
						Cardinality: d.Cardinality.String(),
					})
				}
				kinds = append(kinds, kj)
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				return writeJSON(out, kinds)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, k := range kinds {
				label := "-"
				if k.Category != nil {
					label = k.Category.String()
				}
				fmt.Fprintf(tw, "%s\t%s\n", k.Type, label)
				for _, d := range k.Descriptors {
					fmt.Fprintf(tw, "  %s\t{%s}%s\t%s\n", d.Type, d.Namespace, d.LocalName, d.Cardinality)
				}
			}
			return tw.Flush()
		},
	}
}
