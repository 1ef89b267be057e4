package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gentry/pkg/extensions"
)

func newContactCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contact entries",
	}
	cmd.AddCommand(newContactAddCmd(flags))
	return cmd
}

type contactAddFlags struct {
	title     string
	emails    []string
	ims       []string
	phones    []string
	addresses []string
	geos      []string
}

func newContactAddCmd(flags *rootFlags) *cobra.Command {
	var f contactAddFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a contact entry",
		Long: `Add creates a contact entry. Every extension flag may be repeated.

Example:
  gentry contact add --title "Ada Lovelace" --email ada@x.com --email ada@y.org
  gentry contact add --title Ada --im jabber:ada@jabber.org --geo 51.5,-0.13`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				c, err := buildContact(s, f)
				if err != nil {
					return userError(err)
				}
				id, err := s.entries.Set("", c.Entry)
				if err != nil {
					return storeError(fmt.Errorf("create contact: %w", err))
				}
				s.logger.Debug("contact created", "id", id, "elements", len(c.ElementTypes()))

				out := cmd.OutOrStdout()
				if flags.jsonMode {
					return writeJSON(out, summarize(c.Entry))
				}
				fmt.Fprintf(out, "Created contact: %s\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.title, "title", "", "contact name (required)")
	cmd.Flags().StringArrayVar(&f.emails, "email", nil, "email address")
	cmd.Flags().StringArrayVar(&f.ims, "im", nil, "IM address as [protocol:]address")
	cmd.Flags().StringArrayVar(&f.phones, "phone", nil, "phone number")
	cmd.Flags().StringArrayVar(&f.addresses, "address", nil, `postal address; "\n" separates lines`)
	cmd.Flags().StringArrayVar(&f.geos, "geo", nil, "location as lat,lon[,elev]")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func buildContact(s *session, f contactAddFlags) (*extensions.ContactEntry, error) {
	c := extensions.NewContactEntry(s.profile)
	c.Title = f.title

	for _, addr := range f.emails {
		if err := c.AddEmailAddress(&extensions.Email{Address: addr}); err != nil {
			return nil, err
		}
	}
	for _, raw := range f.ims {
		im, err := extensions.ParseIm(raw)
		if err != nil {
			return nil, err
		}
		if err := c.AddImAddress(im); err != nil {
			return nil, err
		}
	}
	for _, num := range f.phones {
		if err := c.AddPhoneNumber(&extensions.PhoneNumber{Number: num}); err != nil {
			return nil, err
		}
	}
	for _, addr := range f.addresses {
		if err := c.AddPostalAddress(&extensions.PostalAddress{Value: unescapeLines(addr)}); err != nil {
			return nil, err
		}
	}
	for _, raw := range f.geos {
		pt, err := extensions.ParseGeoPt(raw)
		if err != nil {
			return nil, err
		}
		if err := c.AddLocation(pt); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// unescapeLines turns the two-character sequence \n into a line break.
func unescapeLines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == 'n' {
			out = append(out, '\n')
			i++
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
