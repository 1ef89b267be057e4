package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gentry/internal/atom"
	"github.com/mesh-intelligence/gentry/pkg/types"
)

func newImportCmd(flags *rootFlags) *cobra.Command {
	var policy, id string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store an Atom entry document",
		Long: `Import decodes an Atom <entry> document against the builtin kinds and
stores it. The entry's kind comes from its kind category. Elements its kind
does not declare are handled by the undeclared_policy setting, or --policy:
error rejects the document, ignore drops them, preserve keeps them verbatim.
Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return sysError(err)
			}
			return withSession(flags, func(s *session) error {
				if policy != "" {
					p, err := atom.ParsePolicy(policy)
					if err != nil {
						return userError(err)
					}
					s.decoder.Policy = p
				}

				e, err := s.decoder.DecodeBytes(data)
				if err != nil {
					return decodeError(fmt.Errorf("decode %s: %w", args[0], err))
				}
				newID, err := s.entries.Set(id, e)
				if err != nil {
					return storeError(fmt.Errorf("store entry: %w", err))
				}
				s.logger.Debug("entry imported", "id", newID, "kind", e.Owner(), "foreign", len(e.Foreign))

				out := cmd.OutOrStdout()
				if flags.jsonMode {
					return writeJSON(out, summarize(e))
				}
				fmt.Fprintf(out, "Imported %s entry: %s\n", e.Owner(), newID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&policy, "policy", "", "undeclared element policy: error, ignore or preserve")
	cmd.Flags().StringVar(&id, "id", "", "store under this ID instead of the document's")
	return cmd
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write an entry as an Atom document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				e, err := s.entries.Get(args[0])
				if err != nil {
					return storeError(fmt.Errorf("get entry: %w", err))
				}

				var buf bytes.Buffer
				buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
				if err := s.encoder.Encode(&buf, e); err != nil {
					return sysError(err)
				}
				buf.WriteByte('\n')

				if outPath == "" {
					_, err := cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}
				if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
					return sysError(fmt.Errorf("write %s: %w", outPath, err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", e.ID, outPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// decodeError classifies a decoding failure: a bad document is the
// caller's problem.
func decodeError(err error) error {
	switch {
	case errors.Is(err, atom.ErrMalformed),
		errors.Is(err, atom.ErrNotEntry),
		errors.Is(err, types.ErrNotDeclared),
		errors.Is(err, types.ErrCardinalityViolation),
		errors.Is(err, types.ErrInvalidElement):
		return userError(err)
	default:
		return sysError(err)
	}
}
