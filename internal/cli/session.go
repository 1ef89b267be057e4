package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/gentry/internal/atom"
	"github.com/mesh-intelligence/gentry/internal/sqlite"
	"github.com/mesh-intelligence/gentry/pkg/extensions"
	"github.com/mesh-intelligence/gentry/pkg/types"
)

// session is an attached store plus everything a command needs to read and
// write documents against it.
type session struct {
	settings *settings
	profile  *types.Profile
	backend  *sqlite.Backend
	entries  types.EntryTable
	decoder  *atom.Decoder
	encoder  *atom.Encoder
	registry *prometheus.Registry
	logger   *slog.Logger
}

// openSession loads settings, builds the builtin profile and attaches the
// store. The caller must call close.
func openSession(flags *rootFlags) (*session, error) {
	s, err := loadSettings(flags)
	if err != nil {
		return nil, sysError(err)
	}

	profile, err := extensions.NewProfile()
	if err != nil {
		return nil, sysError(fmt.Errorf("build profile: %w", err))
	}

	logger := slog.Default()
	reg := prometheus.NewRegistry()
	codecMetrics := atom.NewMetrics(reg)

	backend := sqlite.NewBackend(profile,
		sqlite.WithLogger(logger),
		sqlite.WithMetrics(sqlite.NewMetrics(reg)),
		sqlite.WithCodecMetrics(codecMetrics))
	if err := backend.Attach(s.store); err != nil {
		return nil, sysError(fmt.Errorf("attach store: %w", err))
	}
	entries, err := backend.Entries()
	if err != nil {
		_ = backend.Detach()
		return nil, sysError(err)
	}

	logger.Debug("session opened",
		"config_dir", s.configDir,
		"data_dir", s.store.DataDir,
		"undeclared_policy", s.policy)

	return &session{
		settings: s,
		profile:  profile,
		backend:  backend,
		entries:  entries,
		decoder:  &atom.Decoder{Profile: profile, Policy: s.policy, Logger: logger, Metrics: codecMetrics},
		encoder:  &atom.Encoder{Indent: "  ", Metrics: codecMetrics},
		registry: reg,
		logger:   logger,
	}, nil
}

// close detaches the store and writes the metrics textfile if configured.
func (s *session) close() error {
	var errs []error
	if err := s.backend.Detach(); err != nil {
		errs = append(errs, fmt.Errorf("detach store: %w", err))
	}
	if path := s.settings.metricsTextfile; path != "" {
		if err := prometheus.WriteToTextfile(path, s.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return sysError(err)
	}
	return nil
}

// withSession runs fn inside an open session and reports the first error.
func withSession(flags *rootFlags, fn func(s *session) error) (err error) {
	s, err := openSession(flags)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// storeError classifies an error returned by the entry table.
func storeError(err error) error {
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidFilter),
		errors.Is(err, types.ErrNotDeclared),
		errors.Is(err, types.ErrCardinalityViolation):
		return userError(err)
	default:
		return sysError(err)
	}
}

// entrySummary is the JSON form of an entry.
type entrySummary struct {
	ID         string                     `json:"id"`
	Kind       types.EntryType            `json:"kind"`
	Title      string                     `json:"title"`
	Updated    string                     `json:"updated,omitempty"`
	Categories []types.Category           `json:"categories"`
	Elements   map[string][]types.Element `json:"elements,omitempty"`
	Foreign    []string                   `json:"foreign,omitempty"`
}

func summarize(e *types.Entry) entrySummary {
	sum := entrySummary{
		ID:         e.ID,
		Kind:       e.Owner(),
		Title:      e.Title,
		Categories: e.Categories().All(),
	}
	if !e.Updated.IsZero() {
		sum.Updated = e.Updated.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	for _, typ := range e.ElementTypes() {
		if sum.Elements == nil {
			sum.Elements = make(map[string][]types.Element)
		}
		sum.Elements[string(typ)] = e.Elements(typ)
	}
	for _, fe := range e.Foreign {
		sum.Foreign = append(sum.Foreign, fmt.Sprintf("{%s}%s", fe.XMLName.Space, fe.XMLName.Local))
	}
	return sum
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
