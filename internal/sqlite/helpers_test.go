package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gentry/pkg/extensions"
	"github.com/mesh-intelligence/gentry/pkg/types"
)

func testProfile(t *testing.T) *types.Profile {
	t.Helper()
	p, err := extensions.NewProfile()
	require.NoError(t, err)
	return p
}

// attachTestBackend attaches a backend on a temporary data directory and
// detaches it when the test ends.
func attachTestBackend(t *testing.T, dir string, sync string, opts ...Option) (*Backend, types.EntryTable) {
	t.Helper()
	b := NewBackend(testProfile(t), opts...)
	require.NoError(t, b.Attach(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      dir,
		SyncStrategy: sync,
	}))
	t.Cleanup(func() { _ = b.Detach() })
	entries, err := b.Entries()
	require.NoError(t, err)
	return b, entries
}

func newContact(t *testing.T, b *Backend, title string, emails ...string) *extensions.ContactEntry {
	t.Helper()
	c := extensions.NewContactEntry(b.profile)
	c.Title = title
	for _, addr := range emails {
		require.NoError(t, c.AddEmailAddress(&extensions.Email{Address: addr}))
	}
	return c
}
