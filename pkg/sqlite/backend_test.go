package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gentry/pkg/extensions"
	"github.com/mesh-intelligence/gentry/pkg/types"
)

func TestNewBackendStoresContacts(t *testing.T) {
	profile, err := extensions.NewProfile()
	require.NoError(t, err)

	store := NewBackend(profile, nil)
	_, err = store.Entries()
	assert.ErrorIs(t, err, types.ErrStoreDetached)

	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer store.Detach()

	entries, err := store.Entries()
	require.NoError(t, err)

	c := extensions.NewContactEntry(profile)
	c.Title = "Ada"
	require.NoError(t, c.AddEmailAddress(&extensions.Email{Address: "ada@x.com"}))
	id, err := entries.Set("", c.Entry)
	require.NoError(t, err)

	got, err := entries.Get(id)
	require.NoError(t, err)
	contact, ok := extensions.AsContact(got)
	require.True(t, ok)
	assert.Equal(t, "ada@x.com", contact.EmailAddresses().At(0).Address)
}
