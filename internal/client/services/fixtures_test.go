package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskboard/internal/client/cache"
	"github.com/dmitrijs2005/taskboard/internal/client/client/clienttest"
	"github.com/dmitrijs2005/taskboard/internal/client/notify"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	fake  *clienttest.Fake
	store *cache.Store
	notes *notify.Recorder
	owner string
}

// newFixture signs up and logs in ada@example.com against a fake server.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	fake := clienttest.New()
	ctx := context.Background()

	_, err := fake.SignUp(ctx, "ada@example.com", "secret1", "Ada Lovelace")
	require.NoError(t, err)
	s, err := fake.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)

	store, err := cache.New(16)
	require.NoError(t, err)
	store.SetOwner(s.UserID)

	return &fixture{fake: fake, store: store, notes: &notify.Recorder{}, owner: s.UserID}
}

func (f *fixture) lastNote(t *testing.T) notify.Notification {
	t.Helper()
	n, ok := f.notes.Last()
	require.True(t, ok, "expected a notification")
	return n
}
