package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmatveev/typemaster/internal/logger"
	"github.com/kmatveev/typemaster/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "typemaster.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}

func TestSaveAndGetProfile(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := model.NewProfile("ann")
	p.Stats.BestWPM = 42
	p.Stats.WeakChars = map[string]int{"q": 3}
	p.Achievements = []string{"first_lesson"}
	require.NoError(t, st.SaveProfile(ctx, p))

	got, err := st.GetProfile(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, "ann", got.Username)
	assert.Equal(t, 42, got.Stats.BestWPM)
	assert.Equal(t, 3, got.Stats.WeakChars["q"])
	assert.Equal(t, []string{"first_lesson"}, got.Achievements)
}

func TestSaveProfileOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := model.NewProfile("ann")
	require.NoError(t, st.SaveProfile(ctx, p))
	p.Stats.BestWPM = 60
	require.NoError(t, st.SaveProfile(ctx, p))

	got, err := st.GetProfile(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, 60, got.Stats.BestWPM)
}

func TestGetProfileNotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuestProfileNeverPersisted(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	guest := model.NewProfile("Guest")
	guest.Guest = true
	require.NoError(t, st.SaveProfile(ctx, guest))

	_, err := st.GetProfile(ctx, "Guest")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMalformedRecordTreatedAsAbsent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.db.ExecContext(ctx,
		`INSERT INTO profiles (username, data, updated_at) VALUES ('bad', '{not json', '')`)
	require.NoError(t, err)

	_, err = st.GetProfile(ctx, "bad")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurrentUserRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.CurrentProfile(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.SaveProfile(ctx, model.NewProfile("ann")))
	require.NoError(t, st.SetCurrentUser(ctx, "ann"))

	got, err := st.CurrentProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann", got.Username)

	require.NoError(t, st.ClearCurrentUser(ctx))
	_, err = st.CurrentProfile(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreMatchesInterface(t *testing.T) {
	var _ ProfileStore = NewMemory()
	var _ ProfileStore = &Store{}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	p := model.NewProfile("ann")
	p.Stats.Streak = 4
	require.NoError(t, m.SaveProfile(ctx, p))
	require.NoError(t, m.SetCurrentUser(ctx, "ann"))

	got, err := m.CurrentProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stats.Streak)

	// Stored as a snapshot: later mutation of p is not visible.
	p.Stats.Streak = 9
	got, err = m.GetProfile(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stats.Streak)
}

func TestMemoryStoreGuestSkipped(t *testing.T) {
	m := NewMemory()
	guest := model.NewProfile("Guest")
	guest.Guest = true
	require.NoError(t, m.SaveProfile(context.Background(), guest))
	_, err := m.GetProfile(context.Background(), "Guest")
	assert.ErrorIs(t, err, ErrNotFound)
}
