package archive_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shorebird/cordial"
	"github.com/shorebird/cordial/auditlog"
	"github.com/shorebird/cordial/internal/archive"
)

func newTestStore(t *testing.T) *archive.SQLiteStore {
	t.Helper()
	store, err := archive.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSQLiteStore_SaveAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := []auditlog.Entry{
		{ID: 100, UserID: 1, ActionType: auditlog.EventMemberKick, Reason: "spam"},
		{ID: 200, UserID: 2, TargetID: 9, ActionType: auditlog.EventMessagePin,
			Options: auditlog.MessagePinInfo{ChannelID: 5, MessageID: 6}},
	}
	require.NoError(t, store.SaveEntries(ctx, 42, entries))

	records, err := store.ListEntries(ctx, 42, 50, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, cordial.Snowflake(200), records[0].ID)
	assert.Equal(t, cordial.Snowflake(9), records[0].TargetID)
	assert.Equal(t, int(auditlog.EventMessagePin), records[0].ActionType)
	assert.NotEmpty(t, records[0].Options)

	assert.Equal(t, cordial.Snowflake(100), records[1].ID)
	assert.Equal(t, "spam", records[1].Reason)
	assert.Empty(t, records[1].Options)

	// Other guilds see nothing.
	records, err = store.ListEntries(ctx, 43, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteStore_SaveIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := []auditlog.Entry{{ID: 100, UserID: 1, ActionType: auditlog.EventMemberKick}}
	require.NoError(t, store.SaveEntries(ctx, 42, entries))
	require.NoError(t, store.SaveEntries(ctx, 42, entries))

	records, err := store.ListEntries(ctx, 42, 50, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteStore_LastEntryID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	last, err := store.LastEntryID(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, last)

	require.NoError(t, store.SaveEntries(ctx, 42, []auditlog.Entry{
		{ID: 100, UserID: 1, ActionType: 1},
		{ID: 300, UserID: 1, ActionType: 1},
		{ID: 200, UserID: 1, ActionType: 1},
	}))

	last, err = store.LastEntryID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, cordial.Snowflake(300), last)
}

func TestSQLiteStore_Stats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEntries(ctx, 42, []auditlog.Entry{
		{ID: 4194304, UserID: 1, ActionType: 1},
		{ID: 8388608, UserID: 1, ActionType: 1},
		{ID: 12582912, UserID: 2, ActionType: 1},
	}))

	stats, err := store.Stats(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalEntries)
	assert.Equal(t, int64(2), stats.ActorCount)
	require.NotNil(t, stats.OldestEntry)
	require.NotNil(t, stats.NewestEntry)
	assert.False(t, stats.NewestEntry.Before(*stats.OldestEntry))
}
