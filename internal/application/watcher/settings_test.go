package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/soloqbet/internal/adapters/storage"
)

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	_, found, err := LoadSettings(ctx, store)
	require.NoError(t, err)
	assert.False(t, found)

	want := Settings{Enabled: true, ChannelID: "42", RoleID: "7", PollIntervalMs: 30000}
	require.NoError(t, SaveSettings(ctx, store, want))

	got, found, err := LoadSettings(ctx, store)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
	assert.Equal(t, 30*time.Second, got.PollInterval())
}
