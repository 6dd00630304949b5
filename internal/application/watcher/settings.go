package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/alejandrodnm/soloqbet/internal/application/documents"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// Settings are the runtime toggles changed by admins. When stored they
// take precedence over the file configuration.
type Settings struct {
	Enabled        bool   `json:"enabled"`
	ChannelID      string `json:"channelId"`
	RoleID         string `json:"roleId"`
	PollIntervalMs int64  `json:"pollIntervalMs"`
}

// PollInterval returns the stored cadence, zero when unset.
func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMs) * time.Millisecond
}

// LoadSettings reads the config document. found is false when it was never
// saved.
func LoadSettings(ctx context.Context, store ports.DocumentStore) (s Settings, found bool, err error) {
	found, err = documents.Load(ctx, store, ports.DocConfig, &s)
	if err != nil {
		return Settings{}, false, fmt.Errorf("watcher.LoadSettings: %w", err)
	}
	return s, found, nil
}

// SaveSettings replaces the config document.
func SaveSettings(ctx context.Context, store ports.DocumentStore, s Settings) error {
	if err := documents.Save(ctx, store, ports.DocConfig, s); err != nil {
		return fmt.Errorf("watcher.SaveSettings: %w", err)
	}
	return nil
}
