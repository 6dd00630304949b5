// Package ddragon loads champion names and icons from Data Dragon.
package ddragon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alejandrodnm/soloqbet/internal/ports"
)

const (
	defaultBase    = "https://ddragon.leagueoflegends.com"
	defaultLocale  = "fr_FR"
	defaultVersion = "16.2.1"
	iconFallback   = "https://raw.communitydragon.org/latest/plugins/rcp-be-lol-game-data/global/default/v1/champion-icons/%d.png"
)

// champion is a catalog entry; icon is the Data Dragon image key ("AurelionSol").
type champion struct {
	name string
	icon string
}

// recentChampions covers releases that Data Dragon lags behind on.
var recentChampions = map[int]champion{
	803: {name: "Mel", icon: "Mel"},
	804: {name: "Yunara", icon: "Yunara"},
}

// Catalog implements ports.ChampionCatalog. Lookups before (or after a
// failed) Load fall back to generic names and CommunityDragon icons.
type Catalog struct {
	http   *http.Client
	base   string
	locale string

	mu        sync.RWMutex
	version   string
	champions map[int]champion
}

var _ ports.ChampionCatalog = (*Catalog)(nil)

// NewCatalog returns an empty catalog. Empty base/locale use the defaults.
func NewCatalog(base, locale string) *Catalog {
	if base == "" {
		base = defaultBase
	}
	if locale == "" {
		locale = defaultLocale
	}
	return &Catalog{
		http:      &http.Client{Timeout: 15 * time.Second},
		base:      base,
		locale:    locale,
		version:   defaultVersion,
		champions: make(map[int]champion),
	}
}

type championList struct {
	Data map[string]struct {
		ID   string `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

// Load fetches the latest version and its champion list, replacing the
// current catalog on success.
func (c *Catalog) Load(ctx context.Context) error {
	var versions []string
	if err := c.getJSON(ctx, c.base+"/api/versions.json", &versions); err != nil {
		return fmt.Errorf("ddragon.Load: versions: %w", err)
	}
	if len(versions) == 0 {
		return fmt.Errorf("ddragon.Load: empty version list")
	}
	version := versions[0]

	var list championList
	url := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", c.base, version, c.locale)
	if err := c.getJSON(ctx, url, &list); err != nil {
		return fmt.Errorf("ddragon.Load: champions: %w", err)
	}

	champions := make(map[int]champion, len(list.Data)+len(recentChampions))
	for _, ch := range list.Data {
		id, err := strconv.Atoi(ch.Key)
		if err != nil {
			continue
		}
		champions[id] = champion{name: ch.Name, icon: ch.ID}
	}
	for id, ch := range recentChampions {
		if _, ok := champions[id]; !ok {
			champions[id] = ch
			slog.Debug("champion fallback added", "id", id, "name", ch.name)
		}
	}

	c.mu.Lock()
	c.version = version
	c.champions = champions
	c.mu.Unlock()

	slog.Info("champion catalog loaded", "version", version, "champions", len(champions))
	return nil
}

// Version returns the Data Dragon version icons point to.
func (c *Catalog) Version() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Name returns the localized champion name, or "Champion #<id>".
func (c *Catalog) Name(championID int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ch, ok := c.champions[championID]; ok {
		return ch.name
	}
	return fmt.Sprintf("Champion #%d", championID)
}

// Icon returns the square icon URL for the champion.
func (c *Catalog) Icon(championID int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ch, ok := c.champions[championID]; ok {
		return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", c.base, c.version, ch.icon)
	}
	return fmt.Sprintf(iconFallback, championID)
}

func (c *Catalog) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
