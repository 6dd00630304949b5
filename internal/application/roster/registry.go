// Package roster keeps the list of linked accounts whose live games are
// watched, and their ranked ladder.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alejandrodnm/soloqbet/internal/application/documents"
	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

type playersDoc struct {
	Entries  []domain.TrackedPlayer `json:"entries"`
	Snapshot *Ladder                `json:"snapshot"`
}

// Waiter blocks until the next provider call is allowed.
// *rate.Limiter satisfies it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Registry reads and writes the players document.
type Registry struct {
	store    ports.DocumentStore
	provider ports.PlayerProvider
	pacer    Waiter
	now      func() time.Time

	mu sync.Mutex
}

// New creates a registry. pacer may be nil when calls need no spacing.
func New(store ports.DocumentStore, provider ports.PlayerProvider, pacer Waiter) *Registry {
	return &Registry{store: store, provider: provider, pacer: pacer, now: time.Now}
}

func (r *Registry) load(ctx context.Context) (*playersDoc, error) {
	doc := &playersDoc{}
	if _, err := documents.Load(ctx, r.store, ports.DocPlayers, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *Registry) save(ctx context.Context, doc *playersDoc) error {
	if doc.Entries == nil {
		doc.Entries = []domain.TrackedPlayer{}
	}
	return documents.Save(ctx, r.store, ports.DocPlayers, doc)
}

func (r *Registry) wait(ctx context.Context) error {
	if r.pacer == nil {
		return nil
	}
	return r.pacer.Wait(ctx)
}

// Link resolves riotID ("Name#TAG") and tracks it for userID. A user who
// links again replaces their previous account.
func (r *Registry) Link(ctx context.Context, userID, userTag, riotID string) (domain.TrackedPlayer, error) {
	if userID == "" {
		return domain.TrackedPlayer{}, domain.ErrInvalidUser
	}
	gameName, tagLine, err := domain.ParseRiotID(riotID)
	if err != nil {
		return domain.TrackedPlayer{}, err
	}

	if err := r.wait(ctx); err != nil {
		return domain.TrackedPlayer{}, fmt.Errorf("roster.Link: %w", err)
	}
	playerID, err := r.provider.ResolvePlayerID(ctx, gameName, tagLine)
	if errors.Is(err, ports.ErrNotFound) {
		return domain.TrackedPlayer{}, domain.ErrPlayerNotFound.WithMessage("account %s#%s not found", gameName, tagLine)
	}
	if err != nil {
		return domain.TrackedPlayer{}, fmt.Errorf("roster.Link: resolve: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return domain.TrackedPlayer{}, fmt.Errorf("roster.Link: %w", err)
	}
	for _, e := range doc.Entries {
		if e.PlayerID == playerID && e.UserID != userID {
			return domain.TrackedPlayer{}, domain.ErrAccountLinked
		}
	}

	player := domain.TrackedPlayer{
		UserID:   userID,
		UserTag:  userTag,
		GameName: gameName,
		TagLine:  tagLine,
		PlayerID: playerID,
		AddedAt:  r.now().UTC(),
	}
	replaced := false
	for i := range doc.Entries {
		if doc.Entries[i].UserID == userID {
			doc.Entries[i] = player
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Entries = append(doc.Entries, player)
	}
	doc.Snapshot = nil
	if err := r.save(ctx, doc); err != nil {
		return domain.TrackedPlayer{}, fmt.Errorf("roster.Link: %w", err)
	}
	slog.Info("account linked", "user", userID, "riot_id", player.RiotID(), "replaced", replaced)
	return player, nil
}

// Unlink stops tracking the user's account.
func (r *Registry) Unlink(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("roster.Unlink: %w", err)
	}
	kept := doc.Entries[:0]
	for _, e := range doc.Entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(doc.Entries) {
		return domain.ErrPlayerNotFound.WithMessage("user %s has no linked account", userID)
	}
	doc.Entries = kept
	doc.Snapshot = nil
	if err := r.save(ctx, doc); err != nil {
		return fmt.Errorf("roster.Unlink: %w", err)
	}
	slog.Info("account unlinked", "user", userID)
	return nil
}

// List returns every tracked player in link order.
func (r *Registry) List(ctx context.Context) ([]domain.TrackedPlayer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("roster.List: %w", err)
	}
	return doc.Entries, nil
}

// Get returns the account linked by userID.
func (r *Registry) Get(ctx context.Context, userID string) (domain.TrackedPlayer, error) {
	players, err := r.List(ctx)
	if err != nil {
		return domain.TrackedPlayer{}, err
	}
	for _, p := range players {
		if p.UserID == userID {
			return p, nil
		}
	}
	return domain.TrackedPlayer{}, domain.ErrPlayerNotFound
}
