package roster

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/alejandrodnm/soloqbet/internal/adapters/storage"
	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

type fakePlayers struct {
	ids   map[string]string
	ranks map[string]*domain.RankSummary
	fail  error
}

func (f *fakePlayers) ResolvePlayerID(_ context.Context, gameName, tagLine string) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	id, ok := f.ids[gameName+"#"+tagLine]
	if !ok {
		return "", fmt.Errorf("account: %w", ports.ErrNotFound)
	}
	return id, nil
}

func (f *fakePlayers) DisplayName(context.Context, string) (string, error) { return "", nil }

func (f *fakePlayers) RankSummary(_ context.Context, playerID string) (*domain.RankSummary, error) {
	if r, ok := f.ranks[playerID]; ok {
		return r, nil
	}
	return nil, ports.ErrNotFound
}

func newTestRegistry() (*Registry, *fakePlayers) {
	players := &fakePlayers{
		ids: map[string]string{"Faker#KR1": "puuid-faker", "Caps#EUW": "puuid-caps", "Nobody#EUW": "puuid-nobody"},
		ranks: map[string]*domain.RankSummary{
			"puuid-faker": {Tier: "CHALLENGER", Division: "I", Points: 1500},
			"puuid-caps":  {Tier: "DIAMOND", Division: "II", Points: 40},
		},
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	return New(storage.NewMemoryStore(), players, limiter), players
}

func TestLink(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry()

	p, err := r.Link(ctx, "u1", "user#1", "Faker#KR1")
	require.NoError(t, err)
	assert.Equal(t, "puuid-faker", p.PlayerID)
	assert.Equal(t, "Faker#KR1", p.RiotID())

	_, err = r.Link(ctx, "u2", "user#2", "Faker#KR1")
	assert.ErrorIs(t, err, domain.ErrAccountLinked)

	// re-linking replaces in place
	_, err = r.Link(ctx, "u1", "user#1", "Caps#EUW")
	require.NoError(t, err)
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "puuid-caps", list[0].PlayerID)

	got, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Caps", got.GameName)
}

func TestLink_Errors(t *testing.T) {
	ctx := context.Background()
	r, players := newTestRegistry()

	_, err := r.Link(ctx, "u1", "", "NoTag")
	assert.ErrorIs(t, err, domain.ErrInvalidRiotID)

	_, err = r.Link(ctx, "u1", "", "Ghost#EUW")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)

	_, err = r.Link(ctx, "", "", "Faker#KR1")
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	players.fail = &domain.ProviderError{Op: "account", Status: 503, Err: errors.New("unavailable")}
	_, err = r.Link(ctx, "u1", "", "Faker#KR1")
	assert.Equal(t, domain.KindProvider, domain.KindOf(err))
}

func TestUnlink(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry()
	_, err := r.Link(ctx, "u1", "", "Faker#KR1")
	require.NoError(t, err)

	require.NoError(t, r.Unlink(ctx, "u1"))
	assert.ErrorIs(t, r.Unlink(ctx, "u1"), domain.ErrPlayerNotFound)

	_, err = r.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestRefresh_SortsLadder(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry()
	for user, id := range map[string]string{"a": "Nobody#EUW", "b": "Caps#EUW", "c": "Faker#KR1"} {
		_, err := r.Link(ctx, user, "", id)
		require.NoError(t, err)
	}

	ladder, err := r.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, ladder.Items, 3)
	assert.Equal(t, "c", ladder.Items[0].UserID)
	assert.Equal(t, "b", ladder.Items[1].UserID)
	assert.Equal(t, -1, ladder.Items[2].Score)
	assert.Nil(t, ladder.Items[2].Rank)

	stored, err := r.Standings(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Items, 3)

	require.NoError(t, r.Unlink(ctx, "a"))
	stored, err = r.Standings(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored, "roster change invalidates the ladder")
}

func TestScore(t *testing.T) {
	assert.Equal(t, -1, Score(nil))
	assert.Equal(t, 3*1000+2*100+50, Score(&domain.RankSummary{Tier: "GOLD", Division: "II", Points: 50}))
	assert.Equal(t, 9*1000+3*100+1500, Score(&domain.RankSummary{Tier: "CHALLENGER", Points: 1500}))
	assert.Equal(t, -1, Score(&domain.RankSummary{Tier: "WOOD", Division: "I"}))
}
