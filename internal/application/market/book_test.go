package market

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/soloqbet/internal/adapters/storage"
	"github.com/alejandrodnm/soloqbet/internal/application/wallet"
	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

type recordingNotifier struct {
	mu        sync.Mutex
	opened    []string
	resolved  []string
	cancelled map[string]int
}

func (n *recordingNotifier) MarketOpened(_ context.Context, m *domain.Market) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.opened = append(n.opened, m.MatchID)
	return nil
}

func (n *recordingNotifier) MarketResolved(_ context.Context, m *domain.Market) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolved = append(n.resolved, m.MatchID)
	return errors.New("channel gone")
}

func (n *recordingNotifier) MarketCancelled(_ context.Context, m *domain.Market, refunded int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancelled == nil {
		n.cancelled = make(map[string]int)
	}
	n.cancelled[m.MatchID] = refunded
	return nil
}

type fixture struct {
	book     *Book
	ledger   *wallet.Ledger
	store    *storage.MemoryStore
	notifier *recordingNotifier
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    storage.NewMemoryStore(),
		notifier: &recordingNotifier{},
		now:      time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC),
	}
	f.ledger = wallet.New(f.store, 1000)
	f.book = New(f.store, f.ledger, f.notifier, nil, Config{})
	f.book.now = func() time.Time { return f.now }
	ids := 0
	f.book.newID = func() string { ids++; return fmt.Sprintf("w%d", ids) }
	t.Cleanup(f.book.Stop)
	return f
}

var tracked = domain.TrackedPlayer{
	UserID:   "streamer",
	GameName: "Faker",
	TagLine:  "KR1",
	PlayerID: "p3",
}

func liveMatch(gameID int64) domain.LiveMatch {
	champs := []int{122, 64, 103, 222, 412, 86, 11, 7, 51, 89}
	spells := [][2]int{{4, 12}, {4, 11}, {4, 14}, {4, 7}, {4, 3}, {4, 12}, {4, 11}, {4, 14}, {4, 7}, {4, 3}}
	m := domain.LiveMatch{GameID: gameID, QueueID: domain.QueueRankedSolo, StartTime: time.Date(2025, 3, 1, 19, 58, 0, 0, time.UTC)}
	for i := range champs {
		team := domain.TeamBlue
		if i >= 5 {
			team = domain.TeamRed
		}
		m.Participants = append(m.Participants, domain.LiveParticipant{
			PlayerID:   fmt.Sprintf("p%d", i+1),
			ChampionID: champs[i],
			Spell1:     spells[i][0],
			Spell2:     spells[i][1],
			TeamID:     team,
		})
	}
	return m
}

func (f *fixture) open(t *testing.T) *domain.Market {
	t.Helper()
	m, created, err := f.book.Create(context.Background(), liveMatch(7001), tracked, nil)
	require.NoError(t, err)
	require.True(t, created)
	return m
}

func (f *fixture) balance(t *testing.T, user string) int64 {
	t.Helper()
	w, err := f.ledger.Get(context.Background(), user)
	require.NoError(t, err)
	return w.Balance
}

func TestCreate_BuildsRostersAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := f.open(t)
	assert.Equal(t, "7001", m.MatchID)
	assert.Equal(t, domain.MarketOpen, m.Status)
	assert.Equal(t, f.now.Add(DefaultWindow), m.BettingEndsAt)
	assert.Equal(t, domain.SideBlue, m.Tracked.Side)
	assert.Equal(t, 103, m.Tracked.ChampionID)
	require.Len(t, m.Blue, 5)
	require.Len(t, m.Red, 5)
	assert.Equal(t, domain.RoleJungle, m.Blue[1].Role)
	assert.Equal(t, int64(0), m.Pools.Total())

	again, created, err := f.book.Create(ctx, liveMatch(7001), tracked, nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m.CreatedAt, again.CreatedAt)
	assert.Equal(t, []string{"7001"}, f.notifier.opened)

	_, _, err = f.book.Create(ctx, liveMatch(7002), domain.TrackedPlayer{PlayerID: "ghost"}, nil)
	assert.ErrorIs(t, err, domain.ErrPlayerNotInMatch)
}

func TestCreate_UsesRosterFunc(t *testing.T) {
	f := newFixture(t)
	name := "Hide on bush"
	build := func(ctx context.Context, lp domain.LiveParticipant) domain.Participant {
		p := BareRoster(ctx, lp)
		p.ChampionName = fmt.Sprintf("champ-%d", lp.ChampionID)
		if lp.PlayerID == "p3" {
			p.DisplayName = &name
		}
		return p
	}

	m, _, err := f.book.Create(context.Background(), liveMatch(7001), tracked, build)
	require.NoError(t, err)
	assert.Equal(t, "champ-103", m.Tracked.ChampionName)
	for _, p := range m.Blue {
		if p.PlayerID == "p3" {
			require.NotNil(t, p.DisplayName)
			assert.Equal(t, name, *p.DisplayName)
		}
	}
}

func TestPlaceBet_ConcreteScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)

	r, err := f.book.PlaceBet(ctx, "7001", "alice", domain.SideBlue, 100)
	require.NoError(t, err)
	assert.Equal(t, 2.0, r.OddsAtBet)
	assert.Equal(t, 1.01, r.NewOdds.Blue)
	assert.Equal(t, 5.0, r.NewOdds.Red)
	assert.Equal(t, int64(900), r.Balance)

	r, err = f.book.PlaceBet(ctx, "7001", "bob", domain.SideRed, 300)
	require.NoError(t, err)
	assert.Equal(t, 5.0, r.OddsAtBet)
	assert.Equal(t, int64(400), r.TotalPool)

	m, err := f.book.Resolve(ctx, "7001", domain.SideRed)
	require.NoError(t, err)
	assert.Equal(t, domain.MarketResolved, m.Status)
	require.Len(t, m.Results.Winners, 1)
	assert.Equal(t, int64(1500), m.Results.Winners[0].Winnings)
	assert.Equal(t, int64(1500), m.Results.TotalDistributed)

	assert.Equal(t, int64(700+1500), f.balance(t, "bob"))
	alice, err := f.ledger.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(900), alice.Balance)
	assert.Equal(t, 1, alice.BetsLost)
	assert.Zero(t, alice.TotalLost)
}

func TestPlaceBet_PoolsMatchStakes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)

	stakes := []struct {
		user  string
		side  domain.Side
		stake int64
	}{
		{"a", domain.SideBlue, 10}, {"b", domain.SideRed, 250}, {"c", domain.SideBlue, 999},
		{"d", domain.SideRed, 10}, {"e", domain.SideRed, 1000}, {"f", domain.SideBlue, 37},
	}
	for _, s := range stakes {
		_, err := f.book.PlaceBet(ctx, "7001", s.user, s.side, s.stake)
		require.NoError(t, err)
	}

	m, err := f.book.Get(ctx, "7001")
	require.NoError(t, err)
	for _, side := range []domain.Side{domain.SideBlue, domain.SideRed} {
		var sum int64
		for _, w := range m.Wagers.For(side) {
			sum += w.Stake
		}
		assert.Equal(t, sum, m.Pools.For(side), side)
	}
	assert.Equal(t, 6, m.WagerCount())
}

func TestPlaceBet_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)

	_, err := f.book.PlaceBet(ctx, "nope", "a", domain.SideBlue, 100)
	assert.ErrorIs(t, err, domain.ErrMarketNotFound)

	_, err = f.book.PlaceBet(ctx, "7001", "a", domain.Side("green"), 100)
	assert.ErrorIs(t, err, domain.ErrInvalidSide)

	_, err = f.book.PlaceBet(ctx, "7001", "a", domain.SideBlue, 9)
	assert.ErrorIs(t, err, domain.ErrStakeTooLow)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.book.PlaceBet(ctx, "7001", "a", domain.SideBlue, 10001)
	assert.ErrorIs(t, err, domain.ErrStakeTooHigh)

	_, err = f.book.PlaceBet(ctx, "7001", "a", domain.SideBlue, 1001)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	m, err := f.book.Get(ctx, "7001")
	require.NoError(t, err)
	assert.Zero(t, m.Pools.Total())
	assert.Zero(t, m.WagerCount())
	assert.Equal(t, int64(1000), f.balance(t, "a"))
}

func TestPlaceBet_DuplicateLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)

	_, err := f.book.PlaceBet(ctx, "7001", "a", domain.SideBlue, 100)
	require.NoError(t, err)

	for _, side := range []domain.Side{domain.SideBlue, domain.SideRed} {
		_, err = f.book.PlaceBet(ctx, "7001", "a", side, 50)
		assert.ErrorIs(t, err, domain.ErrDuplicateBet)
	}

	m, err := f.book.Get(ctx, "7001")
	require.NoError(t, err)
	assert.Equal(t, int64(100), m.Pools.Blue)
	assert.Zero(t, m.Pools.Red)
	assert.Equal(t, int64(900), f.balance(t, "a"))
}

func TestPlaceBet_ClosesAfterDeadline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)

	f.now = f.now.Add(DefaultWindow + time.Second)
	_, err := f.book.PlaceBet(ctx, "7001", "a", domain.SideBlue, 100)
	assert.ErrorIs(t, err, domain.ErrMarketClosed)

	m, err := f.book.Get(ctx, "7001")
	require.NoError(t, err)
	assert.Equal(t, domain.MarketClosed, m.Status)
	assert.Equal(t, int64(1000), f.balance(t, "a"))
}

func TestPlaceBet_RefundsWhenSaveFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)
	// Create the wallet before the store starts failing.
	f.balance(t, "a")

	f.book.store = failingStore{f.store}
	_, err := f.book.PlaceBet(ctx, "7001", "a", domain.SideBlue, 100)
	require.Error(t, err)
	assert.Equal(t, domain.KindPersistence, domain.KindOf(err))
	assert.Equal(t, int64(1000), f.balance(t, "a"))
}

// failingStore fails writes of the markets document only.
type failingStore struct{ *storage.MemoryStore }

func (s failingStore) Put(ctx context.Context, name string, data []byte) error {
	if name == ports.DocMarkets {
		return errors.New("disk full")
	}
	return s.MemoryStore.Put(ctx, name, data)
}

func TestClose_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)

	require.NoError(t, f.book.Close(ctx, "7001"))
	require.NoError(t, f.book.Close(ctx, "7001"))
	assert.ErrorIs(t, f.book.Close(ctx, "nope"), domain.ErrMarketNotFound)

	_, err := f.book.PlaceBet(ctx, "7001", "a", domain.SideBlue, 100)
	assert.ErrorIs(t, err, domain.ErrMarketClosed)
}

func TestCloseExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)

	n, err := f.book.CloseExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.now = f.now.Add(4 * time.Minute)
	n, err = f.book.CloseExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTimerForcesClose(t *testing.T) {
	f := newFixture(t)
	f.book.cfg.Window = 20 * time.Millisecond
	f.open(t)

	assert.Eventually(t, func() bool {
		m, err := f.book.Get(context.Background(), "7001")
		return err == nil && m.Status == domain.MarketClosed
	}, time.Second, 10*time.Millisecond)
}

func TestResolve_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.book.Resolve(ctx, "7001", domain.SideBlue)
	assert.ErrorIs(t, err, domain.ErrMarketNotFound)

	f.open(t)
	_, err = f.book.Resolve(ctx, "7001", domain.SideBlue)
	require.NoError(t, err)

	_, err = f.book.Resolve(ctx, "7001", domain.SideRed)
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)

	active, err := f.book.Active(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
	assert.Equal(t, []string{"7001"}, f.notifier.resolved, "announcement failure is not fatal")
}

func TestCancel_RefundsExactly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)

	for i, stake := range []int64{10, 500, 1000} {
		side := domain.SideBlue
		if i%2 == 1 {
			side = domain.SideRed
		}
		_, err := f.book.PlaceBet(ctx, "7001", fmt.Sprintf("u%d", i), side, stake)
		require.NoError(t, err)
	}

	n, err := f.book.Cancel(ctx, "7001")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	for i := range 3 {
		w, err := f.ledger.Get(ctx, fmt.Sprintf("u%d", i))
		require.NoError(t, err)
		assert.Equal(t, int64(1000), w.Balance)
		assert.Zero(t, w.TotalBets())
	}
	assert.Equal(t, 3, f.notifier.cancelled["7001"])

	_, err = f.book.Cancel(ctx, "7001")
	assert.ErrorIs(t, err, domain.ErrMarketNotFound)

	m, err := f.book.Get(ctx, "7001")
	require.NoError(t, err)
	assert.Equal(t, domain.MarketCancelled, m.Status)
	require.NotNil(t, m.CancelledAt)
}

func TestCancelAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		_, _, err := f.book.Create(ctx, liveMatch(id), tracked, nil)
		require.NoError(t, err)
	}
	_, err := f.book.PlaceBet(ctx, "2", "a", domain.SideRed, 40)
	require.NoError(t, err)

	markets, refunded, err := f.book.CancelAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, markets)
	assert.Equal(t, 1, refunded)
	assert.Equal(t, int64(1000), f.balance(t, "a"))

	active, err := f.book.Active(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestHistory_CappedAndPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book.cfg.HistoryLimit = 3

	for id := int64(1); id <= 5; id++ {
		_, _, err := f.book.Create(ctx, liveMatch(id), tracked, nil)
		require.NoError(t, err)
		_, err = f.book.PlaceBet(ctx, fmt.Sprint(id), "a", domain.SideBlue, 100)
		require.NoError(t, err)
		winner := domain.SideBlue
		if id%2 == 0 {
			winner = domain.SideRed
		}
		_, err = f.book.Resolve(ctx, fmt.Sprint(id), winner)
		require.NoError(t, err)
		f.now = f.now.Add(time.Minute)
	}

	_, err := f.book.Get(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrMarketNotFound, "oldest entries dropped")

	records, err := f.book.HistoryForUser(ctx, "a", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "5", records[0].MatchID)
	assert.True(t, records[0].Won())
	assert.Equal(t, int64(200), records[0].Delta)
	assert.Equal(t, "4", records[1].MatchID)
	assert.Equal(t, int64(-100), records[1].Delta)

	none, err := f.book.HistoryForUser(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOdds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.open(t)

	_, err := f.book.PlaceBet(ctx, "7001", "a", domain.SideBlue, 100)
	require.NoError(t, err)
	_, err = f.book.PlaceBet(ctx, "7001", "b", domain.SideRed, 300)
	require.NoError(t, err)

	odds, err := f.book.Odds(ctx, "7001")
	require.NoError(t, err)
	assert.Equal(t, 4.0, odds.Blue)
	assert.Equal(t, 1.33, odds.Red)

	_, err = f.book.Odds(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrMarketNotFound)
}

func TestRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.book.Create(ctx, liveMatch(1), tracked, nil)
	require.NoError(t, err)
	f.now = f.now.Add(2 * time.Minute)
	_, _, err = f.book.Create(ctx, liveMatch(2), tracked, nil)
	require.NoError(t, err)
	f.book.Stop()

	restarted := New(f.store, f.ledger, nil, nil, Config{})
	restarted.now = func() time.Time { return f.now.Add(90 * time.Second) }
	t.Cleanup(restarted.Stop)

	n, err := restarted.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	m1, err := restarted.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.MarketClosed, m1.Status)
	m2, err := restarted.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, domain.MarketOpen, m2.Status)
	assert.Len(t, restarted.timers, 1)
}
