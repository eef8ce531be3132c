// internal/service/game_service_test.go
package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"bethouse/internal/domain"
	"bethouse/internal/game"
	"bethouse/internal/repository"
	"bethouse/internal/util"
)

// scriptedSource replays a fixed sequence of values, reduced modulo n.
type scriptedSource struct {
	seq []int
	i   int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.seq[s.i%len(s.seq)]
	s.i++
	return v % n
}

// memAccountRepo is an in-memory AccountRepository for service-level tests.
type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
}

func newMemAccountRepo(seed ...*domain.Account) *memAccountRepo {
	r := &memAccountRepo{accounts: make(map[string]domain.Account)}
	for _, a := range seed {
		r.accounts[a.ID] = *a
	}
	return r
}

func (r *memAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return util.ErrDuplicateEntry
		}
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *memAccountRepo) Get(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, util.ErrAccountNotFound
	}
	copied := a
	return &copied, nil
}

func (r *memAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			copied := a
			return &copied, nil
		}
	}
	return nil, util.ErrAccountNotFound
}

func (r *memAccountRepo) Save(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return util.ErrAccountNotFound
	}
	r.accounts[account.ID] = *account
	return nil
}

// memRoundRepo is an in-memory RoundRepository.
type memRoundRepo struct {
	mu     sync.Mutex
	rounds map[string]domain.BlackjackRound
}

func newMemRoundRepo() *memRoundRepo {
	return &memRoundRepo{rounds: make(map[string]domain.BlackjackRound)}
}

func roundKey(userID, roundID string) string { return userID + "/" + roundID }

func (r *memRoundRepo) Save(ctx context.Context, round *domain.BlackjackRound) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds[roundKey(round.UserID, round.ID)] = *round
	return nil
}

func (r *memRoundRepo) Get(ctx context.Context, userID, roundID string) (*domain.BlackjackRound, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	round, ok := r.rounds[roundKey(userID, roundID)]
	if !ok {
		return nil, util.ErrRoundNotFound
	}
	copied := round
	return &copied, nil
}

func (r *memRoundRepo) Delete(ctx context.Context, userID, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rounds, roundKey(userID, roundID))
	return nil
}

func (r *memRoundRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rounds)
}

// memBetRepo is an in-memory BetRecordRepository. Setting failCreate makes
// every write fail, to exercise the write-mostly history contract.
type memBetRepo struct {
	mu         sync.Mutex
	records    []domain.BetRecord
	failCreate bool
}

func (r *memBetRepo) CreateBetRecord(ctx context.Context, q repository.DBExecutor, record *domain.BetRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("history store unavailable")
	}
	record.ID = int64(len(r.records) + 1)
	r.records = append(r.records, *record)
	return nil
}

func (r *memBetRepo) GetBetRecordsByUserID(ctx context.Context, q repository.DBExecutor, userID string, limit, offset int) ([]domain.BetRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var mine []domain.BetRecord
	for i := len(r.records) - 1; i >= 0; i-- { // newest first
		if r.records[i].UserID == userID {
			mine = append(mine, r.records[i])
		}
	}
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	mine = mine[offset:]
	if limit > 0 && limit < len(mine) {
		mine = mine[:limit]
	}
	return mine, total, nil
}

func (r *memBetRepo) last() *domain.BetRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return nil
	}
	rec := r.records[len(r.records)-1]
	return &rec
}

type fixture struct {
	svc      GameService
	accounts *memAccountRepo
	rounds   *memRoundRepo
	bets     *memBetRepo
}

func newFixture(t *testing.T, balance int64, seq ...int) *fixture {
	t.Helper()
	accounts := newMemAccountRepo(testAccount(balance))
	rounds := newMemRoundRepo()
	bets := &memBetRepo{}
	logger := zap.NewNop()
	balanceSvc := NewBalanceService(accounts, logger)
	src := game.Source(&scriptedSource{seq: seq})
	return &fixture{
		svc:      NewGameService(balanceSvc, rounds, bets, nil, src, logger),
		accounts: accounts,
		rounds:   rounds,
		bets:     bets,
	}
}

func (f *fixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	account, err := f.accounts.Get(context.Background(), "user-1")
	assert.NoError(t, err)
	return account.Balance
}

func TestPlayDice_WinSettlesBalance(t *testing.T) {
	// Roll lands at 71, above the target of 60: stake 30 pays 30 x 2.5 = 75.
	f := newFixture(t, 100, 70)

	play, err := f.svc.PlayDice(context.Background(), "user-1", decimal.NewFromInt(30), game.PredictionOver, 60)
	assert.NoError(t, err)
	assert.Equal(t, 71, play.Result.Roll)
	assert.True(t, play.Result.Won)
	assert.True(t, play.Result.Payout.Equal(decimal.NewFromInt(75)))
	assert.True(t, play.Balance.Equal(decimal.NewFromInt(145)))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(145)))

	rec := f.bets.last()
	assert.NotNil(t, rec)
	assert.Equal(t, domain.GameDice, rec.Game)
	assert.Equal(t, domain.BetResultWin, rec.Result)
	assert.True(t, rec.Payout.Equal(decimal.NewFromInt(75)))
}

func TestPlayDice_LossKeepsDebit(t *testing.T) {
	f := newFixture(t, 100, 10) // roll 11, below target 60

	play, err := f.svc.PlayDice(context.Background(), "user-1", decimal.NewFromInt(30), game.PredictionOver, 60)
	assert.NoError(t, err)
	assert.False(t, play.Result.Won)
	assert.True(t, play.Result.Payout.IsZero())
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(70)))
	assert.Equal(t, domain.BetResultLoss, f.bets.last().Result)
}

func TestPlayDice_InsufficientFunds(t *testing.T) {
	f := newFixture(t, 10, 70)

	_, err := f.svc.PlayDice(context.Background(), "user-1", decimal.NewFromInt(30), game.PredictionOver, 60)
	assert.ErrorIs(t, err, util.ErrInsufficientFunds)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(10)), "a rejected stake must not move the balance")
	assert.Nil(t, f.bets.last())
}

func TestPlayDice_InvalidTargetBeforeDebit(t *testing.T) {
	f := newFixture(t, 100, 70)

	_, err := f.svc.PlayDice(context.Background(), "user-1", decimal.NewFromInt(30), game.PredictionOver, 100)
	assert.ErrorIs(t, err, util.ErrInvalidParameter)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(100)))
}

func TestPlayRoulette_MultiStakeRound(t *testing.T) {
	// Pocket 1 is red and odd: the red stake wins, the even stake loses.
	f := newFixture(t, 100, 1)

	stakes := []game.RouletteStake{
		{Type: game.RouletteColor, Color: "red", Amount: decimal.NewFromInt(10)},
		{Type: game.RouletteEven, Amount: decimal.NewFromInt(5)},
	}
	play, err := f.svc.PlayRoulette(context.Background(), "user-1", stakes)
	assert.NoError(t, err)
	assert.Equal(t, 1, play.Result.Winning)
	assert.Equal(t, "red", play.Result.Color)
	assert.True(t, play.Result.TotalStaked.Equal(decimal.NewFromInt(15)))
	assert.True(t, play.Result.TotalPayout.Equal(decimal.NewFromInt(20)))
	// 100 - 15 staked + 20 payout
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(105)))
	assert.Equal(t, domain.BetResultWin, f.bets.last().Result)
}

func TestPlayRoulette_BreakEvenRoundRecordsWin(t *testing.T) {
	// Pocket 1 is red: the red stake pays 2 while the even stake loses, so the
	// round's payout exactly equals the total staked. That is still a win on
	// one stake, not a push.
	f := newFixture(t, 100, 1)

	stakes := []game.RouletteStake{
		{Type: game.RouletteColor, Color: "red", Amount: decimal.NewFromInt(1)},
		{Type: game.RouletteEven, Amount: decimal.NewFromInt(1)},
	}
	play, err := f.svc.PlayRoulette(context.Background(), "user-1", stakes)
	assert.NoError(t, err)
	assert.True(t, play.Result.TotalPayout.Equal(play.Result.TotalStaked))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.BetResultWin, f.bets.last().Result)
}

func TestPlayRoulette_EmptyRound(t *testing.T) {
	f := newFixture(t, 100, 1)

	_, err := f.svc.PlayRoulette(context.Background(), "user-1", nil)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(100)))
}

func TestPlayRoulette_BadStakeBeforeDebit(t *testing.T) {
	f := newFixture(t, 100, 1)

	stakes := []game.RouletteStake{
		{Type: game.RouletteColor, Color: "red", Amount: decimal.NewFromInt(10)},
		{Type: game.RouletteNumber, Number: 99, Amount: decimal.NewFromInt(5)},
	}
	_, err := f.svc.PlayRoulette(context.Background(), "user-1", stakes)
	assert.ErrorIs(t, err, util.ErrInvalidParameter)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(100)))
}

func TestPlaySlots_TripleWin(t *testing.T) {
	f := newFixture(t, 100, 4) // all three reels land Crown

	play, err := f.svc.PlaySlots(context.Background(), "user-1", decimal.NewFromInt(10))
	assert.NoError(t, err)
	assert.True(t, play.Result.Won)
	assert.True(t, play.Result.Payout.Equal(decimal.NewFromInt(200)))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(290)))
}

func TestPlaySlots_NoMatch(t *testing.T) {
	f := newFixture(t, 100, 0, 1, 2)

	play, err := f.svc.PlaySlots(context.Background(), "user-1", decimal.NewFromInt(10))
	assert.NoError(t, err)
	assert.False(t, play.Result.Won)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(90)))
}

func TestPlaceSportsBet_DebitsAndRecordsPending(t *testing.T) {
	f := newFixture(t, 100, 0)

	play, err := f.svc.PlaceSportsBet(context.Background(), "user-1", decimal.NewFromInt(25), decimal.RequireFromString("2.5"))
	assert.NoError(t, err)
	assert.True(t, play.Balance.Equal(decimal.NewFromInt(75)))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(75)))

	rec := f.bets.last()
	assert.Equal(t, domain.GameSports, rec.Game)
	assert.Equal(t, domain.BetResultPending, rec.Result)
	assert.True(t, rec.Payout.IsZero())
}

func TestPlaceSportsBet_RejectsOddsAtOne(t *testing.T) {
	f := newFixture(t, 100, 0)

	_, err := f.svc.PlaceSportsBet(context.Background(), "user-1", decimal.NewFromInt(25), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, util.ErrInvalidParameter)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(100)))
}

func TestBlackjack_DealThenStand(t *testing.T) {
	// Deal draws rank/suit pairs: player K,Q (20) then dealer 10,6 (16).
	// On stand the dealer must hit 16 and draws a 2, standing on 18.
	f := newFixture(t, 100, 12, 0, 11, 1, 9, 2, 5, 3, 1, 0)
	ctx := context.Background()

	deal, err := f.svc.DealBlackjack(ctx, "user-1", decimal.NewFromInt(10))
	assert.NoError(t, err)
	assert.Equal(t, domain.RoundStateInProgress, deal.State)
	assert.Equal(t, 20, deal.PlayerScore)
	assert.NotNil(t, deal.DealerUpCard)
	assert.Empty(t, deal.Dealer, "the dealer's full hand stays hidden while the round is open")
	assert.True(t, deal.Balance.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, 1, f.rounds.count())

	stand, err := f.svc.StandBlackjack(ctx, "user-1", deal.RoundID)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoundStateSettled, stand.State)
	assert.Equal(t, 20, stand.PlayerScore)
	assert.Equal(t, 18, stand.DealerScore)
	assert.Equal(t, game.OutcomePlayerWin, stand.Outcome)
	assert.True(t, stand.Payout.Equal(decimal.NewFromInt(20)))
	assert.True(t, stand.Balance.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, 0, f.rounds.count(), "settled rounds must not linger")
	assert.Equal(t, domain.BetResultWin, f.bets.last().Result)
}

func TestBlackjack_DealtTwentyOneSettlesImmediately(t *testing.T) {
	// Player is dealt A,K for 21; the round settles at deal time against the
	// dealer's dealt 10,6 without the dealer drawing a card.
	f := newFixture(t, 100, 0, 0, 12, 1, 9, 2, 5, 3)
	ctx := context.Background()

	deal, err := f.svc.DealBlackjack(ctx, "user-1", decimal.NewFromInt(10))
	assert.NoError(t, err)
	assert.Equal(t, domain.RoundStateSettled, deal.State)
	assert.Equal(t, 21, deal.PlayerScore)
	assert.Equal(t, 16, deal.DealerScore, "the dealer's hand must stay as dealt")
	assert.Equal(t, game.OutcomePlayerWin, deal.Outcome)
	assert.True(t, deal.Payout.Equal(decimal.NewFromInt(20)))
	assert.True(t, deal.Balance.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, 0, f.rounds.count(), "a settled deal must not leave an open round")
	assert.Equal(t, domain.BetResultWin, f.bets.last().Result)
}

func TestBlackjack_DealtTwentyOneBothWaysPushes(t *testing.T) {
	// Player A,K and dealer A,Q are both dealt 21: the stake comes back.
	f := newFixture(t, 100, 0, 0, 12, 1, 0, 2, 11, 3)

	deal, err := f.svc.DealBlackjack(context.Background(), "user-1", decimal.NewFromInt(10))
	assert.NoError(t, err)
	assert.Equal(t, domain.RoundStateSettled, deal.State)
	assert.Equal(t, game.OutcomePush, deal.Outcome)
	assert.True(t, deal.Payout.Equal(decimal.NewFromInt(10)))
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.BetResultPush, f.bets.last().Result)
}

func TestBlackjack_HitToBust(t *testing.T) {
	// Player K,Q then hits into a 5: 25, bust. Dealer hand is irrelevant.
	f := newFixture(t, 100, 12, 0, 11, 1, 9, 2, 5, 3, 4, 0)
	ctx := context.Background()

	deal, err := f.svc.DealBlackjack(ctx, "user-1", decimal.NewFromInt(10))
	assert.NoError(t, err)

	hit, err := f.svc.HitBlackjack(ctx, "user-1", deal.RoundID)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoundStateSettled, hit.State)
	assert.Equal(t, game.OutcomePlayerBust, hit.Outcome)
	assert.True(t, hit.Payout.IsZero())
	assert.True(t, hit.Balance.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, 0, f.rounds.count())
	assert.Equal(t, domain.BetResultLoss, f.bets.last().Result)
}

func TestBlackjack_HitBelowBustKeepsRoundOpen(t *testing.T) {
	// Player 2,3 (5) hits an ace: 16, round stays open.
	f := newFixture(t, 100, 1, 0, 2, 1, 9, 2, 5, 3, 0, 0)
	ctx := context.Background()

	deal, err := f.svc.DealBlackjack(ctx, "user-1", decimal.NewFromInt(10))
	assert.NoError(t, err)
	assert.Equal(t, 5, deal.PlayerScore)

	hit, err := f.svc.HitBlackjack(ctx, "user-1", deal.RoundID)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoundStateInProgress, hit.State)
	assert.Equal(t, 16, hit.PlayerScore)
	assert.Equal(t, 1, f.rounds.count())
}

func TestBlackjack_UnknownRound(t *testing.T) {
	f := newFixture(t, 100, 0)

	_, err := f.svc.HitBlackjack(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, util.ErrRoundNotFound)
	_, err = f.svc.StandBlackjack(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, util.ErrRoundNotFound)
}

func TestBlackjack_RoundIsScopedToUser(t *testing.T) {
	f := newFixture(t, 100, 12, 0, 11, 1, 9, 2, 5, 3)
	ctx := context.Background()

	deal, err := f.svc.DealBlackjack(ctx, "user-1", decimal.NewFromInt(10))
	assert.NoError(t, err)

	_, err = f.svc.StandBlackjack(ctx, "someone-else", deal.RoundID)
	assert.ErrorIs(t, err, util.ErrRoundNotFound)
}

func TestPlayDice_HistoryWriteFailureDoesNotBlockSettlement(t *testing.T) {
	f := newFixture(t, 100, 70)
	f.bets.failCreate = true

	play, err := f.svc.PlayDice(context.Background(), "user-1", decimal.NewFromInt(30), game.PredictionOver, 60)
	assert.NoError(t, err)
	assert.True(t, play.Balance.Equal(decimal.NewFromInt(145)), "settlement must not depend on the history store")
}

func TestGetBettingHistory_Pagination(t *testing.T) {
	f := newFixture(t, 1000, 10)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.svc.PlayDice(ctx, "user-1", decimal.NewFromInt(10), game.PredictionOver, 60)
		assert.NoError(t, err)
	}

	records, total, err := f.svc.GetBettingHistory(ctx, "user-1", 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, records, 2)

	records, total, err = f.svc.GetBettingHistory(ctx, "user-1", 2, 4)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, records, 1)
}

func TestRecordBet_Validation(t *testing.T) {
	f := newFixture(t, 100, 0)
	ctx := context.Background()

	_, err := f.svc.RecordBet(ctx, "user-1", domain.GameSports, decimal.Zero, domain.BetResultLoss, decimal.Zero)
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	rec, err := f.svc.RecordBet(ctx, "user-1", domain.GameSports, decimal.NewFromInt(50), domain.BetResultWin, decimal.NewFromInt(125))
	assert.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.True(t, f.balance(t).Equal(decimal.NewFromInt(100)), "recording a bet must not touch the balance")
}
