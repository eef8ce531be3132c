// internal/service/game_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bethouse/internal/domain"
	"bethouse/internal/game"
	"bethouse/internal/metrics"
	"bethouse/internal/repository"
	"bethouse/internal/util"
)

// GameService orchestrates wager settlement: debit the stake, resolve the
// outcome, credit any payout, and append the betting-history record. Every
// game resolves in one call except blackjack, which holds an in-progress
// round between deal and stand.
type GameService interface {
	PlayDice(ctx context.Context, userID string, amount decimal.Decimal, prediction game.DicePrediction, target float64) (*DicePlay, error)
	PlayRoulette(ctx context.Context, userID string, stakes []game.RouletteStake) (*RoulettePlay, error)
	PlaySlots(ctx context.Context, userID string, amount decimal.Decimal) (*SlotsPlay, error)
	PlaceSportsBet(ctx context.Context, userID string, amount, odds decimal.Decimal) (*SportsPlay, error)

	DealBlackjack(ctx context.Context, userID string, amount decimal.Decimal) (*BlackjackPlay, error)
	HitBlackjack(ctx context.Context, userID, roundID string) (*BlackjackPlay, error)
	StandBlackjack(ctx context.Context, userID, roundID string) (*BlackjackPlay, error)

	GetBettingHistory(ctx context.Context, userID string, limit, offset int) ([]domain.BetRecord, int64, error)
	RecordBet(ctx context.Context, userID string, g domain.Game, betAmount decimal.Decimal, result domain.BetResult, payout decimal.Decimal) (*domain.BetRecord, error)
}

// DicePlay is the settled result of a dice wager plus the resulting balance.
type DicePlay struct {
	Result  *game.DiceResult `json:"result"`
	Balance decimal.Decimal  `json:"balance"`
}

// RoulettePlay is the settled result of a roulette round plus the resulting balance.
type RoulettePlay struct {
	Result  *game.RouletteResult `json:"result"`
	Balance decimal.Decimal      `json:"balance"`
}

// SlotsPlay is the settled result of a slots spin plus the resulting balance.
type SlotsPlay struct {
	Result  *game.SlotsResult `json:"result"`
	Balance decimal.Decimal   `json:"balance"`
}

// SportsPlay acknowledges a placed fixed-odds bet. Settlement happens
// externally; only the debit is applied here.
type SportsPlay struct {
	Odds    decimal.Decimal `json:"odds"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

// BlackjackPlay is the current view of a blackjack round. The dealer's hand
// is partially hidden while the player still has decisions to make.
type BlackjackPlay struct {
	RoundID      string                `json:"round_id"`
	State        domain.RoundState     `json:"state"`
	Player       domain.Hand           `json:"player"`
	PlayerScore  int                   `json:"player_score"`
	DealerUpCard *domain.Card          `json:"dealer_up_card,omitempty"`
	Dealer       domain.Hand           `json:"dealer,omitempty"`
	DealerScore  int                   `json:"dealer_score,omitempty"`
	Outcome      game.BlackjackOutcome `json:"outcome,omitempty"`
	Payout       decimal.Decimal       `json:"payout"`
	Balance      decimal.Decimal       `json:"balance"`
}

// gameService implements the GameService interface.
type gameService struct {
	balance    BalanceService
	rounds     repository.RoundRepository
	betRecords repository.BetRecordRepository
	db         repository.DBExecutor
	src        game.Source
	logger     *zap.Logger
}

// NewGameService creates a new instance of GameService.
func NewGameService(
	balance BalanceService,
	rounds repository.RoundRepository,
	betRecords repository.BetRecordRepository,
	db repository.DBExecutor,
	src game.Source,
	logger *zap.Logger,
) GameService {
	return &gameService{
		balance:    balance,
		rounds:     rounds,
		betRecords: betRecords,
		db:         db,
		src:        src,
		logger:     logger,
	}
}

// recordBet appends a betting-history entry. History is a side collaborator:
// a failed write is logged, never surfaced, and never rolls back settlement.
func (s *gameService) recordBet(ctx context.Context, userID string, g domain.Game, betAmount decimal.Decimal, result domain.BetResult, payout decimal.Decimal) {
	rec := domain.NewBetRecord(userID, g, betAmount, result, payout)
	if err := s.betRecords.CreateBetRecord(ctx, s.db, rec); err != nil {
		s.logger.Warn("failed to write bet record",
			zap.String("user_id", userID),
			zap.String("game", string(g)),
			zap.Error(err))
	}
}

func resultOf(payout, stake decimal.Decimal) domain.BetResult {
	switch {
	case payout.IsZero():
		return domain.BetResultLoss
	case payout.Equal(stake):
		return domain.BetResultPush
	default:
		return domain.BetResultWin
	}
}

// PlayDice settles a dice threshold wager.
func (s *gameService) PlayDice(ctx context.Context, userID string, amount decimal.Decimal, prediction game.DicePrediction, target float64) (*DicePlay, error) {
	started := time.Now()

	// Validate the game parameters before touching the balance.
	if _, err := game.DiceMultiplier(prediction, target); err != nil {
		return nil, err
	}

	account, err := s.balance.Debit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	res, err := game.ResolveDice(s.src, amount, prediction, target)
	if err != nil {
		return nil, err
	}

	if res.Payout.GreaterThan(decimal.Zero) {
		if account, err = s.balance.Credit(ctx, userID, res.Payout); err != nil {
			return nil, fmt.Errorf("dice: failed to credit payout: %w", err)
		}
	}

	result := resultOf(res.Payout, amount)
	s.recordBet(ctx, userID, domain.GameDice, amount, result, res.Payout)
	metrics.RecordBet(string(domain.GameDice), string(result), started)

	return &DicePlay{Result: res, Balance: account.Balance}, nil
}

// PlayRoulette settles a round of simultaneous roulette stakes. The total of
// all stakes is debited up front; one drawn number settles every stake.
func (s *gameService) PlayRoulette(ctx context.Context, userID string, stakes []game.RouletteStake) (*RoulettePlay, error) {
	started := time.Now()

	if len(stakes) == 0 {
		return nil, util.ErrInvalidInput
	}
	total := decimal.Zero
	for _, st := range stakes {
		if err := game.ValidateRouletteStake(st); err != nil {
			return nil, err
		}
		total = total.Add(st.Amount)
	}

	account, err := s.balance.Debit(ctx, userID, total)
	if err != nil {
		return nil, err
	}

	res, err := game.ResolveRoulette(s.src, stakes)
	if err != nil {
		return nil, err
	}

	if res.TotalPayout.GreaterThan(decimal.Zero) {
		if account, err = s.balance.Credit(ctx, userID, res.TotalPayout); err != nil {
			return nil, fmt.Errorf("roulette: failed to credit payout: %w", err)
		}
	}

	// Roulette has no push: any payout means at least one stake won, even
	// when losing stakes drag the round's total back to exactly the amount
	// staked.
	result := domain.BetResultLoss
	if res.TotalPayout.GreaterThan(decimal.Zero) {
		result = domain.BetResultWin
	}
	s.recordBet(ctx, userID, domain.GameRoulette, total, result, res.TotalPayout)
	metrics.RecordBet(string(domain.GameRoulette), string(result), started)

	return &RoulettePlay{Result: res, Balance: account.Balance}, nil
}

// PlaySlots settles a slots spin.
func (s *gameService) PlaySlots(ctx context.Context, userID string, amount decimal.Decimal) (*SlotsPlay, error) {
	started := time.Now()

	account, err := s.balance.Debit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	res, err := game.ResolveSlots(s.src, amount)
	if err != nil {
		return nil, err
	}

	if res.Payout.GreaterThan(decimal.Zero) {
		if account, err = s.balance.Credit(ctx, userID, res.Payout); err != nil {
			return nil, fmt.Errorf("slots: failed to credit payout: %w", err)
		}
	}

	result := resultOf(res.Payout, amount)
	s.recordBet(ctx, userID, domain.GameSlots, amount, result, res.Payout)
	metrics.RecordBet(string(domain.GameSlots), string(result), started)

	return &SlotsPlay{Result: res, Balance: account.Balance}, nil
}

// PlaceSportsBet debits a fixed-odds stake. The match result is not modeled;
// the bet is recorded as pending and settles externally.
func (s *gameService) PlaceSportsBet(ctx context.Context, userID string, amount, odds decimal.Decimal) (*SportsPlay, error) {
	started := time.Now()

	if err := game.ValidateOdds(odds); err != nil {
		return nil, err
	}

	account, err := s.balance.Debit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	s.recordBet(ctx, userID, domain.GameSports, amount, domain.BetResultPending, decimal.Zero)
	metrics.RecordBet(string(domain.GameSports), string(domain.BetResultPending), started)

	return &SportsPlay{Odds: odds, Amount: amount, Balance: account.Balance}, nil
}

// DealBlackjack debits the stake and opens an in-progress round. The stake is
// committed from this point on: a round left unplayed expires with the debit
// applied and nothing credited.
//
// A dealt 21 settles immediately against the dealer's dealt hand; the dealer
// never draws and the player never gets a decision.
func (s *gameService) DealBlackjack(ctx context.Context, userID string, amount decimal.Decimal) (*BlackjackPlay, error) {
	started := time.Now()

	account, err := s.balance.Debit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	round := domain.NewBlackjackRound(userID, amount, game.DealHand(s.src), game.DealHand(s.src))

	if game.Score(round.Player) == 21 {
		return s.settleRound(ctx, round, started)
	}

	if err := s.rounds.Save(ctx, round); err != nil {
		// The round never existed; return the stake.
		if _, cerr := s.balance.Credit(ctx, userID, amount); cerr != nil {
			s.logger.Error("failed to refund stake after round save failure",
				zap.String("user_id", userID), zap.Error(cerr))
		}
		return nil, fmt.Errorf("blackjack: failed to open round: %w", err)
	}

	return s.inProgressView(round, account.Balance), nil
}

// HitBlackjack draws one more card for the player. Exceeding 21 ends the
// round immediately as a loss.
func (s *gameService) HitBlackjack(ctx context.Context, userID, roundID string) (*BlackjackPlay, error) {
	round, err := s.rounds.Get(ctx, userID, roundID)
	if err != nil {
		return nil, err
	}

	round.Player = append(round.Player, game.DrawCard(s.src))

	if game.IsBust(round.Player) {
		return s.settleRound(ctx, round, time.Now())
	}

	if err := s.rounds.Save(ctx, round); err != nil {
		return nil, fmt.Errorf("blackjack: failed to save round: %w", err)
	}

	account, err := s.balance.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.inProgressView(round, account.Balance), nil
}

// StandBlackjack ends the player's turn: the dealer draws to 17 and the round
// settles.
func (s *gameService) StandBlackjack(ctx context.Context, userID, roundID string) (*BlackjackPlay, error) {
	round, err := s.rounds.Get(ctx, userID, roundID)
	if err != nil {
		return nil, err
	}

	round.Dealer = game.DealerPlay(s.src, round.Dealer)
	return s.settleRound(ctx, round, time.Now())
}

func (s *gameService) settleRound(ctx context.Context, round *domain.BlackjackRound, started time.Time) (*BlackjackPlay, error) {
	payout, outcome := game.SettleBlackjack(round.Bet, round.Player, round.Dealer)
	round.State = domain.RoundStateSettled

	account, err := s.balance.GetAccount(ctx, round.UserID)
	if err != nil {
		return nil, err
	}
	if payout.GreaterThan(decimal.Zero) {
		if account, err = s.balance.Credit(ctx, round.UserID, payout); err != nil {
			return nil, fmt.Errorf("blackjack: failed to credit payout: %w", err)
		}
	}

	if err := s.rounds.Delete(ctx, round.UserID, round.ID); err != nil {
		s.logger.Warn("failed to delete settled round",
			zap.String("round_id", round.ID), zap.Error(err))
	}

	result := game.BetResultFor(outcome)
	s.recordBet(ctx, round.UserID, domain.GameBlackjack, round.Bet, result, payout)
	metrics.RecordBet(string(domain.GameBlackjack), string(result), started)

	return &BlackjackPlay{
		RoundID:     round.ID,
		State:       round.State,
		Player:      round.Player,
		PlayerScore: game.Score(round.Player),
		Dealer:      round.Dealer,
		DealerScore: game.Score(round.Dealer),
		Outcome:     outcome,
		Payout:      payout,
		Balance:     account.Balance,
	}, nil
}

func (s *gameService) inProgressView(round *domain.BlackjackRound, balance decimal.Decimal) *BlackjackPlay {
	upCard := round.Dealer[0]
	return &BlackjackPlay{
		RoundID:      round.ID,
		State:        round.State,
		Player:       round.Player,
		PlayerScore:  game.Score(round.Player),
		DealerUpCard: &upCard,
		Payout:       decimal.Zero,
		Balance:      balance,
	}
}

// GetBettingHistory retrieves a paginated betting history for one user.
func (s *gameService) GetBettingHistory(ctx context.Context, userID string, limit, offset int) ([]domain.BetRecord, int64, error) {
	records, totalCount, err := s.betRecords.GetBetRecordsByUserID(ctx, s.db, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve betting history: %w", err)
	}
	return records, totalCount, nil
}

// RecordBet stores an externally supplied betting-history entry (the POST
// betting-history contract). It does not touch the balance.
func (s *gameService) RecordBet(ctx context.Context, userID string, g domain.Game, betAmount decimal.Decimal, result domain.BetResult, payout decimal.Decimal) (*domain.BetRecord, error) {
	if betAmount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	rec := domain.NewBetRecord(userID, g, betAmount, result, payout)
	if err := s.betRecords.CreateBetRecord(ctx, s.db, rec); err != nil {
		return nil, fmt.Errorf("failed to create bet record: %w", err)
	}
	return rec, nil
}
