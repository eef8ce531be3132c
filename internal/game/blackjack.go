// internal/game/blackjack.go
package game

import (
	"github.com/shopspring/decimal"

	"bethouse/internal/domain"
)

// Blackjack constants. Cards are drawn from an infinite deck (every draw is an
// independent uniform pick over the 13 ranks and 4 suits).
const (
	blackjackTarget  = 21
	dealerStandScore = 17
)

var (
	ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	suits = []string{"spades", "hearts", "diamonds", "clubs"}

	two = decimal.NewFromInt(2)
)

// BlackjackOutcome names how a blackjack round settled.
type BlackjackOutcome string

const (
	OutcomePlayerBust BlackjackOutcome = "player_bust"
	OutcomeDealerBust BlackjackOutcome = "dealer_bust"
	OutcomePlayerWin  BlackjackOutcome = "player_win"
	OutcomeDealerWin  BlackjackOutcome = "dealer_win"
	OutcomePush       BlackjackOutcome = "push"
)

// DrawCard draws one card with replacement.
func DrawCard(src Source) domain.Card {
	return domain.Card{
		Rank: ranks[src.Intn(len(ranks))],
		Suit: suits[src.Intn(len(suits))],
	}
}

// DealHand draws a two-card starting hand.
func DealHand(src Source) domain.Hand {
	return domain.Hand{DrawCard(src), DrawCard(src)}
}

func cardValue(rank string) int {
	switch rank {
	case "A":
		return 11
	case "J", "Q", "K":
		return 10
	default:
		// "2".."10"
		v := 0
		for _, r := range rank {
			v = v*10 + int(r-'0')
		}
		return v
	}
}

// Score sums the hand counting aces as 11, then downgrades aces to 1 one at a
// time while the total exceeds 21.
func Score(h domain.Hand) int {
	score := 0
	aces := 0
	for _, c := range h {
		score += cardValue(c.Rank)
		if c.Rank == "A" {
			aces++
		}
	}
	for score > blackjackTarget && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// IsBust reports whether the hand exceeds 21 after ace downgrades.
func IsBust(h domain.Hand) bool {
	return Score(h) > blackjackTarget
}

// DealerPlay draws cards for the dealer until the dealer score reaches 17 or
// more. The dealer never hits on 17+, always hits below.
func DealerPlay(src Source, dealer domain.Hand) domain.Hand {
	for Score(dealer) < dealerStandScore {
		dealer = append(dealer, DrawCard(src))
	}
	return dealer
}

// SettleBlackjack compares the final hands and returns the total payout.
// A player bust loses regardless of the dealer's hand; a dealer bust or higher
// player score pays 2x the stake; a push returns the stake. A two-card 21 is
// settled like any other win, there is no 3:2 bonus.
func SettleBlackjack(amount decimal.Decimal, player, dealer domain.Hand) (decimal.Decimal, BlackjackOutcome) {
	playerScore := Score(player)
	dealerScore := Score(dealer)

	switch {
	case playerScore > blackjackTarget:
		return decimal.Zero, OutcomePlayerBust
	case dealerScore > blackjackTarget:
		return amount.Mul(two), OutcomeDealerBust
	case playerScore > dealerScore:
		return amount.Mul(two), OutcomePlayerWin
	case playerScore < dealerScore:
		return decimal.Zero, OutcomeDealerWin
	default:
		return amount, OutcomePush
	}
}

// BetResultFor maps a blackjack outcome onto the bet-history result taxonomy.
func BetResultFor(outcome BlackjackOutcome) domain.BetResult {
	switch outcome {
	case OutcomeDealerBust, OutcomePlayerWin:
		return domain.BetResultWin
	case OutcomePush:
		return domain.BetResultPush
	default:
		return domain.BetResultLoss
	}
}
