package shop

import (
	"time"

	"github.com/google/uuid"

	"github.com/talgya/haggle/internal/negotiation"
)

// Terminal results of an encounter.
const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeWalkAway  = "walk_away"
	OutcomePatience  = "patience_exhausted"
	OutcomeAbandoned = "abandoned"
)

// Outcome is the record of one concluded encounter, kept for the
// transcript archive.
type Outcome struct {
	ID       string             `json:"id"`
	Day      int                `json:"day"`
	Customer string             `json:"customer"`
	Item     string             `json:"item"`
	Result   string             `json:"result"`
	Price    int                `json:"price"`
	RepDelta int                `json:"rep_delta"`
	Turns    []negotiation.Turn `json:"turns"`
	At       time.Time          `json:"at"`
}

func newOutcome(day int, n *negotiation.Negotiation, result string, price, repDelta int) Outcome {
	turns := make([]negotiation.Turn, len(n.History))
	copy(turns, n.History)
	return Outcome{
		ID:       uuid.NewString(),
		Day:      day,
		Customer: n.Customer.Name,
		Item:     n.Item.Name,
		Result:   result,
		Price:    price,
		RepDelta: repDelta,
		Turns:    turns,
		At:       time.Now(),
	}
}

// TakeOutcomes drains the pending outcome records (for archiving).
func (s *Shop) TakeOutcomes() []Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.outcomes
	s.outcomes = nil
	return out
}
