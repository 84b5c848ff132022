package shop

import (
	"fmt"

	"github.com/talgya/haggle/internal/agent"
	"github.com/talgya/haggle/internal/customer"
	"github.com/talgya/haggle/internal/negotiation"
)

// setCustomer brings a freshly spawned customer into the shop. Only legal
// on the selling floor with no bargaining in progress.
func (s *Shop) setCustomer(c *customer.Instance) error {
	if s.gameOver {
		return ErrGameOver
	}
	if s.phase != PhaseSelling {
		return ErrWrongPhase
	}
	if s.neg != nil {
		return ErrNegotiationActive
	}
	s.customer = c
	if c != nil {
		s.say(fmt.Sprintf("%s enters the shop!", c.Name))
	}
	return nil
}

// clearCustomer discards the current customer without a negotiation having
// started (they left, or their opening reply was unusable).
func (s *Shop) clearCustomer() error {
	if s.neg != nil {
		return ErrNegotiationActive
	}
	s.customer = nil
	return nil
}

// startNegotiation opens the bargaining aggregate from the customer's
// initial offer on a displayed item.
func (s *Shop) startNegotiation(itemInstanceID string, offer int, spoken string) error {
	if s.gameOver {
		return ErrGameOver
	}
	if s.phase != PhaseSelling {
		return ErrWrongPhase
	}
	if s.neg != nil {
		return ErrNegotiationActive
	}
	if s.customer == nil {
		return ErrNoCustomer
	}
	item, _ := s.shelfItem(itemInstanceID)
	if item == nil {
		return fmt.Errorf("%w: instance %s not on shelf", ErrUnknownItem, itemInstanceID)
	}
	s.neg = negotiation.New(negotiation.ItemRef{
		InstanceID: item.InstanceID,
		Name:       item.Name,
		BaseValue:  item.BaseValue,
	}, s.customer, offer, spoken)
	s.say(fmt.Sprintf("%s: %s (Offers %s)", s.customer.Name, spoken, gold(offer)))
	return nil
}

// submitPlayerOffer records the player's counter. Patience burns down by
// one; hitting zero here ends the encounter on the spot, with no agent
// round-trip.
func (s *Shop) submitPlayerOffer(text string, price int) error {
	if s.gameOver {
		return ErrGameOver
	}
	if s.neg == nil {
		return ErrNoNegotiation
	}
	if price < 0 {
		return fmt.Errorf("offer must be a non-negative amount, got %d", price)
	}
	if text == "" {
		text = fmt.Sprintf("How about %s?", gold(price))
	}
	s.say(fmt.Sprintf("You: %s (Offer %s)", text, gold(price)))
	if s.neg.PlayerTurn(text, price) {
		name := s.neg.Customer.Name
		s.finishEncounter(OutcomePatience, 0, -1)
		s.say(fmt.Sprintf("%s has run out of patience! Negotiation ended. (-1 Rep)", name))
	}
	return nil
}

// applyAgentDecision advances the negotiation with the oracle's validated
// reply. Zero patience forces a rejection no matter what came back.
func (s *Shop) applyAgentDecision(reply agent.CounterReply) error {
	if s.gameOver {
		return ErrGameOver
	}
	if s.neg == nil {
		return ErrNoNegotiation
	}

	decision := reply.Decision
	if s.neg.Patience == 0 {
		decision = agent.DecisionReject
	}

	name := s.neg.Customer.Name
	switch decision {
	case agent.DecisionAccept:
		if s.neg.PlayerOffer == nil {
			return fmt.Errorf("accept with no player offer on the table")
		}
		s.say(fmt.Sprintf("%s: %s", name, reply.Spoken))
		return s.completeSale(*s.neg.PlayerOffer)

	case agent.DecisionReject:
		if reply.Spoken != "" {
			s.say(fmt.Sprintf("%s: %s", name, reply.Spoken))
		}
		s.finishEncounter(OutcomeRejected, 0, -1)
		s.say(fmt.Sprintf("%s leaves in frustration. (-1 Rep)", name))
		return nil

	case agent.DecisionCounter:
		if reply.Offer == nil {
			return fmt.Errorf("counter with no offer")
		}
		// The contract tells the agent a counter must improve on its
		// previous offer; a violating value is handled like any other
		// broken reply.
		if *reply.Offer <= s.neg.CustomerOffer {
			s.abandonEncounter()
			return nil
		}
		s.neg.CustomerCounter(reply.Spoken, *reply.Offer)
		s.say(fmt.Sprintf("%s: %s (Offers %s)", name, reply.Spoken, gold(*reply.Offer)))
		return nil

	default:
		return fmt.Errorf("unexpected agent decision %q", reply.Decision)
	}
}

// acceptCurrentOffer sells at the customer's standing offer.
func (s *Shop) acceptCurrentOffer() error {
	if s.gameOver {
		return ErrGameOver
	}
	if s.neg == nil {
		return ErrNoNegotiation
	}
	return s.completeSale(s.neg.CustomerOffer)
}

// walkAway abandons the negotiation at the player's initiative. Costs the
// same reputation as a rejection.
func (s *Shop) walkAway() error {
	if s.neg == nil {
		return ErrNoNegotiation
	}
	name := s.neg.Customer.Name
	s.finishEncounter(OutcomeWalkAway, 0, -1)
	s.say(fmt.Sprintf("%s leaves in frustration. (-1 Rep)", name))
	return nil
}

// abandonEncounter drops a broken encounter without a reputation change:
// the agent's reply was unusable, so neither party walked out on a deal.
func (s *Shop) abandonEncounter() {
	if s.neg != nil {
		name := s.neg.Customer.Name
		s.finishEncounter(OutcomeAbandoned, 0, 0)
		s.say(fmt.Sprintf("%s looks confused and wanders off.", name))
		return
	}
	if s.customer != nil {
		s.say(fmt.Sprintf("%s looks around indecisively.", s.customer.Name))
		s.customer = nil
	}
}

// completeSale moves the negotiated item off the shelf, credits the price,
// and applies the deal-quality reputation rule.
func (s *Shop) completeSale(price int) error {
	item, idx := s.shelfItem(s.neg.Item.InstanceID)
	if item == nil {
		return fmt.Errorf("%w: negotiated item vanished from shelf", ErrUnknownItem)
	}
	repDelta := negotiation.SaleReputation(price, item.BaseValue)
	s.removeFromShelf(idx)
	s.ledger.Credit(price)

	name := item.Name
	s.finishEncounter(OutcomeAccepted, price, repDelta)
	if repDelta > 0 {
		s.say(fmt.Sprintf("Sold %s for %s! (+%d Rep)", name, gold(price), repDelta))
	} else {
		s.say(fmt.Sprintf("Sold %s for %s! (0 Rep)", name, gold(price)))
	}
	return nil
}

// finishEncounter records the outcome, applies the reputation delta, and
// deletes the negotiation aggregate and customer instance.
func (s *Shop) finishEncounter(result string, price, repDelta int) {
	s.rep.Adjust(repDelta)
	s.outcomes = append(s.outcomes, newOutcome(s.day, s.neg, result, price, repDelta))
	s.neg = nil
	s.customer = nil
}
