package shop

import (
	"fmt"

	"github.com/talgya/haggle/internal/agent"
	"github.com/talgya/haggle/internal/customer"
)

// Action is the closed set of transition requests. One variant per entry in
// the engine's action vocabulary, each carrying exactly the fields it
// needs; Apply processes one at a time under the shop mutex.
type Action interface {
	isAction()
}

// BuyItem purchases one unit of a wholesale template.
type BuyItem struct {
	TemplateID string
}

// MoveItemToShelf displays an inventory instance.
type MoveItemToShelf struct {
	InstanceID string
}

// UpgradeShelf buys one more display slot.
type UpgradeShelf struct{}

// AdvancePhase steps the day cycle.
type AdvancePhase struct{}

// SetCustomer brings a spawned customer onto the floor.
type SetCustomer struct {
	Customer *customer.Instance
}

// ClearCustomer discards the current customer before any negotiation.
type ClearCustomer struct{}

// StartNegotiation opens bargaining from the customer's initial offer.
type StartNegotiation struct {
	ItemInstanceID string
	Offer          int
	Spoken         string
}

// SubmitPlayerOffer records the player's counter price and text.
type SubmitPlayerOffer struct {
	Text  string
	Price int
}

// ApplyAgentDecision advances the negotiation with a validated oracle reply.
type ApplyAgentDecision struct {
	Reply agent.CounterReply
}

// AcceptCurrentOffer sells at the customer's standing offer.
type AcceptCurrentOffer struct{}

// WalkAway abandons the negotiation at the player's initiative.
type WalkAway struct{}

// AbandonEncounter drops a broken encounter (unusable agent reply).
type AbandonEncounter struct{}

func (BuyItem) isAction()            {}
func (MoveItemToShelf) isAction()    {}
func (UpgradeShelf) isAction()       {}
func (AdvancePhase) isAction()       {}
func (SetCustomer) isAction()        {}
func (ClearCustomer) isAction()      {}
func (StartNegotiation) isAction()   {}
func (SubmitPlayerOffer) isAction()  {}
func (ApplyAgentDecision) isAction() {}
func (AcceptCurrentOffer) isAction() {}
func (WalkAway) isAction()           {}
func (AbandonEncounter) isAction()   {}

// Apply runs one transition. Errors mean the action was rejected with no
// state change, except where a dialogue line records the rejection.
func (s *Shop) Apply(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch act := a.(type) {
	case BuyItem:
		return s.buyItem(act.TemplateID)
	case MoveItemToShelf:
		return s.moveToShelf(act.InstanceID)
	case UpgradeShelf:
		return s.upgradeShelf()
	case AdvancePhase:
		return s.advancePhase()
	case SetCustomer:
		return s.setCustomer(act.Customer)
	case ClearCustomer:
		return s.clearCustomer()
	case StartNegotiation:
		return s.startNegotiation(act.ItemInstanceID, act.Offer, act.Spoken)
	case SubmitPlayerOffer:
		return s.submitPlayerOffer(act.Text, act.Price)
	case ApplyAgentDecision:
		return s.applyAgentDecision(act.Reply)
	case AcceptCurrentOffer:
		return s.acceptCurrentOffer()
	case WalkAway:
		return s.walkAway()
	case AbandonEncounter:
		s.abandonEncounter()
		return nil
	default:
		return fmt.Errorf("unknown action %T", a)
	}
}
