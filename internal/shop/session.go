package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/haggle/internal/agent"
	"github.com/talgya/haggle/internal/customer"
)

// ErrShelfEmpty rejects calling in a customer with nothing on display.
var ErrShelfEmpty = errors.New("nothing on the shelf")

// Archiver persists concluded encounters. Optional; a nil archiver drops
// them.
type Archiver interface {
	SaveOutcome(Outcome) error
}

// Session drives the agent-dependent flows: spawning a customer, the
// opening round, and counter rounds. The shop itself stays synchronous;
// the only suspension point is the oracle call, and the agent service's
// in-flight flag keeps it to one at a time.
type Session struct {
	Shop    *Shop
	Agent   *agent.Service
	Spawner *customer.Spawner
	Archive Archiver
}

// Busy reports whether an oracle call is outstanding. Collaborators must
// not issue next-customer or send-response while busy.
func (ss *Session) Busy() bool {
	return ss.Agent.Busy()
}

// NextCustomer spawns an eligible customer, shows them the shelf, and
// applies their opening move. Agent failures abort the encounter without
// touching the rest of the shop.
func (ss *Session) NextCustomer(ctx context.Context) error {
	if !ss.Agent.Ready() {
		return agent.ErrNotReady
	}
	if ss.Agent.Busy() {
		return agent.ErrBusy
	}

	snap := ss.Shop.Snapshot()
	if snap.Phase != PhaseSelling {
		return ErrWrongPhase
	}
	if snap.Negotiation != nil {
		return ErrNegotiationActive
	}
	if len(snap.Shelf) == 0 {
		return ErrShelfEmpty
	}

	cust, err := ss.Spawner.Spawn(snap.Reputation)
	if err != nil {
		return err
	}
	if err := ss.Shop.Apply(SetCustomer{Customer: cust}); err != nil {
		return err
	}

	oc := agent.OpeningContext{
		Customer: agent.CustomerInfo{
			Name:        cust.Name,
			Description: cust.Description,
			Traits:      cust.Traits,
			Budget:      cust.Budget,
			Interests:   cust.Interests,
		},
		Reputation: snap.Reputation,
	}
	for _, it := range snap.Shelf {
		oc.Items = append(oc.Items, agent.ItemListing{
			ID:          it.InstanceID,
			Name:        it.Name,
			AskingPrice: it.AskingPrice,
			BaseValue:   it.BaseValue,
		})
	}

	reply, err := ss.Agent.Open(ctx, oc)
	if err != nil {
		slog.Error("opening round failed", "customer", cust.Name, "error", err)
		ss.Shop.Apply(AbandonEncounter{})
		return nil
	}

	switch reply.Decision {
	case agent.DecisionLeave:
		spoken := reply.Spoken
		if spoken == "" {
			spoken = "Changed my mind."
		}
		ss.Shop.Say(fmt.Sprintf("%s: %s", cust.Name, spoken))
		return ss.Shop.Apply(ClearCustomer{})

	case agent.DecisionInitialOffer:
		err := ss.Shop.Apply(StartNegotiation{
			ItemInstanceID: *reply.ItemID,
			Offer:          *reply.Offer,
			Spoken:         reply.Spoken,
		})
		if errors.Is(err, ErrUnknownItem) {
			slog.Error("agent chose an item not on the shelf", "customer", cust.Name, "item_id", *reply.ItemID)
			ss.Shop.Say(fmt.Sprintf("%s seems confused about an item.", cust.Name))
			return ss.Shop.Apply(ClearCustomer{})
		}
		return err

	default:
		// ParseOpeningReply already rejects anything else.
		ss.Shop.Apply(AbandonEncounter{})
		return nil
	}
}

// SendResponse applies the player's counter and, unless patience ran out,
// runs the agent's turn. Broken replies abandon the encounter; the engine
// returns to idle either way.
func (ss *Session) SendResponse(ctx context.Context, text string, price int) error {
	if !ss.Agent.Ready() {
		return agent.ErrNotReady
	}
	if ss.Agent.Busy() {
		return agent.ErrBusy
	}

	if err := ss.Shop.Apply(SubmitPlayerOffer{Text: text, Price: price}); err != nil {
		return err
	}

	snap := ss.Shop.Snapshot()
	if snap.Negotiation == nil {
		// Patience hit zero; terminated without an agent round-trip.
		ss.archive()
		return nil
	}

	neg := snap.Negotiation
	cust := snap.Customer
	cc := agent.CounterContext{
		Customer: agent.CustomerInfo{
			Name:        cust.Name,
			Description: cust.Description,
			Traits:      cust.Traits,
			Budget:      cust.Budget,
			Interests:   cust.Interests,
		},
		Reputation:    snap.Reputation,
		ItemName:      neg.ItemName,
		BaseValue:     neg.BaseValue,
		Patience:      neg.Patience,
		CustomerOffer: neg.CustomerOffer,
		PlayerOffer:   price,
		PlayerText:    text,
	}

	reply, err := ss.Agent.Counter(ctx, cc)
	if err != nil {
		slog.Error("counter round failed", "customer", cust.Name, "error", err)
		ss.Shop.Apply(AbandonEncounter{})
		ss.archive()
		return nil
	}

	if err := ss.Shop.Apply(ApplyAgentDecision{Reply: *reply}); err != nil {
		slog.Error("agent decision rejected", "customer", cust.Name, "error", err)
		ss.Shop.Apply(AbandonEncounter{})
	}
	ss.archive()
	return nil
}

// AcceptOffer sells at the customer's standing offer.
func (ss *Session) AcceptOffer() error {
	err := ss.Shop.Apply(AcceptCurrentOffer{})
	ss.archive()
	return err
}

// WalkAway abandons the active negotiation.
func (ss *Session) WalkAway() error {
	err := ss.Shop.Apply(WalkAway{})
	ss.archive()
	return err
}

// archive drains concluded encounters into the transcript store.
func (ss *Session) archive() {
	outcomes := ss.Shop.TakeOutcomes()
	if ss.Archive == nil {
		return
	}
	for _, o := range outcomes {
		if err := ss.Archive.SaveOutcome(o); err != nil {
			slog.Error("transcript save failed", "outcome", o.ID, "error", err)
		}
	}
}
