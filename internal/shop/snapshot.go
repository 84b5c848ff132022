package shop

import (
	"github.com/talgya/haggle/internal/customer"
)

// NegotiationView is the read-only slice of an active negotiation exposed
// to collaborators.
type NegotiationView struct {
	ItemInstanceID  string `json:"item_instance_id"`
	ItemName        string `json:"item_name"`
	BaseValue       int    `json:"base_value"`
	CustomerName    string `json:"customer_name"`
	CustomerOffer   int    `json:"customer_offer"`
	PlayerOffer     *int   `json:"player_offer,omitempty"`
	Patience        int    `json:"patience"`
	InitialPatience int    `json:"initial_patience"`
	Mood            string `json:"mood"`
}

// Snapshot is a consistent copy of the shop state for reads.
type Snapshot struct {
	Day      int   `json:"day"`
	Phase    Phase `json:"phase"`
	GameOver bool  `json:"game_over"`

	Gold        int `json:"gold"`
	LoanPayment int `json:"loan_payment"`
	LoanOwed    int `json:"loan_owed"`
	LoanDueDay  int `json:"loan_due_day"`

	Reputation int `json:"reputation"`

	ShelfCapacity int            `json:"shelf_capacity"`
	Inventory     []ItemInstance `json:"inventory"`
	Shelf         []ItemInstance `json:"shelf"`

	Customer    *customer.Instance `json:"customer,omitempty"`
	Negotiation *NegotiationView   `json:"negotiation,omitempty"`

	Dialogue []Line `json:"dialogue"`
}

// Snapshot copies the current state under the mutex.
func (s *Shop) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Day:           s.day,
		Phase:         s.phase,
		GameOver:      s.gameOver,
		Gold:          s.ledger.Gold,
		LoanPayment:   s.ledger.PaymentAmount,
		LoanOwed:      s.ledger.PrincipalOwed,
		LoanDueDay:    s.ledger.NextDueDay,
		Reputation:    s.rep.Score,
		ShelfCapacity: s.capacity,
		Customer:      s.customer,
	}
	for _, it := range s.inventory {
		snap.Inventory = append(snap.Inventory, *it)
	}
	for _, it := range s.shelf {
		snap.Shelf = append(snap.Shelf, *it)
	}
	snap.Dialogue = append(snap.Dialogue, s.dialogue...)

	if s.neg != nil {
		snap.Negotiation = &NegotiationView{
			ItemInstanceID:  s.neg.Item.InstanceID,
			ItemName:        s.neg.Item.Name,
			BaseValue:       s.neg.Item.BaseValue,
			CustomerName:    s.neg.Customer.Name,
			CustomerOffer:   s.neg.CustomerOffer,
			PlayerOffer:     s.neg.PlayerOffer,
			Patience:        s.neg.Patience,
			InitialPatience: s.neg.InitialPatience,
			Mood:            s.neg.MoodLabel(),
		}
	}
	return snap
}

// Say appends a dialogue line from a collaborator (the session layer adds
// customer speech and diagnostics the same way the engine adds its own).
func (s *Shop) Say(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.say(text)
}
