// Package negotiation models the turn-based bargaining over a single shelf
// item: offers, counter-offers, and the patience clock that ends it.
package negotiation

import (
	"github.com/talgya/haggle/internal/catalog"
	"github.com/talgya/haggle/internal/customer"
)

// Speakers in the turn history.
const (
	SpeakerCustomer = "customer"
	SpeakerPlayer   = "player"
)

// Starting patience by trait.
const (
	PatienceImpatient = 3
	PatienceDefault   = 5
	PatiencePatient   = 7
)

// Turn is one entry in the ordered bargaining history.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	Offer   *int   `json:"offer,omitempty"`
}

// ItemRef carries the fields of the item under negotiation that the
// protocol needs. The instance itself stays on the shelf until sold.
type ItemRef struct {
	InstanceID string `json:"instance_id"`
	Name       string `json:"name"`
	BaseValue  int    `json:"base_value"`
}

// Negotiation is the transient bargaining aggregate. At most one exists at
// a time; terminal outcomes delete it rather than marking a status.
type Negotiation struct {
	Item     ItemRef            `json:"item"`
	Customer *customer.Instance `json:"customer"`

	CustomerOffer int  `json:"customer_offer"`
	PlayerOffer   *int `json:"player_offer,omitempty"`

	History []Turn `json:"history"`

	Patience        int `json:"patience"`
	InitialPatience int `json:"initial_patience"`
}

// StartingPatience derives the patience clock from personality traits:
// impatient customers give 3 rounds, patient ones 7, everyone else 5.
// Impatient wins when a customer somehow carries both.
func StartingPatience(traits []string) int {
	for _, t := range traits {
		if t == catalog.TraitImpatient {
			return PatienceImpatient
		}
	}
	for _, t := range traits {
		if t == catalog.TraitPatient {
			return PatiencePatient
		}
	}
	return PatienceDefault
}

// New opens a negotiation with the customer's initial offer as the first
// history entry.
func New(item ItemRef, cust *customer.Instance, openingOffer int, spoken string) *Negotiation {
	patience := StartingPatience(cust.Traits)
	offer := openingOffer
	return &Negotiation{
		Item:          item,
		Customer:      cust,
		CustomerOffer: openingOffer,
		History: []Turn{
			{Speaker: SpeakerCustomer, Text: spoken, Offer: &offer},
		},
		Patience:        patience,
		InitialPatience: patience,
	}
}

// PlayerTurn records the player's counter and burns one unit of patience.
// Returns true when patience just hit zero, in which case the negotiation
// must terminate as a patience exhaustion without consulting the agent.
func (n *Negotiation) PlayerTurn(text string, price int) (exhausted bool) {
	if n.Patience > 0 {
		n.Patience--
	}
	p := price
	n.PlayerOffer = &p
	n.History = append(n.History, Turn{Speaker: SpeakerPlayer, Text: text, Offer: &p})
	return n.Patience == 0
}

// CustomerCounter records the agent's counter-offer and hands the turn back
// to the player.
func (n *Negotiation) CustomerCounter(text string, offer int) {
	n.CustomerOffer = offer
	o := offer
	n.History = append(n.History, Turn{Speaker: SpeakerCustomer, Text: text, Offer: &o})
}

// MoodLabel describes the remaining patience for the UI.
func (n *Negotiation) MoodLabel() string {
	if n.InitialPatience <= 0 {
		return ""
	}
	ratio := float64(n.Patience) / float64(n.InitialPatience)
	switch {
	case ratio >= 0.8:
		return "Patient"
	case ratio >= 0.5:
		return "Considering"
	case ratio >= 0.2:
		return "Restless"
	case n.Patience > 0:
		return "Impatient!"
	default:
		return "Livid!"
	}
}

// SaleReputation is the reputation delta for a concluded sale: +1 when the
// final price came in under 80% of base value, 0 otherwise.
func SaleReputation(price, baseValue int) int {
	if baseValue <= 0 {
		baseValue = 1
	}
	if float64(price)/float64(baseValue) < 0.8 {
		return 1
	}
	return 0
}
