// Package agent wraps the negotiation oracle: the external model that plays
// the customer. The engine treats its replies as untrusted input and
// validates them against a closed contract before acting on them.
package agent

import "context"

// Decisions the oracle may return. Anything else is a malformed reply.
const (
	DecisionInitialOffer = "initial_offer"
	DecisionLeave        = "leave"
	DecisionCounter      = "counter"
	DecisionAccept       = "accept"
	DecisionReject       = "reject"
)

// CustomerInfo identifies the customer the oracle is role-playing.
type CustomerInfo struct {
	Name        string
	Description string
	Traits      []string
	Budget      int
	Interests   []string
}

// ItemListing is one displayed item shown to the oracle when it picks an
// opening target.
type ItemListing struct {
	ID          string
	Name        string
	AskingPrice int
	BaseValue   int
}

// OpeningContext is everything the oracle sees before its first move.
type OpeningContext struct {
	Customer   CustomerInfo
	Reputation int
	Items      []ItemListing
}

// OpeningReply is the oracle's first move: pick an item and offer, or leave.
type OpeningReply struct {
	Spoken   string  `json:"spokenResponse"`
	Offer    *int    `json:"offer"`
	ItemID   *string `json:"itemId"`
	Decision string  `json:"decision"`
}

// CounterContext is the state of an active negotiation after a player turn.
type CounterContext struct {
	Customer   CustomerInfo
	Reputation int

	ItemName  string
	BaseValue int

	Patience      int
	CustomerOffer int // the customer's previous offer
	PlayerOffer   int // the player's new counter price
	PlayerText    string
}

// CounterReply is the oracle's response to a player counter.
type CounterReply struct {
	Spoken   string `json:"spokenResponse"`
	Offer    *int   `json:"offer"`
	Decision string `json:"decision"`
}

// Oracle produces customer decisions from structured context. The engine
// does not care how — only that replies conform to the contract.
type Oracle interface {
	Open(ctx context.Context, oc OpeningContext) (*OpeningReply, error)
	Counter(ctx context.Context, cc CounterContext) (*CounterReply, error)
}
