// Package shop is the shop-management engine: day phases, stock, the shelf,
// and the bargaining loop with procedurally varied customers. All state
// changes flow through Apply, one transition at a time.
package shop

import (
	"errors"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/talgya/haggle/internal/customer"
	"github.com/talgya/haggle/internal/economy"
	"github.com/talgya/haggle/internal/negotiation"
	"github.com/talgya/haggle/internal/reputation"
)

// Phase of the repeating day cycle.
type Phase string

const (
	PhaseSettingUp  Phase = "setting up"
	PhaseSelling    Phase = "selling"
	PhaseManagement Phase = "management"
	PhaseGameOver   Phase = "game over"
)

var (
	// ErrGameOver rejects every transition once the loan default latches.
	ErrGameOver = errors.New("game over")
	// ErrWrongPhase rejects an action outside its legal phase.
	ErrWrongPhase = errors.New("not legal in current phase")
	// ErrShelfFull leaves inventory and shelf untouched.
	ErrShelfFull = errors.New("shelf is at capacity")
	// ErrUnknownItem means the referenced template or instance does not exist
	// where the action expects it.
	ErrUnknownItem = errors.New("unknown item")
	// ErrItemLocked means the item's tier is not unlocked at current reputation.
	ErrItemLocked = errors.New("item tier locked at current reputation")
	// ErrNoNegotiation rejects bargaining actions with no active negotiation.
	ErrNoNegotiation = errors.New("no active negotiation")
	// ErrNegotiationActive rejects actions that require an idle counter.
	ErrNegotiationActive = errors.New("negotiation in progress")
	// ErrNoCustomer rejects starting a negotiation without a customer present.
	ErrNoCustomer = errors.New("no customer present")
)

// Line is one dialogue log entry, stamped with the day it happened.
type Line struct {
	Day  int    `json:"day"`
	Text string `json:"text"`
}

// Config sets the shop's opening state.
type Config struct {
	Gold          int
	Day           int
	Phase         Phase
	LoanPayment   int
	LoanOwed      int
	LoanDueDay    int
	ShelfCapacity int
	Reputation    int
}

// DefaultConfig is the standard new game: the day starts in management so
// the player can buy stock before opening.
func DefaultConfig() Config {
	return Config{
		Gold:          1000,
		Day:           1,
		Phase:         PhaseManagement,
		LoanPayment:   100,
		LoanOwed:      1000,
		LoanDueDay:    7,
		ShelfCapacity: 4,
	}
}

// Shop owns the complete session state. Mutations happen only under the
// mutex inside Apply; reads take snapshots.
type Shop struct {
	mu sync.Mutex

	day      int
	phase    Phase
	gameOver bool

	ledger *economy.Ledger
	rep    *reputation.Tracker

	inventory []*ItemInstance
	shelf     []*ItemInstance
	capacity  int

	customer *customer.Instance
	neg      *negotiation.Negotiation

	dialogue []Line
	outcomes []Outcome
}

// New creates a shop from the given config.
func New(cfg Config) *Shop {
	if cfg.Phase == "" {
		cfg.Phase = PhaseManagement
	}
	return &Shop{
		day:      cfg.Day,
		phase:    cfg.Phase,
		ledger:   economy.NewLedger(cfg.Gold, cfg.LoanPayment, cfg.LoanOwed, cfg.LoanDueDay),
		rep:      &reputation.Tracker{Score: cfg.Reputation},
		capacity: cfg.ShelfCapacity,
	}
}

// say appends a dialogue line. Callers hold the mutex.
func (s *Shop) say(text string) {
	s.dialogue = append(s.dialogue, Line{Day: s.day, Text: text})
}

// gold formats an amount for dialogue lines.
func gold(n int) string {
	return humanize.Comma(int64(n)) + "g"
}
