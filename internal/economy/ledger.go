// Package economy tracks the shop's gold and the recurring loan that can
// end the game.
package economy

import (
	"errors"
	"fmt"
)

// ErrInsufficientGold is returned when a debit would take gold negative.
var ErrInsufficientGold = errors.New("insufficient gold")

// LoanPeriodDays is how far the due day advances after each payment.
const LoanPeriodDays = 7

// Ledger holds gold and loan state. All amounts are integer gold.
type Ledger struct {
	Gold          int `json:"gold"`
	PaymentAmount int `json:"payment_amount"`
	PrincipalOwed int `json:"principal_owed"`
	NextDueDay    int `json:"next_due_day"`
}

// NewLedger creates a ledger with the standard opening terms.
func NewLedger(gold, payment, principal, dueDay int) *Ledger {
	return &Ledger{
		Gold:          gold,
		PaymentAmount: payment,
		PrincipalOwed: principal,
		NextDueDay:    dueDay,
	}
}

// CanAfford reports whether a spend of amount would succeed.
func (l *Ledger) CanAfford(amount int) bool {
	return l.Gold >= amount
}

// Spend debits gold, rejecting the debit entirely if funds are short.
func (l *Ledger) Spend(amount int) error {
	if amount < 0 {
		return fmt.Errorf("spend %d: negative amount", amount)
	}
	if l.Gold < amount {
		return ErrInsufficientGold
	}
	l.Gold -= amount
	return nil
}

// Credit adds sale proceeds to gold.
func (l *Ledger) Credit(amount int) {
	if amount > 0 {
		l.Gold += amount
	}
}

// PaymentDue reports whether the loan payment is due on the given day.
func (l *Ledger) PaymentDue(day int) bool {
	return day >= l.NextDueDay
}

// SettlePeriod attempts the scheduled loan payment. On success it debits
// gold, reduces principal, and advances the due day by one period. Returns
// false when gold cannot cover the payment; the caller decides what a
// default means.
func (l *Ledger) SettlePeriod() bool {
	if l.Gold < l.PaymentAmount {
		return false
	}
	l.Gold -= l.PaymentAmount
	l.PrincipalOwed -= l.PaymentAmount
	if l.PrincipalOwed < 0 {
		l.PrincipalOwed = 0
	}
	l.NextDueDay += LoanPeriodDays
	return true
}
