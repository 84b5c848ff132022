package economy

import (
	"errors"
	"testing"
)

func TestSpendRejectsShortFunds(t *testing.T) {
	l := NewLedger(50, 100, 1000, 7)

	if err := l.Spend(60); !errors.Is(err, ErrInsufficientGold) {
		t.Fatalf("expected ErrInsufficientGold, got %v", err)
	}
	if l.Gold != 50 {
		t.Errorf("failed spend must not touch gold, have %d", l.Gold)
	}

	if err := l.Spend(50); err != nil {
		t.Fatalf("exact spend should succeed: %v", err)
	}
	if l.Gold != 0 {
		t.Errorf("gold = %d, want 0", l.Gold)
	}
}

func TestSpendRejectsNegativeAmount(t *testing.T) {
	l := NewLedger(100, 100, 1000, 7)
	if err := l.Spend(-10); err == nil {
		t.Fatal("negative spend should error")
	}
	if l.Gold != 100 {
		t.Errorf("gold = %d, want 100", l.Gold)
	}
}

func TestCreditIgnoresNonPositive(t *testing.T) {
	l := NewLedger(100, 100, 1000, 7)
	l.Credit(40)
	l.Credit(0)
	l.Credit(-5)
	if l.Gold != 140 {
		t.Errorf("gold = %d, want 140", l.Gold)
	}
}

func TestPaymentDue(t *testing.T) {
	l := NewLedger(1000, 100, 1000, 7)

	for day, want := range map[int]bool{1: false, 6: false, 7: true, 8: true} {
		if got := l.PaymentDue(day); got != want {
			t.Errorf("PaymentDue(%d) = %v, want %v", day, got, want)
		}
	}
}

func TestSettlePeriod(t *testing.T) {
	l := NewLedger(150, 100, 1000, 7)

	if !l.SettlePeriod() {
		t.Fatal("payment should succeed with 150 gold")
	}
	if l.Gold != 50 {
		t.Errorf("gold = %d, want 50", l.Gold)
	}
	if l.PrincipalOwed != 900 {
		t.Errorf("principal = %d, want 900", l.PrincipalOwed)
	}
	if l.NextDueDay != 14 {
		t.Errorf("next due day = %d, want 14", l.NextDueDay)
	}

	if l.SettlePeriod() {
		t.Fatal("payment should fail with 50 gold")
	}
	if l.Gold != 50 || l.PrincipalOwed != 900 || l.NextDueDay != 14 {
		t.Errorf("failed payment must not change state: %+v", l)
	}
}

func TestSettlePeriodFloorsPrincipal(t *testing.T) {
	l := NewLedger(500, 100, 60, 7)
	if !l.SettlePeriod() {
		t.Fatal("payment should succeed")
	}
	if l.PrincipalOwed != 0 {
		t.Errorf("principal = %d, want 0", l.PrincipalOwed)
	}
}
