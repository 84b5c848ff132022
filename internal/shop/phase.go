package shop

import "fmt"

// advancePhase moves the day cycle forward one step. The loan is settled at
// the selling→management boundary; a default latches game over and aborts
// the transition.
func (s *Shop) advancePhase() error {
	if s.gameOver {
		return ErrGameOver
	}

	switch s.phase {
	case PhaseSettingUp:
		s.phase = PhaseSelling
		s.say("Shop opened for the day!")

	case PhaseSelling:
		if s.neg != nil {
			return ErrNegotiationActive
		}
		if s.ledger.PaymentDue(s.day) {
			s.say(fmt.Sprintf("Loan payment of %s is due!", gold(s.ledger.PaymentAmount)))
			if !s.ledger.SettlePeriod() {
				s.say(fmt.Sprintf("Cannot pay %s loan! You only have %s!",
					gold(s.ledger.PaymentAmount), gold(s.ledger.Gold)))
				s.say("GAME OVER - The loan sharks are coming...")
				s.gameOver = true
				s.phase = PhaseGameOver
				return nil
			}
			s.say(fmt.Sprintf("Paid %s loan payment. Phew!", gold(s.ledger.PaymentAmount)))
		}
		s.customer = nil // anyone still browsing leaves at closing time
		s.phase = PhaseManagement
		s.say("Shop closed for the night. Time to manage inventory and buy stock.")

	case PhaseManagement:
		s.day++
		s.phase = PhaseSettingUp
		s.say(fmt.Sprintf("Day %d begins. Time to set up the shelves.", s.day))

	default:
		return ErrGameOver
	}
	return nil
}
