package agent

import (
	"context"
	"fmt"
)

// Scripted is an Oracle that replays canned replies in order. It backs
// deterministic tests and the offline demo mode.
type Scripted struct {
	Openings []OpeningReply
	Counters []CounterReply

	// Errs, when non-nil, is returned by every call (transport-failure
	// simulation).
	Errs error

	openIdx    int
	counterIdx int
}

// OpenCalls and CounterCalls report how many rounds were consumed.
func (s *Scripted) OpenCalls() int    { return s.openIdx }
func (s *Scripted) CounterCalls() int { return s.counterIdx }

func (s *Scripted) Open(_ context.Context, _ OpeningContext) (*OpeningReply, error) {
	if s.Errs != nil {
		return nil, s.Errs
	}
	if s.openIdx >= len(s.Openings) {
		return nil, fmt.Errorf("scripted oracle: no opening reply %d", s.openIdx)
	}
	reply := s.Openings[s.openIdx]
	s.openIdx++
	return &reply, nil
}

func (s *Scripted) Counter(_ context.Context, _ CounterContext) (*CounterReply, error) {
	if s.Errs != nil {
		return nil, s.Errs
	}
	if s.counterIdx >= len(s.Counters) {
		return nil, fmt.Errorf("scripted oracle: no counter reply %d", s.counterIdx)
	}
	reply := s.Counters[s.counterIdx]
	s.counterIdx++
	return &reply, nil
}
