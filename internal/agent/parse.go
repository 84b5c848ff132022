package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseOpeningReply extracts and validates the oracle's opening move from
// raw model output. The model sometimes wraps the JSON in prose or code
// fences, so parsing takes the first '{' through the last '}'.
func ParseOpeningReply(raw string) (*OpeningReply, error) {
	payload, err := extractObject(raw)
	if err != nil {
		return nil, err
	}

	var reply OpeningReply
	if err := json.Unmarshal([]byte(payload), &reply); err != nil {
		return nil, fmt.Errorf("parse opening reply: %w", err)
	}

	switch reply.Decision {
	case DecisionInitialOffer:
		if reply.Offer == nil {
			return nil, fmt.Errorf("initial_offer without an offer")
		}
		if reply.ItemID == nil || *reply.ItemID == "" {
			return nil, fmt.Errorf("initial_offer without an item id")
		}
	case DecisionLeave:
		// Nothing else required.
	default:
		return nil, fmt.Errorf("unexpected opening decision %q", reply.Decision)
	}

	return &reply, nil
}

// ParseCounterReply extracts and validates a counter-round reply.
func ParseCounterReply(raw string) (*CounterReply, error) {
	payload, err := extractObject(raw)
	if err != nil {
		return nil, err
	}

	var reply CounterReply
	if err := json.Unmarshal([]byte(payload), &reply); err != nil {
		return nil, fmt.Errorf("parse counter reply: %w", err)
	}

	switch reply.Decision {
	case DecisionCounter:
		if reply.Offer == nil {
			return nil, fmt.Errorf("counter without an offer")
		}
	case DecisionAccept, DecisionReject:
		// Nothing else required.
	default:
		return nil, fmt.Errorf("unexpected counter decision %q", reply.Decision)
	}

	return &reply, nil
}

func extractObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in reply")
	}
	return raw[start : end+1], nil
}
