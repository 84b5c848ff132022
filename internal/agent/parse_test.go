package agent

import "testing"

func TestParseOpeningReply(t *testing.T) {
	raw := `{"spokenResponse": "That potion catches my eye. 30 gold?", "offer": 30, "itemId": "inst-1", "decision": "initial_offer"}`

	reply, err := ParseOpeningReply(raw)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Decision != DecisionInitialOffer {
		t.Errorf("decision = %q", reply.Decision)
	}
	if reply.Offer == nil || *reply.Offer != 30 {
		t.Errorf("offer = %v, want 30", reply.Offer)
	}
	if reply.ItemID == nil || *reply.ItemID != "inst-1" {
		t.Errorf("itemId = %v, want inst-1", reply.ItemID)
	}
}

func TestParseOpeningReplyUnwrapsProseAndFences(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{
			"code fence",
			"```json\n{\"spokenResponse\": \"Hmm.\", \"offer\": 20, \"itemId\": \"x\", \"decision\": \"initial_offer\"}\n```",
		},
		{
			"leading prose",
			`Here is my response: {"spokenResponse": "Hmm.", "offer": 20, "itemId": "x", "decision": "initial_offer"} Hope that helps!`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply, err := ParseOpeningReply(tc.raw)
			if err != nil {
				t.Fatal(err)
			}
			if reply.Decision != DecisionInitialOffer || *reply.Offer != 20 {
				t.Errorf("unexpected reply: %+v", reply)
			}
		})
	}
}

func TestParseOpeningReplyLeave(t *testing.T) {
	reply, err := ParseOpeningReply(`{"spokenResponse": "Nothing for me today.", "decision": "leave"}`)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Decision != DecisionLeave {
		t.Errorf("decision = %q", reply.Decision)
	}
}

func TestParseOpeningReplyRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no json at all", "I think I'll offer 30 gold for the potion."},
		{"unknown decision", `{"spokenResponse": "hi", "decision": "ponder"}`},
		{"counter-round decision", `{"spokenResponse": "hi", "offer": 30, "decision": "counter"}`},
		{"initial offer without offer", `{"spokenResponse": "hi", "itemId": "x", "decision": "initial_offer"}`},
		{"initial offer without item", `{"spokenResponse": "hi", "offer": 30, "decision": "initial_offer"}`},
		{"empty item id", `{"spokenResponse": "hi", "offer": 30, "itemId": "", "decision": "initial_offer"}`},
		{"truncated json", `{"spokenResponse": "hi", "offer": 30`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseOpeningReply(tc.raw); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseCounterReply(t *testing.T) {
	reply, err := ParseCounterReply(`{"spokenResponse": "Meet me at 35.", "offer": 35, "decision": "counter"}`)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Decision != DecisionCounter || *reply.Offer != 35 {
		t.Errorf("unexpected reply: %+v", reply)
	}

	for _, decision := range []string{DecisionAccept, DecisionReject} {
		reply, err := ParseCounterReply(`{"spokenResponse": "Fine.", "decision": "` + decision + `"}`)
		if err != nil {
			t.Fatalf("%s: %v", decision, err)
		}
		if reply.Decision != decision {
			t.Errorf("decision = %q, want %q", reply.Decision, decision)
		}
	}
}

func TestParseCounterReplyRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"counter without offer", `{"spokenResponse": "Meet me halfway.", "decision": "counter"}`},
		{"opening-round decision", `{"spokenResponse": "hi", "offer": 30, "itemId": "x", "decision": "initial_offer"}`},
		{"empty string", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCounterReply(tc.raw); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
