package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/talgya/haggle/internal/agent"
	"github.com/talgya/haggle/internal/shop"
)

func testServer() *Server {
	return &Server{
		Shop:  shop.New(shop.DefaultConfig()),
		Agent: agent.NewService(),
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
		ok   bool
	}{
		{"number", `42`, 42, true},
		{"numeric string", `"42"`, 42, true},
		{"padded string", `" 42 "`, 42, true},
		{"words", `"forty"`, 0, false},
		{"empty string", `""`, 0, false},
		{"missing", ``, 0, false},
		{"object", `{"n": 1}`, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parsePrice(json.RawMessage(tc.raw))
			if got != tc.want || ok != tc.ok {
				t.Errorf("parsePrice(%q) = %d, %v; want %d, %v", tc.raw, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestHandleBuy(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/buy", strings.NewReader(`{"template_id": "wh001"}`))
	rec := httptest.NewRecorder()
	s.handleBuy(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Shop shop.Snapshot `json:"shop"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Shop.Gold != 975 || len(resp.Shop.Inventory) != 1 {
		t.Errorf("gold %d inventory %d, want 975 and 1", resp.Shop.Gold, len(resp.Shop.Inventory))
	}
}

func TestHandleBuyTierLocked(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/buy", strings.NewReader(`{"template_id": "wh003"}`))
	rec := httptest.NewRecorder()
	s.handleBuy(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestHandleBuyUnknownTemplate(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/buy", strings.NewReader(`{"template_id": "wh999"}`))
	rec := httptest.NewRecorder()
	s.handleBuy(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleRespondRejectsNonNumericPrice(t *testing.T) {
	s := testServer()
	s.Session = &shop.Session{Shop: s.Shop, Agent: s.Agent}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/respond", strings.NewReader(`{"text": "hello", "price": "a lot"}`))
	rec := httptest.NewRecorder()
	s.handleRespond(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var resp struct {
		Shop shop.Snapshot `json:"shop"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, line := range resp.Shop.Dialogue {
		if strings.Contains(line.Text, "valid price") {
			found = true
		}
	}
	if !found {
		t.Error("expected the invalid-price dialogue line")
	}
}

func TestHandleAdvanceWhileNotReady(t *testing.T) {
	// Phase advancement needs no agent; it must work before consent.
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/advance", nil)
	rec := httptest.NewRecorder()
	s.handleAdvance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Shop shop.Snapshot `json:"shop"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Shop.Phase != shop.PhaseSettingUp || resp.Shop.Day != 2 {
		t.Errorf("phase %q day %d, want setting up day 2", resp.Shop.Phase, resp.Shop.Day)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := &RateLimiter{
		buckets:   map[string]*bucket{},
		maxTokens: 2,
		window:    time.Minute,
	}

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("third request should be limited")
	}
	// A different client has its own bucket.
	if !rl.Allow("5.6.7.8") {
		t.Fatal("other clients are unaffected")
	}
	if rl.RetryAfter("1.2.3.4") <= 0 {
		t.Error("limited client should get a positive retry-after")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := &RateLimiter{
		buckets:   map[string]*bucket{},
		maxTokens: 1,
		window:    time.Minute,
	}
	calls := 0
	handler := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/next-customer", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK || calls != 1 {
		t.Fatalf("first request: status %d, calls %d", rec.Code, calls)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("limited response should carry Retry-After")
	}
	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}
}
