// Package api exposes the shop engine to the UI layer over HTTP: state
// reads, the action vocabulary as POST endpoints, and the consent flow
// that gates the agent subsystem.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/haggle/internal/agent"
	"github.com/talgya/haggle/internal/catalog"
	"github.com/talgya/haggle/internal/economy"
	"github.com/talgya/haggle/internal/persistence"
	"github.com/talgya/haggle/internal/shop"
)

// Server serves the shop state and actions.
type Server struct {
	Shop    *shop.Shop
	Session *shop.Session
	Agent   *agent.Service
	DB      *persistence.DB
	Port    int

	// BuildOracle constructs the oracle once consent is granted.
	BuildOracle func() (agent.Oracle, error)
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	// The agent-backed rounds are the expensive calls; keep them bounded.
	roundLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/state", s.handleState)
	mux.HandleFunc("GET /api/v1/market", s.handleMarket)
	mux.HandleFunc("GET /api/v1/transcripts", s.handleTranscripts)

	mux.HandleFunc("POST /api/v1/consent", s.handleConsent)

	mux.HandleFunc("POST /api/v1/buy", s.handleBuy)
	mux.HandleFunc("POST /api/v1/shelf", s.handleMoveToShelf)
	mux.HandleFunc("POST /api/v1/upgrade-shelf", s.handleUpgradeShelf)
	mux.HandleFunc("POST /api/v1/advance", s.handleAdvance)

	mux.HandleFunc("POST /api/v1/next-customer", RateLimitMiddleware(roundLimiter, s.handleNextCustomer))
	mux.HandleFunc("POST /api/v1/respond", RateLimitMiddleware(roundLimiter, s.handleRespond))
	mux.HandleFunc("POST /api/v1/accept", s.handleAccept)
	mux.HandleFunc("POST /api/v1/walk-away", s.handleWalkAway)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware allows the local dev UI plus anything in CORS_ORIGINS.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.Shop.Snapshot()
	writeJSON(w, map[string]any{
		"shop":        snap,
		"agent_state": s.Agent.State(),
		"busy":        s.Agent.Busy(),
	})
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	snap := s.Shop.Snapshot()
	writeJSON(w, map[string]any{
		"reputation": snap.Reputation,
		"items":      catalog.EligibleItems(snap.Reputation),
	})
}

func (s *Server) handleTranscripts(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	transcripts, err := s.DB.RecentTranscripts(limit)
	if err != nil {
		http.Error(w, "transcript read failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"transcripts": transcripts})
}

func (s *Server) handleConsent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Granted bool `json:"granted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := s.DB.SetConsent(req.Granted); err != nil {
		http.Error(w, "consent save failed", http.StatusInternalServerError)
		return
	}
	if req.Granted && s.BuildOracle != nil {
		go s.Agent.Load(s.BuildOracle)
	}
	writeJSON(w, map[string]any{"granted": req.Granted, "agent_state": s.Agent.State()})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"template_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.respondAfter(w, s.Shop.Apply(shop.BuyItem{TemplateID: req.TemplateID}))
}

func (s *Server) handleMoveToShelf(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InstanceID string `json:"instance_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.respondAfter(w, s.Shop.Apply(shop.MoveItemToShelf{InstanceID: req.InstanceID}))
}

func (s *Server) handleUpgradeShelf(w http.ResponseWriter, r *http.Request) {
	s.respondAfter(w, s.Shop.Apply(shop.UpgradeShelf{}))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.respondAfter(w, s.Shop.Apply(shop.AdvancePhase{}))
}

func (s *Server) handleNextCustomer(w http.ResponseWriter, r *http.Request) {
	s.respondAfter(w, s.Session.NextCustomer(r.Context()))
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text  string          `json:"text"`
		Price json.RawMessage `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	price, ok := parsePrice(req.Price)
	if !ok {
		// Invalid input is rejected locally: a message, no state change.
		s.Shop.Say("Please enter a valid price number!")
		s.respondAfter(w, errInvalidPrice)
		return
	}
	s.respondAfter(w, s.Session.SendResponse(r.Context(), req.Text, price))
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	s.respondAfter(w, s.Session.AcceptOffer())
}

func (s *Server) handleWalkAway(w http.ResponseWriter, r *http.Request) {
	s.respondAfter(w, s.Session.WalkAway())
}

var errInvalidPrice = errors.New("price must be a number")

// parsePrice accepts a JSON number or numeric string and rejects the rest.
func parsePrice(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// respondAfter maps a transition result to a status code and returns the
// fresh snapshot either way, since rejected actions may still have added a
// dialogue line.
func (s *Server) respondAfter(w http.ResponseWriter, err error) {
	status := http.StatusOK
	var errText string
	if err != nil {
		errText = err.Error()
		switch {
		case errors.Is(err, shop.ErrGameOver),
			errors.Is(err, shop.ErrWrongPhase),
			errors.Is(err, shop.ErrNegotiationActive),
			errors.Is(err, shop.ErrNoNegotiation),
			errors.Is(err, shop.ErrNoCustomer),
			errors.Is(err, shop.ErrShelfFull),
			errors.Is(err, shop.ErrShelfEmpty),
			errors.Is(err, agent.ErrBusy),
			errors.Is(err, agent.ErrNotReady):
			status = http.StatusConflict
		case errors.Is(err, shop.ErrUnknownItem):
			status = http.StatusNotFound
		case errors.Is(err, economy.ErrInsufficientGold),
			errors.Is(err, shop.ErrItemLocked),
			errors.Is(err, errInvalidPrice):
			status = http.StatusUnprocessableEntity
		default:
			status = http.StatusInternalServerError
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]any{
		"error": errText,
		"shop":  s.Shop.Snapshot(),
		"busy":  s.Agent.Busy(),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
