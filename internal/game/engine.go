// Package game orchestrates the session-level flows on top of the rules
// engine: buying packs, redeeming codes, the daily bonus, and placements.
package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"cardbinder/internal/catalog"
	"cardbinder/internal/clock"
	"cardbinder/internal/config"
	"cardbinder/internal/model"
	"cardbinder/internal/player"
	"cardbinder/internal/promo"
	"cardbinder/internal/rules"
	"cardbinder/internal/telemetry"
)

// Engine serializes all mutating operations so the id counter and the
// redeemed set never interleave.
type Engine struct {
	Catalog   *catalog.Catalog
	Config    *config.Config
	Players   player.Repo
	Telemetry telemetry.Repository
	Clock     clock.Clock
	RNG       rules.RNG

	mu sync.Mutex
}

func NewEngine(cat *catalog.Catalog, cfg *config.Config, players player.Repo, tel telemetry.Repository, clk clock.Clock, rng rules.RNG) *Engine {
	if clk == nil {
		clk = clock.Real{}
	}
	if rng == nil {
		rng = rules.NewRNG()
	}
	return &Engine{
		Catalog:   cat,
		Config:    cfg,
		Players:   players,
		Telemetry: tel,
		Clock:     clk,
		RNG:       rng,
	}
}

func (e *Engine) packConfig() rules.PackConfig {
	return rules.PackConfig{
		CardsPerTeam: e.Config.CardsPerTeam,
		Odds:         e.Config.RarityOdds,
		FirstNames:   e.Catalog.PlayerNames.FirstNames,
		LastNames:    e.Catalog.PlayerNames.LastNames,
	}
}

// loadState returns the user's state, falling back to fresh-session
// defaults when nothing usable is persisted.
func (e *Engine) loadState(ctx context.Context, userID string) (player.State, error) {
	s, found, err := e.Players.Load(ctx, userID)
	if err != nil {
		return player.State{}, err
	}
	if !found {
		s = player.NewState(e.Config.StartingCoins)
	}
	return s, nil
}

func (e *Engine) record(eventType telemetry.EventType, meta telemetry.EventMetadata) {
	if e.Telemetry == nil {
		return
	}
	if err := e.Telemetry.RecordEvent(eventType, meta); err != nil {
		slog.Warn("telemetry record failed", "event", string(eventType), "error", err)
	}
}

// State returns a copy of the user's current state.
func (e *Engine) State(ctx context.Context, userID string) (player.State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.loadState(ctx, userID)
	if err != nil {
		return player.State{}, err
	}
	return s.Clone(), nil
}

// OpenPackResult is the outcome of a standard pack purchase.
type OpenPackResult struct {
	OK    bool         `json:"ok"`
	Cards []model.Card `json:"cards,omitempty"`
	Coins int          `json:"coins"`
	Price int          `json:"price"`
}

// OpenPack debits the pack price and appends a freshly generated pack to the
// inventory. The balance gate lives here, not in the generator: the rules
// engine's contract is "produce N cards", affordability is the session's
// concern. Refusal is a tagged outcome.
func (e *Engine) OpenPack(ctx context.Context, userID string) (OpenPackResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadState(ctx, userID)
	if err != nil {
		return OpenPackResult{}, err
	}

	price := e.Config.StandardPackPrice
	if s.Coins < price {
		return OpenPackResult{OK: false, Coins: s.Coins, Price: price}, nil
	}

	cards := rules.GeneratePack(e.RNG, rules.PackParams{
		Count:  e.Config.StandardPackSize,
		League: model.LeagueAll,
		NextID: s.CardIDCounter,
	}, e.Catalog.Teams, e.packConfig())

	s.Coins -= price
	s.Inventory = append(s.Inventory, cards...)
	s.CardIDCounter += model.CardID(len(cards))

	if err := e.Players.Save(ctx, userID, s); err != nil {
		return OpenPackResult{}, err
	}

	e.record(telemetry.EventPackOpened, telemetry.EventMetadata{
		"user":     userID,
		"count":    len(cards),
		"rarities": rarities(cards),
	})
	return OpenPackResult{OK: true, Cards: cards, Coins: s.Coins, Price: price}, nil
}

// Redeem validates a promo code and, on success, appends its bonus pack to
// the inventory. The code is consumed even when downstream generation yields
// no cards.
func (e *Engine) Redeem(ctx context.Context, userID, code string) (promo.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadState(ctx, userID)
	if err != nil {
		return promo.Result{}, err
	}

	res := promo.Redeem(e.RNG, code, e.Catalog.PromoCodes, s.RedeemedCodes, s.CardIDCounter, e.Catalog.Teams, e.packConfig())
	if !res.OK {
		e.record(telemetry.EventCodeRejected, telemetry.EventMetadata{
			"user":   userID,
			"reason": string(res.Reason),
		})
		return res, nil
	}

	s.Inventory = append(s.Inventory, res.Cards...)
	s.CardIDCounter += model.CardID(len(res.Cards))

	if err := e.Players.Save(ctx, userID, s); err != nil {
		return promo.Result{}, err
	}

	e.record(telemetry.EventCodeRedeemed, telemetry.EventMetadata{
		"user":    userID,
		"code":    res.Code,
		"sponsor": res.Sponsor,
		"count":   len(res.Cards),
	})
	return res, nil
}

// DailyBonusResult reports whether the once-per-calendar-day bonus applied.
type DailyBonusResult struct {
	Granted bool `json:"granted"`
	Amount  int  `json:"amount,omitempty"`
	Coins   int  `json:"coins"`
}

// DailyBonus grants the login bonus when the last login fell on a different
// calendar day than today. The comparison is by calendar day, not elapsed
// time.
func (e *Engine) DailyBonus(ctx context.Context, userID string) (DailyBonusResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadState(ctx, userID)
	if err != nil {
		return DailyBonusResult{}, err
	}

	now := e.Clock.Now()
	if !s.LastLogin.IsZero() && clock.SameDay(s.LastLogin, now) {
		return DailyBonusResult{Granted: false, Coins: s.Coins}, nil
	}

	s.Coins += e.Config.DailyBonus
	s.LastLogin = now
	if err := e.Players.Save(ctx, userID, s); err != nil {
		return DailyBonusResult{}, err
	}

	e.record(telemetry.EventDailyBonus, telemetry.EventMetadata{
		"user":   userID,
		"amount": e.Config.DailyBonus,
	})
	return DailyBonusResult{Granted: true, Amount: e.Config.DailyBonus, Coins: s.Coins}, nil
}

// TelemetryStats aggregates recorded gameplay events since the given time,
// for balance tuning.
func (e *Engine) TelemetryStats(since time.Time) (telemetry.Stats, error) {
	if e.Telemetry == nil {
		return telemetry.Stats{}, errors.New("telemetry is not configured")
	}
	events, err := e.Telemetry.GetEvents(since, nil)
	if err != nil {
		return telemetry.Stats{}, err
	}
	return telemetry.CalculateStats(events, since)
}

func rarities(cards []model.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = string(c.Rarity)
	}
	return out
}
