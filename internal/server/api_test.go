package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardbinder/internal/catalog"
	"cardbinder/internal/clock"
	"cardbinder/internal/config"
	"cardbinder/internal/game"
	"cardbinder/internal/model"
	"cardbinder/internal/player"
	"cardbinder/internal/promo"
	"cardbinder/internal/telemetry"
)

func newTestApp() *App {
	cat := &catalog.Catalog{
		Teams: []model.Team{
			{Name: "Yankees", League: "MLB"},
			{Name: "Lakers", League: "NBA"},
		},
		PromoCodes: promo.Catalog{
			"TEST-CODE": {Sponsor: "Acme", League: model.LeagueAll, CardCount: 3, Guaranteed: model.RarityRare},
		},
		PlayerNames: catalog.PlayerNames{
			FirstNames: []string{"Alex"},
			LastNames:  []string{"Rivera"},
		},
	}
	engine := game.NewEngine(
		cat,
		config.Default(),
		player.NewMemoryRepo(),
		telemetry.NewMemoryRepository(),
		clock.NewFake(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)),
		rand.New(rand.NewSource(1)),
	)
	return &App{Engine: engine}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v body=%s", err, rec.Body.String())
	}
	return out
}

func TestPlayerState(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/player/state", nil)
	rec := httptest.NewRecorder()
	app.PlayerState(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	out := decodeBody(t, rec)
	if out["coins"].(float64) != 500 {
		t.Errorf("coins = %v", out["coins"])
	}

	t.Run("rejects POST", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.PlayerState(rec, httptest.NewRequest(http.MethodPost, "/api/player/state", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("got %d", rec.Code)
		}
	})
}

func TestBuyPack(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/shop/pack", nil)
	rec := httptest.NewRecorder()
	app.BuyPack(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	out := decodeBody(t, rec)
	if cards := out["cards"].([]any); len(cards) != 5 {
		t.Errorf("got %d cards", len(cards))
	}
	if out["coins"].(float64) != 400 {
		t.Errorf("coins = %v", out["coins"])
	}

	t.Run("broke player gets a tagged refusal", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			rec := httptest.NewRecorder()
			app.BuyPack(rec, httptest.NewRequest(http.MethodPost, "/api/shop/pack", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("pack %d: got %d", i, rec.Code)
			}
		}

		rec := httptest.NewRecorder()
		app.BuyPack(rec, httptest.NewRequest(http.MethodPost, "/api/shop/pack", nil))
		if rec.Code != http.StatusPaymentRequired {
			t.Fatalf("expected 402, got %d body=%s", rec.Code, rec.Body.String())
		}
		out := decodeBody(t, rec)
		if out["ok"].(bool) {
			t.Error("refusal marked ok")
		}
	})
}

func TestRedeem(t *testing.T) {
	app := newTestApp()

	post := func(code string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"code": code})
		req := httptest.NewRequest(http.MethodPost, "/api/shop/redeem", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		app.Redeem(rec, req)
		return rec
	}

	t.Run("valid code succeeds case-insensitively", func(t *testing.T) {
		rec := post("  test-code  ")
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d body=%s", rec.Code, rec.Body.String())
		}
		out := decodeBody(t, rec)
		if out["code"].(string) != "TEST-CODE" {
			t.Errorf("code = %v", out["code"])
		}
		if cards := out["cards"].([]any); len(cards) != 3 {
			t.Errorf("got %d cards", len(cards))
		}
	})

	cases := []struct {
		name       string
		code       string
		wantStatus int
		wantReason string
	}{
		{"empty input", "   ", http.StatusBadRequest, "EMPTY"},
		{"unknown code", "NOPE", http.StatusNotFound, "INVALID"},
		{"already redeemed", "TEST-CODE", http.StatusConflict, "ALREADY_REDEEMED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(tc.code)
			if rec.Code != tc.wantStatus {
				t.Fatalf("got %d, want %d; body=%s", rec.Code, tc.wantStatus, rec.Body.String())
			}
			out := decodeBody(t, rec)
			if out["reason"].(string) != tc.wantReason {
				t.Errorf("reason = %v", out["reason"])
			}
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/shop/redeem", bytes.NewReader([]byte("{nope")))
		rec := httptest.NewRecorder()
		app.Redeem(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("got %d", rec.Code)
		}
	})
}

func TestAlbumFlow(t *testing.T) {
	app := newTestApp()

	// Buy a pack to have a card to place.
	rec := httptest.NewRecorder()
	app.BuyPack(rec, httptest.NewRequest(http.MethodPost, "/api/shop/pack", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("buy pack: %d", rec.Code)
	}
	var packResp struct {
		Cards []model.Card `json:"cards"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&packResp); err != nil {
		t.Fatal(err)
	}
	card := packResp.Cards[0]

	place := func(id model.CardID, team string, slot int) *httptest.ResponseRecorder {
		body, _ := json.Marshal(placeRequest{CardID: id, Team: team, Slot: slot})
		req := httptest.NewRequest(http.MethodPost, "/api/album/place", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		app.Place(rec, req)
		return rec
	}

	t.Run("matching placement succeeds", func(t *testing.T) {
		rec := place(card.ID, card.Team, card.Number)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("occupied slot conflicts", func(t *testing.T) {
		rec := place(card.ID, card.Team, card.Number)
		if rec.Code != http.StatusConflict {
			t.Fatalf("got %d body=%s", rec.Code, rec.Body.String())
		}
		out := decodeBody(t, rec)
		if out["outcome"].(string) != "OCCUPIED" {
			t.Errorf("outcome = %v", out["outcome"])
		}
	})

	t.Run("album snapshot shows the placement", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/album?team="+card.Team, nil)
		rec := httptest.NewRecorder()
		app.AlbumState(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d", rec.Code)
		}
		out := decodeBody(t, rec)
		slots := out["slots"].([]any)
		filled := slots[card.Number-1].(map[string]any)
		if filled["filled"] != true {
			t.Errorf("slot %d not filled: %v", card.Number, filled)
		}
	})

	t.Run("matching slots for a placed card is empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/album/matching?card=%d", card.ID), nil)
		rec := httptest.NewRecorder()
		app.Matching(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("remove frees the slot", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"team": card.Team, "slot": card.Number})
		req := httptest.NewRequest(http.MethodPost, "/api/album/remove", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		app.Remove(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d body=%s", rec.Code, rec.Body.String())
		}
		out := decodeBody(t, rec)
		if out["removed"] != true {
			t.Errorf("removed = %v", out["removed"])
		}
	})

	t.Run("unknown card id is a 404", func(t *testing.T) {
		rec := place(9999, "Yankees", 1)
		if rec.Code != http.StatusNotFound {
			t.Errorf("got %d", rec.Code)
		}
	})

	t.Run("missing team param is a 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.AlbumState(rec, httptest.NewRequest(http.MethodGet, "/api/album", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("got %d", rec.Code)
		}
	})
}

func TestDailyBonusHandler(t *testing.T) {
	app := newTestApp()

	rec := httptest.NewRecorder()
	app.DailyBonus(rec, httptest.NewRequest(http.MethodPost, "/api/player/daily-bonus", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	out := decodeBody(t, rec)
	if out["granted"] != true {
		t.Errorf("granted = %v", out["granted"])
	}

	t.Run("second claim the same day is not granted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.DailyBonus(rec, httptest.NewRequest(http.MethodPost, "/api/player/daily-bonus", nil))
		out := decodeBody(t, rec)
		if out["granted"] != false {
			t.Errorf("granted = %v", out["granted"])
		}
	})
}

func TestTelemetryStats(t *testing.T) {
	app := newTestApp()

	rec := httptest.NewRecorder()
	app.BuyPack(rec, httptest.NewRequest(http.MethodPost, "/api/shop/pack", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("buy pack: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	app.TelemetryStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d body=%s", rec.Code, rec.Body.String())
	}
	out := decodeBody(t, rec)
	if out["packs_opened"].(float64) != 1 {
		t.Errorf("packs opened = %v", out["packs_opened"])
	}
	byRarity := out["cards_by_rarity"].(map[string]any)
	total := 0.0
	for _, n := range byRarity {
		total += n.(float64)
	}
	if total != 5 {
		t.Errorf("rarity counts sum to %v: %v", total, byRarity)
	}

	t.Run("future since filters everything out", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.TelemetryStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats?since=2100-01-01", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d", rec.Code)
		}
		out := decodeBody(t, rec)
		if out["packs_opened"].(float64) != 0 {
			t.Errorf("packs opened = %v", out["packs_opened"])
		}
	})

	t.Run("malformed since is a 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		app.TelemetryStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats?since=yesterday", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("got %d", rec.Code)
		}
	})
}

func TestUsersAreIsolated(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/shop/pack", nil)
	req.Header.Set("X-User", "alice")
	rec := httptest.NewRecorder()
	app.BuyPack(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/player/state", nil)
	req.Header.Set("X-User", "bob")
	rec = httptest.NewRecorder()
	app.PlayerState(rec, req)
	out := decodeBody(t, rec)
	if out["coins"].(float64) != 500 {
		t.Errorf("bob's coins = %v, want untouched 500", out["coins"])
	}
}
