// Package server exposes the engine over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cardbinder/internal/album"
	"cardbinder/internal/game"
	"cardbinder/internal/model"
	"cardbinder/internal/promo"
)

// App bundles everything the HTTP layer serves.
type App struct {
	Engine *game.Engine
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// userID resolves the acting collector. State is client-local and trusted;
// there is no auth boundary.
func userID(r *http.Request) string {
	if u := strings.TrimSpace(r.Header.Get("X-User")); u != "" {
		return u
	}
	if u := strings.TrimSpace(r.URL.Query().Get("user")); u != "" {
		return u
	}
	return "default"
}

// GET /api/player/state
func (a *App) PlayerState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	state, err := a.Engine.State(r.Context(), userID(r))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not load player state")
		return
	}
	stats, err := a.Engine.Stats(r.Context(), userID(r))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not compute stats")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"coins":     state.Coins,
		"inventory": state.Inventory,
		"stats":     stats,
	})
}

// POST /api/player/daily-bonus
func (a *App) DailyBonus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	res, err := a.Engine.DailyBonus(r.Context(), userID(r))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not apply daily bonus")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /api/shop/pack
func (a *App) BuyPack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	res, err := a.Engine.OpenPack(r.Context(), userID(r))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not open pack")
		return
	}
	if !res.OK {
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"ok":    false,
			"error": fmt.Sprintf("not enough coins, pack costs %d", res.Price),
			"coins": res.Coins,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// rejectMessages maps each redemption rejection to its user-facing message.
var rejectMessages = map[promo.RejectReason]struct {
	status int
	msg    string
}{
	promo.RejectEmpty:           {http.StatusBadRequest, "please enter a code"},
	promo.RejectInvalid:         {http.StatusNotFound, "invalid code, please check and try again"},
	promo.RejectAlreadyRedeemed: {http.StatusConflict, "this code has already been redeemed"},
}

// POST /api/shop/redeem
func (a *App) Redeem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	res, err := a.Engine.Redeem(r.Context(), userID(r), in.Code)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not redeem code")
		return
	}
	if !res.OK {
		m := rejectMessages[res.Reason]
		writeJSON(w, m.status, map[string]any{
			"ok":     false,
			"reason": res.Reason,
			"error":  m.msg,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/stats?since=YYYY-MM-DD
func (a *App) TelemetryStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var since time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, `invalid query parameter "since", want YYYY-MM-DD`)
			return
		}
		since = parsed
	}

	stats, err := a.Engine.TelemetryStats(since)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/album?team=...
func (a *App) AlbumState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	team := strings.TrimSpace(r.URL.Query().Get("team"))
	if team == "" {
		writeErr(w, http.StatusBadRequest, `missing query parameter "team"`)
		return
	}
	slots, err := a.Engine.AlbumSnapshot(r.Context(), userID(r), team)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not load album")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"team": team, "slots": slots})
}

type placeRequest struct {
	CardID model.CardID `json:"cardId"`
	Team   string       `json:"team"`
	Slot   int          `json:"slot"`
}

// placementMessage narrates a rejected placement the way the drag-and-drop
// UI does: wrong team beats wrong number.
func placementMessage(out album.Outcome, req placeRequest) string {
	switch out {
	case album.OutcomeOccupied:
		return fmt.Sprintf("slot #%d is already filled", req.Slot)
	case album.OutcomeMismatchTeam:
		return fmt.Sprintf("cannot place this card in a %s slot", req.Team)
	case album.OutcomeMismatchNumber:
		return fmt.Sprintf("this card must go in its own numbered slot, not #%d", req.Slot)
	default:
		return ""
	}
}

// POST /api/album/place
func (a *App) Place(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in placeRequest
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	res, err := a.Engine.PlaceCard(r.Context(), userID(r), in.CardID, model.AlbumSlot(in.Team, in.Slot))
	if err != nil {
		if errors.Is(err, game.ErrCardNotFound) {
			writeErr(w, http.StatusNotFound, "card not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, "could not place card")
		return
	}
	if res.Outcome != album.OutcomePlaced {
		writeJSON(w, http.StatusConflict, map[string]any{
			"ok":      false,
			"outcome": res.Outcome,
			"error":   placementMessage(res.Outcome, in),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "outcome": res.Outcome, "slot": res.Slot})
}

// POST /api/album/remove
func (a *App) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in struct {
		Team string `json:"team"`
		Slot int    `json:"slot"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	id, removed, err := a.Engine.RemoveCard(r.Context(), userID(r), in.Team, in.Slot)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not remove card")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "removed": removed, "cardId": id})
}

// GET /api/album/matching?card=ID
func (a *App) Matching(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	raw, err := strconv.ParseInt(r.URL.Query().Get("card"), 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, `missing or invalid query parameter "card"`)
		return
	}
	cardID := model.CardID(raw)

	slots, err := a.Engine.MatchingSlots(r.Context(), userID(r), cardID)
	if err != nil {
		if errors.Is(err, game.ErrCardNotFound) {
			writeErr(w, http.StatusNotFound, "card not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, "could not compute matching slots")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}
