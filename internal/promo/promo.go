// Package promo validates promotional redemption codes and turns them into
// bonus packs.
package promo

import (
	"strings"

	"cardbinder/internal/model"
	"cardbinder/internal/rules"
)

// Code is one catalog record. The catalog is immutable, externally supplied,
// keyed by upper-case code.
type Code struct {
	Sponsor     string       `toml:"sponsor" json:"sponsor"`
	League      string       `toml:"league" json:"league"`
	CardCount   int          `toml:"card_count" json:"cardCount"`
	Guaranteed  model.Rarity `toml:"guaranteed" json:"guaranteed,omitempty"`
	Description string       `toml:"description" json:"description"`
	Color       string       `toml:"color" json:"color"`
}

// Catalog maps normalized code strings to their entries.
type Catalog map[string]Code

// RejectReason classifies a failed redemption. Callers surface a distinct
// user-facing message per reason.
type RejectReason string

const (
	RejectEmpty           RejectReason = "EMPTY"
	RejectInvalid         RejectReason = "INVALID"
	RejectAlreadyRedeemed RejectReason = "ALREADY_REDEEMED"
)

// Result is the tagged outcome of a redemption attempt. Rejection is an
// expected user-input outcome, not an error.
type Result struct {
	OK          bool         `json:"ok"`
	Reason      RejectReason `json:"reason,omitempty"`
	Code        string       `json:"code,omitempty"`
	Sponsor     string       `json:"sponsor,omitempty"`
	Description string       `json:"description,omitempty"`
	Cards       []model.Card `json:"cards,omitempty"`
}

// Normalize trims whitespace and upper-cases a raw code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Redeem checks a code against the catalog and the redeemed set, and on
// success generates the promo pack. Checks short-circuit in order: empty,
// unknown, already redeemed. The code is marked redeemed before generation,
// so a redemption whose pack comes back empty still consumes the code.
// The redeemed set is caller-owned and mutated in place.
func Redeem(rng rules.RNG, raw string, catalog Catalog, redeemed map[string]bool, nextID model.CardID, teams []model.Team, cfg rules.PackConfig) Result {
	code := Normalize(raw)
	if code == "" {
		return Result{Reason: RejectEmpty}
	}

	entry, ok := catalog[code]
	if !ok {
		return Result{Reason: RejectInvalid}
	}

	if redeemed[code] {
		return Result{Reason: RejectAlreadyRedeemed}
	}
	redeemed[code] = true

	cards := rules.GeneratePack(rng, rules.PackParams{
		Count:      entry.CardCount,
		League:     entry.League,
		Guaranteed: entry.Guaranteed,
		NextID:     nextID,
	}, teams, cfg)

	return Result{
		OK:          true,
		Code:        code,
		Sponsor:     entry.Sponsor,
		Description: entry.Description,
		Cards:       cards,
	}
}
