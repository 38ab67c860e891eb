// Package player owns the caller-side mutable state of the game: coins,
// inventory, the card id counter, redeemed promo codes, and album placements.
package player

import (
	"time"

	"cardbinder/internal/model"
)

// State is the complete persisted session state for one collector.
type State struct {
	Coins         int                             `json:"coins"`
	Inventory     []model.Card                    `json:"inventory"`
	CardIDCounter model.CardID                    `json:"cardIdCounter"`
	RedeemedCodes map[string]bool                 `json:"redeemedCodes"`
	LastLogin     time.Time                       `json:"lastLogin"`
	Albums        map[string]map[int]model.CardID `json:"albums,omitempty"`
}

// NewState returns the fresh-session defaults: starting coins, empty
// inventory, counter at 1, nothing redeemed.
func NewState(startingCoins int) State {
	return State{
		Coins:         startingCoins,
		Inventory:     []model.Card{},
		CardIDCounter: 1,
		RedeemedCodes: map[string]bool{},
		Albums:        map[string]map[int]model.CardID{},
	}
}

// normalize repairs a loaded state so downstream code never sees nil maps
// or a counter below its starting value.
func normalize(s State) State {
	if s.Inventory == nil {
		s.Inventory = []model.Card{}
	}
	if s.CardIDCounter < 1 {
		s.CardIDCounter = 1
	}
	if s.RedeemedCodes == nil {
		s.RedeemedCodes = map[string]bool{}
	}
	if s.Albums == nil {
		s.Albums = map[string]map[int]model.CardID{}
	}
	return s
}

// Clone deep-copies the state so callers cannot alias repo internals.
func (s State) Clone() State {
	out := s
	out.Inventory = append([]model.Card{}, s.Inventory...)
	out.RedeemedCodes = make(map[string]bool, len(s.RedeemedCodes))
	for k, v := range s.RedeemedCodes {
		out.RedeemedCodes[k] = v
	}
	out.Albums = make(map[string]map[int]model.CardID, len(s.Albums))
	for team, placed := range s.Albums {
		cp := make(map[int]model.CardID, len(placed))
		for n, id := range placed {
			cp[n] = id
		}
		out.Albums[team] = cp
	}
	return out
}

// CardByID finds a card in the inventory.
func (s State) CardByID(id model.CardID) (model.Card, bool) {
	for _, c := range s.Inventory {
		if c.ID == id {
			return c, true
		}
	}
	return model.Card{}, false
}
