// Package album decides whether cards may occupy album slots and tracks
// per-slot occupancy.
package album

import (
	"fmt"

	"cardbinder/internal/model"
)

// Outcome is the tagged result of a placement attempt.
type Outcome string

const (
	OutcomePlaced         Outcome = "PLACED"
	OutcomeOccupied       Outcome = "OCCUPIED"
	OutcomeMismatchTeam   Outcome = "MISMATCH_TEAM"
	OutcomeMismatchNumber Outcome = "MISMATCH_NUMBER"
)

// CanPlace reports whether a card may occupy a slot, ignoring occupancy.
// The holding area accepts any card; an album slot requires both the number
// and the team to match; anything else is rejected.
func CanPlace(card model.Card, slot model.SlotRef) bool {
	switch slot.Kind {
	case model.SlotHolding:
		return true
	case model.SlotAlbum:
		return card.Number == slot.Number && card.Team == slot.Team
	default:
		return false
	}
}

// Album is the placement state for one team's grid. Each slot moves between
// empty and occupied; no other transitions exist.
type Album struct {
	Team      string
	SlotCount int

	placed map[int]model.CardID
}

// New creates an empty album for a team with slots numbered [1, slotCount].
func New(team string, slotCount int) *Album {
	return &Album{
		Team:      team,
		SlotCount: slotCount,
		placed:    make(map[int]model.CardID),
	}
}

// Occupant returns the card occupying slot n, if any.
func (a *Album) Occupant(n int) (model.CardID, bool) {
	id, ok := a.placed[n]
	return id, ok
}

// Place attempts to put a card into a slot, checking occupancy and the
// number/team predicate in one authoritative step. Team is compared before
// number so the caller's "wrong team" message wins when both mismatch.
func (a *Album) Place(card model.Card, slot model.SlotRef) Outcome {
	if slot.Kind == model.SlotHolding {
		return OutcomePlaced
	}
	if _, taken := a.placed[slot.Number]; taken {
		return OutcomeOccupied
	}
	if card.Team != slot.Team {
		return OutcomeMismatchTeam
	}
	if card.Number != slot.Number {
		return OutcomeMismatchNumber
	}
	a.placed[slot.Number] = card.ID
	return OutcomePlaced
}

// Remove moves the occupant of slot n back to the holding area. Removing
// from an empty slot is a no-op.
func (a *Album) Remove(n int) (model.CardID, bool) {
	id, ok := a.placed[n]
	if ok {
		delete(a.placed, n)
	}
	return id, ok
}

// MatchingSlots returns every unoccupied album slot whose number and team
// equal the card's. Used to highlight valid drop targets; never mutates
// occupancy.
func (a *Album) MatchingSlots(card model.Card) []model.SlotRef {
	matches := []model.SlotRef{}
	for n := 1; n <= a.SlotCount; n++ {
		slot := model.AlbumSlot(a.Team, n)
		if !CanPlace(card, slot) {
			continue
		}
		if _, taken := a.placed[n]; taken {
			continue
		}
		matches = append(matches, slot)
	}
	return matches
}

// SlotView is the serialized occupancy of one slot.
type SlotView struct {
	Number int          `json:"number"`
	CardID model.CardID `json:"cardId,omitempty"`
	Filled bool         `json:"filled"`
}

// Snapshot lists every slot with its occupancy, in slot order.
func (a *Album) Snapshot() []SlotView {
	out := make([]SlotView, 0, a.SlotCount)
	for n := 1; n <= a.SlotCount; n++ {
		v := SlotView{Number: n}
		if id, ok := a.placed[n]; ok {
			v.CardID = id
			v.Filled = true
		}
		out = append(out, v)
	}
	return out
}

// Restore seeds occupancy from persisted state. Out-of-range slots are
// rejected so a corrupt save cannot grow the grid.
func (a *Album) Restore(placed map[int]model.CardID) error {
	for n, id := range placed {
		if n < 1 || n > a.SlotCount {
			return fmt.Errorf("slot %d out of range [1,%d]", n, a.SlotCount)
		}
		a.placed[n] = id
	}
	return nil
}

// Placed returns a copy of the occupancy map for persistence.
func (a *Album) Placed() map[int]model.CardID {
	out := make(map[int]model.CardID, len(a.placed))
	for n, id := range a.placed {
		out[n] = id
	}
	return out
}
