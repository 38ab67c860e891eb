package game

import (
	"context"
	"errors"
	"fmt"
	"math"

	"cardbinder/internal/album"
	"cardbinder/internal/model"
	"cardbinder/internal/player"
	"cardbinder/internal/telemetry"
)

// ErrCardNotFound means the referenced card is not in the inventory. This is
// a caller bug (stale id), not a gameplay outcome.
var ErrCardNotFound = errors.New("card not found in inventory")

func (e *Engine) albumFor(s player.State, team string) (*album.Album, error) {
	a := album.New(team, e.Config.CardsPerTeam)
	if placed, ok := s.Albums[team]; ok {
		if err := a.Restore(placed); err != nil {
			return nil, fmt.Errorf("album %q: %w", team, err)
		}
	}
	return a, nil
}

// PlaceResult reports one placement attempt.
type PlaceResult struct {
	Outcome album.Outcome `json:"outcome"`
	Slot    model.SlotRef `json:"slot"`
}

// PlaceCard attempts to place an inventory card into an album slot. The slot
// state machine is empty -> occupied; a second placement on an occupied slot
// is rejected regardless of match.
func (e *Engine) PlaceCard(ctx context.Context, userID string, cardID model.CardID, slot model.SlotRef) (PlaceResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadState(ctx, userID)
	if err != nil {
		return PlaceResult{}, err
	}

	card, ok := s.CardByID(cardID)
	if !ok {
		return PlaceResult{}, ErrCardNotFound
	}

	if slot.Kind == model.SlotHolding {
		// Returning a card to the pool is handled by RemoveCard.
		return PlaceResult{Outcome: album.OutcomePlaced, Slot: slot}, nil
	}

	a, err := e.albumFor(s, slot.Team)
	if err != nil {
		return PlaceResult{}, err
	}

	outcome := a.Place(card, slot)
	if outcome != album.OutcomePlaced {
		return PlaceResult{Outcome: outcome, Slot: slot}, nil
	}

	s.Albums[slot.Team] = a.Placed()
	if err := e.Players.Save(ctx, userID, s); err != nil {
		return PlaceResult{}, err
	}

	e.record(telemetry.EventCardPlaced, telemetry.EventMetadata{
		"user": userID,
		"team": slot.Team,
		"slot": slot.Number,
	})
	return PlaceResult{Outcome: album.OutcomePlaced, Slot: slot}, nil
}

// RemoveCard moves the occupant of a slot back to the holding area
// (occupied -> empty). Removing from an empty slot is a no-op.
func (e *Engine) RemoveCard(ctx context.Context, userID, team string, slotNumber int) (model.CardID, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadState(ctx, userID)
	if err != nil {
		return 0, false, err
	}

	a, err := e.albumFor(s, team)
	if err != nil {
		return 0, false, err
	}

	id, removed := a.Remove(slotNumber)
	if !removed {
		return 0, false, nil
	}

	s.Albums[team] = a.Placed()
	if err := e.Players.Save(ctx, userID, s); err != nil {
		return 0, false, err
	}

	e.record(telemetry.EventCardRemoved, telemetry.EventMetadata{
		"user": userID,
		"team": team,
		"slot": slotNumber,
	})
	return id, true, nil
}

// MatchingSlots returns the unoccupied album slots a card may be dropped
// into, for the drop-target highlight.
func (e *Engine) MatchingSlots(ctx context.Context, userID string, cardID model.CardID) ([]model.SlotRef, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	card, ok := s.CardByID(cardID)
	if !ok {
		return nil, ErrCardNotFound
	}

	a, err := e.albumFor(s, card.Team)
	if err != nil {
		return nil, err
	}
	return a.MatchingSlots(card), nil
}

// AlbumSnapshot returns a team's slot occupancy.
func (e *Engine) AlbumSnapshot(ctx context.Context, userID, team string) ([]album.SlotView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	a, err := e.albumFor(s, team)
	if err != nil {
		return nil, err
	}
	return a.Snapshot(), nil
}

// CollectionStats summarizes collection progress for the dashboard.
type CollectionStats struct {
	TotalCards  int     `json:"totalCards"`
	UniqueTeams int     `json:"uniqueTeams"`
	Completion  float64 `json:"completion"`
}

// Stats computes total cards, unique teams, and the completion percentage
// over every possible card across the catalog.
func (e *Engine) Stats(ctx context.Context, userID string) (CollectionStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadState(ctx, userID)
	if err != nil {
		return CollectionStats{}, err
	}

	teams := make(map[string]bool)
	for _, c := range s.Inventory {
		teams[c.Team] = true
	}

	stats := CollectionStats{
		TotalCards:  len(s.Inventory),
		UniqueTeams: len(teams),
	}
	totalPossible := len(e.Catalog.Teams) * e.Config.CardsPerTeam
	if totalPossible > 0 {
		pct := float64(stats.TotalCards) / float64(totalPossible) * 100
		// Presented to one decimal place.
		stats.Completion = math.Round(pct*10) / 10
	}
	return stats, nil
}
