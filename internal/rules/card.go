package rules

import "cardbinder/internal/model"

// NewCard assembles a card record. The number is drawn uniformly from
// [1, cardsPerTeam] independent of rarity. The id comes from the caller's
// monotonic counter; the factory never reuses or skips one.
func NewCard(rng RNG, team model.Team, cardsPerTeam int, rarity model.Rarity, playerName string, id model.CardID) model.Card {
	return model.Card{
		ID:         id,
		Team:       team.Name,
		League:     team.League,
		Number:     rng.Intn(cardsPerTeam) + 1,
		Rarity:     rarity,
		PlayerName: playerName,
	}
}
