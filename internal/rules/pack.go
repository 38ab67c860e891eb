package rules

import (
	"log/slog"

	"cardbinder/internal/model"
)

// PackParams describes one pack request.
type PackParams struct {
	// Count is the number of cards to generate.
	Count int
	// League filters the team pool; model.LeagueAll disables filtering.
	League string
	// Guaranteed, when non-empty, is the rarity floor applied to the final
	// card only.
	Guaranteed model.Rarity
	// NextID is the caller-owned monotonic counter value for the first card.
	// The caller advances its counter by len(result) afterwards.
	NextID model.CardID
}

// PackConfig carries the constants and name lists a pack roll needs.
type PackConfig struct {
	CardsPerTeam int
	Odds         Odds
	FirstNames   []string
	LastNames    []string
}

// FilterTeams returns the teams whose league matches the filter, or all
// teams for the model.LeagueAll sentinel (or an empty filter).
func FilterTeams(teams []model.Team, league string) []model.Team {
	if league == "" || league == model.LeagueAll {
		return teams
	}
	out := make([]model.Team, 0, len(teams))
	for _, t := range teams {
		if t.League == league {
			out = append(out, t)
		}
	}
	return out
}

// GeneratePack produces the cards for one pack in reveal order. An empty
// filtered team pool yields an empty pack, never an error: pack purchase
// must not crash on malformed configuration.
func GeneratePack(rng RNG, p PackParams, teams []model.Team, cfg PackConfig) []model.Card {
	pool := FilterTeams(teams, p.League)
	if len(pool) == 0 {
		slog.Warn("no teams available for pack generation", "league", p.League)
		return []model.Card{}
	}

	pack := make([]model.Card, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		var rarity model.Rarity
		if i == p.Count-1 && p.Guaranteed != "" {
			rarity = RollGuaranteed(rng, p.Guaranteed)
		} else {
			rarity = RollRarity(rng, cfg.Odds)
		}

		team := pool[rng.Intn(len(pool))]
		name := PlayerName(rng, cfg.FirstNames, cfg.LastNames)
		pack = append(pack, NewCard(rng, team, cfg.CardsPerTeam, rarity, name, p.NextID+model.CardID(i)))
	}
	return pack
}
