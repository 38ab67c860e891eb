package rules

import "cardbinder/internal/model"

// Odds holds the four rarity weights. They are treated as cumulative
// thresholds over a [0,100) draw in ascending severity order and are not
// validated to sum to 100: a shortfall enlarges the legendary bucket, an
// excess makes legendary unreachable.
type Odds struct {
	Common    int `yaml:"common" json:"common"`
	Rare      int `yaml:"rare" json:"rare"`
	Epic      int `yaml:"epic" json:"epic"`
	Legendary int `yaml:"legendary" json:"legendary"`
}

// DefaultOdds matches the stock balance: 70/20/8/2.
func DefaultOdds() Odds {
	return Odds{Common: 70, Rare: 20, Epic: 8, Legendary: 2}
}

// RollRarity maps one uniform draw in [0,100) to a tier by cumulative
// thresholds, common first.
func RollRarity(rng RNG, odds Odds) model.Rarity {
	roll := rng.Float64() * 100

	if roll < float64(odds.Common) {
		return model.RarityCommon
	}
	if roll < float64(odds.Common+odds.Rare) {
		return model.RarityRare
	}
	if roll < float64(odds.Common+odds.Rare+odds.Epic) {
		return model.RarityEpic
	}
	return model.RarityLegendary
}

// RollGuaranteed resolves the rarity floor applied to the last card of a
// promo pack. A floor of rare re-rolls against a skewed 70/25/5 table; any
// other floor is returned as-is with no randomness.
func RollGuaranteed(rng RNG, floor model.Rarity) model.Rarity {
	if floor != model.RarityRare {
		return floor
	}
	roll := rng.Float64() * 100
	switch {
	case roll < 70:
		return model.RarityRare
	case roll < 95:
		return model.RarityEpic
	default:
		return model.RarityLegendary
	}
}
