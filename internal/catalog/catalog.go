// Package catalog loads the externally supplied game data: teams, promo
// codes, and player-name lists. The catalog is read once and never mutated
// by the rules engine.
package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"cardbinder/internal/model"
	"cardbinder/internal/promo"
)

// Catalog is the decoded content of a catalog.toml file.
type Catalog struct {
	Teams       []model.Team          `toml:"teams"`
	PromoCodes  map[string]promo.Code `toml:"promo_codes"`
	PlayerNames PlayerNames           `toml:"player_names"`
}

type PlayerNames struct {
	FirstNames []string `toml:"first_names"`
	LastNames  []string `toml:"last_names"`
}

// Load decodes and validates a catalog file.
func Load(path string) (*Catalog, error) {
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	c.normalize()
	return &c, nil
}

// Validate checks the catalog for entries the engine cannot work with.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t.Name == "" {
			return fmt.Errorf("team with empty name")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate team %q", t.Name)
		}
		seen[t.Name] = true
		if t.League == "" {
			return fmt.Errorf("team %q has no league", t.Name)
		}
	}
	for code, entry := range c.PromoCodes {
		if entry.CardCount <= 0 {
			return fmt.Errorf("promo code %q has card_count %d", code, entry.CardCount)
		}
		if entry.Guaranteed != "" && !entry.Guaranteed.Valid() {
			return fmt.Errorf("promo code %q has unknown rarity %q", code, entry.Guaranteed)
		}
	}
	return nil
}

// normalize upper-cases the promo keys so lookups match redemption input.
func (c *Catalog) normalize() {
	codes := make(map[string]promo.Code, len(c.PromoCodes))
	for code, entry := range c.PromoCodes {
		codes[promo.Normalize(code)] = entry
	}
	c.PromoCodes = codes
}

// TeamByName finds a team by its unique name key.
func (c *Catalog) TeamByName(name string) (model.Team, bool) {
	for _, t := range c.Teams {
		if t.Name == name {
			return t, true
		}
	}
	return model.Team{}, false
}
