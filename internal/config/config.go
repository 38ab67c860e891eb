// Package config holds the numeric and behavioral constants of the game.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"cardbinder/internal/rules"
)

type Config struct {
	CardsPerTeam      int        `yaml:"cards_per_team" json:"cardsPerTeam"`
	StartingCoins     int        `yaml:"starting_coins" json:"startingCoins"`
	DailyBonus        int        `yaml:"daily_bonus" json:"dailyBonus"`
	StandardPackPrice int        `yaml:"standard_pack_price" json:"standardPackPrice"`
	StandardPackSize  int        `yaml:"standard_pack_size" json:"standardPackSize"`
	RarityOdds        rules.Odds `yaml:"rarity_odds" json:"rarityOdds"`
}

// Default returns the stock balance.
func Default() *Config {
	return &Config{
		CardsPerTeam:      300,
		StartingCoins:     500,
		DailyBonus:        50,
		StandardPackPrice: 100,
		StandardPackSize:  5,
		RarityOdds:        rules.DefaultOdds(),
	}
}

// ApplyDefaults fills zero-valued fields so a sparse config file still
// yields a playable balance.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.CardsPerTeam == 0 {
		c.CardsPerTeam = d.CardsPerTeam
	}
	if c.StartingCoins == 0 {
		c.StartingCoins = d.StartingCoins
	}
	if c.DailyBonus == 0 {
		c.DailyBonus = d.DailyBonus
	}
	if c.StandardPackPrice == 0 {
		c.StandardPackPrice = d.StandardPackPrice
	}
	if c.StandardPackSize == 0 {
		c.StandardPackSize = d.StandardPackSize
	}
	zero := rules.Odds{}
	if c.RarityOdds == zero {
		c.RarityOdds = d.RarityOdds
	}
}

// Load reads a YAML config file and applies defaults. A missing file is not
// an error; the defaults stand in.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}
