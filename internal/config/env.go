package config

import (
	"os"
	"strconv"
)

// FromEnv applies environment overrides on top of a loaded config.
func FromEnv(c *Config) *Config {
	if c == nil {
		c = Default()
	}
	if v := getEnvInt("CARDBINDER_CARDS_PER_TEAM"); v > 0 {
		c.CardsPerTeam = v
	}
	if v := getEnvInt("CARDBINDER_STARTING_COINS"); v > 0 {
		c.StartingCoins = v
	}
	if v := getEnvInt("CARDBINDER_DAILY_BONUS"); v > 0 {
		c.DailyBonus = v
	}
	if v := getEnvInt("CARDBINDER_PACK_PRICE"); v > 0 {
		c.StandardPackPrice = v
	}
	if v := getEnvInt("CARDBINDER_PACK_SIZE"); v > 0 {
		c.StandardPackSize = v
	}
	return c
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return n
}
