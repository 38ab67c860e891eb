package model

// Rarity is the tier of a drawn card.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists the tiers in ascending severity order.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// Valid reports whether r is one of the four known tiers.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Color returns the display accent for a rarity tier.
func (r Rarity) Color() string {
	switch r {
	case RarityRare:
		return "#4A90E2"
	case RarityEpic:
		return "#9B59B6"
	case RarityLegendary:
		return "#FFD700"
	default:
		return "#9E9E9E"
	}
}

// LeagueAll is the sentinel that disables league filtering.
const LeagueAll = "all"

// Team is an immutable reference entity loaded from the catalog.
type Team struct {
	Name         string `toml:"name" json:"name"`
	League       string `toml:"league" json:"league"`
	Icon         string `toml:"icon" json:"icon"`
	PrimaryColor string `toml:"primary_color" json:"primaryColor"`
	Scheme       string `toml:"scheme" json:"scheme"`
}

// CardID is the unique, monotonically assigned identity of a card instance.
type CardID int64

// Card is a drawn instance, immutable once created. Two cards may share
// Team+Number; ID is the only uniqueness guarantee.
type Card struct {
	ID         CardID `json:"id"`
	Team       string `json:"team"`
	League     string `json:"league"`
	Number     int    `json:"number"`
	Rarity     Rarity `json:"rarity"`
	PlayerName string `json:"playerName"`
}
