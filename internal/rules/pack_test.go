package rules

import (
	"math/rand"
	"testing"

	"cardbinder/internal/model"
)

var testTeams = []model.Team{
	{Name: "Yankees", League: "MLB"},
	{Name: "Red Sox", League: "MLB"},
	{Name: "Lakers", League: "NBA"},
}

func testPackConfig() PackConfig {
	return PackConfig{
		CardsPerTeam: 300,
		Odds:         DefaultOdds(),
		FirstNames:   []string{"Alex", "Jordan"},
		LastNames:    []string{"Rivera", "Chen"},
	}
}

func TestFilterTeams(t *testing.T) {
	t.Run("league filter matches exactly", func(t *testing.T) {
		got := FilterTeams(testTeams, "MLB")
		if len(got) != 2 {
			t.Fatalf("expected 2 teams, got %d", len(got))
		}
		for _, tm := range got {
			if tm.League != "MLB" {
				t.Errorf("unexpected team %s in filtered pool", tm.Name)
			}
		}
	})

	t.Run("all sentinel and empty filter return everything", func(t *testing.T) {
		if got := FilterTeams(testTeams, model.LeagueAll); len(got) != len(testTeams) {
			t.Errorf("all: got %d teams", len(got))
		}
		if got := FilterTeams(testTeams, ""); len(got) != len(testTeams) {
			t.Errorf("empty: got %d teams", len(got))
		}
	})

	t.Run("unknown league yields an empty pool", func(t *testing.T) {
		if got := FilterTeams(testTeams, "NHL"); len(got) != 0 {
			t.Errorf("got %d teams, want 0", len(got))
		}
	})
}

func TestGeneratePack(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := testPackConfig()

	t.Run("pack has the requested size and sequential ids", func(t *testing.T) {
		pack := GeneratePack(rng, PackParams{Count: 5, League: model.LeagueAll, NextID: 10}, testTeams, cfg)
		if len(pack) != 5 {
			t.Fatalf("expected 5 cards, got %d", len(pack))
		}
		for i, c := range pack {
			if c.ID != model.CardID(10+i) {
				t.Errorf("card %d: id %d, want %d", i, c.ID, 10+i)
			}
			if c.Number < 1 || c.Number > cfg.CardsPerTeam {
				t.Errorf("card %d: number %d out of range", i, c.Number)
			}
			if !c.Rarity.Valid() {
				t.Errorf("card %d: invalid rarity %q", i, c.Rarity)
			}
			if c.PlayerName == "" {
				t.Errorf("card %d: empty player name", i)
			}
		}
	})

	t.Run("league filter constrains every card", func(t *testing.T) {
		pack := GeneratePack(rng, PackParams{Count: 20, League: "NBA", NextID: 1}, testTeams, cfg)
		for _, c := range pack {
			if c.Team != "Lakers" {
				t.Errorf("card from team %s, want Lakers only", c.Team)
			}
			if c.League != "NBA" {
				t.Errorf("card league %s, want NBA", c.League)
			}
		}
	})

	t.Run("guarantee applies to the final card only", func(t *testing.T) {
		// All base rolls land in the common bucket; the last card must
		// still clear the legendary floor.
		rng := &scriptRNG{floats: []float64{0.10}}
		pack := GeneratePack(rng, PackParams{Count: 4, League: model.LeagueAll, Guaranteed: model.RarityLegendary, NextID: 1}, testTeams, cfg)
		if len(pack) != 4 {
			t.Fatalf("expected 4 cards, got %d", len(pack))
		}
		for i := 0; i < 3; i++ {
			if pack[i].Rarity != model.RarityCommon {
				t.Errorf("card %d: got %s, want common", i, pack[i].Rarity)
			}
		}
		if pack[3].Rarity != model.RarityLegendary {
			t.Errorf("final card: got %s, want legendary", pack[3].Rarity)
		}
	})

	t.Run("empty pool yields an empty pack, not an error", func(t *testing.T) {
		pack := GeneratePack(rng, PackParams{Count: 5, League: "NHL", NextID: 1}, testTeams, cfg)
		if pack == nil {
			t.Fatal("expected non-nil empty slice")
		}
		if len(pack) != 0 {
			t.Errorf("expected empty pack, got %d cards", len(pack))
		}
	})

	t.Run("empty catalog yields an empty pack", func(t *testing.T) {
		pack := GeneratePack(rng, PackParams{Count: 5, League: model.LeagueAll, NextID: 1}, nil, cfg)
		if len(pack) != 0 {
			t.Errorf("expected empty pack, got %d cards", len(pack))
		}
	})
}

func TestPlayerName(t *testing.T) {
	t.Run("joins one pick from each list", func(t *testing.T) {
		rng := &scriptRNG{ints: []int{1, 0}}
		got := PlayerName(rng, []string{"Alex", "Jordan"}, []string{"Rivera", "Chen"})
		if got != "Jordan Rivera" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("empty lists fall back to fixed tokens", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		if got := PlayerName(rng, nil, nil); got != "Player Name" {
			t.Errorf("got %q, want \"Player Name\"", got)
		}
		if got := PlayerName(rng, []string{"Alex"}, nil); got != "Alex Name" {
			t.Errorf("got %q, want \"Alex Name\"", got)
		}
		if got := PlayerName(rng, nil, []string{"Chen"}); got != "Player Chen" {
			t.Errorf("got %q, want \"Player Chen\"", got)
		}
	})
}

func TestCardNumberIndependentOfRarity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cfg := testPackConfig()

	// Numbers across many legendary-floored cards should still span the
	// full range rather than cluster.
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		pack := GeneratePack(rng, PackParams{Count: 1, League: model.LeagueAll, Guaranteed: model.RarityLegendary, NextID: 1}, testTeams, cfg)
		seen[pack[0].Number] = true
	}
	if len(seen) < cfg.CardsPerTeam/2 {
		t.Errorf("numbers cover only %d of %d values", len(seen), cfg.CardsPerTeam)
	}
}
