package telemetry

import (
	"encoding/json"
	"time"
)

// Stats aggregates gameplay events for balance tuning.
type Stats struct {
	Period        string            `json:"period"`
	EventCounts   map[EventType]int `json:"event_counts"`
	PacksOpened   int               `json:"packs_opened"`
	CodesRedeemed int               `json:"codes_redeemed"`
	CardsPlaced   int               `json:"cards_placed"`
	CardsByRarity map[string]int    `json:"cards_by_rarity"`
	RejectReasons map[string]int    `json:"reject_reasons"`
}

// CalculateStats computes aggregate stats from recorded events.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:        since.Format("2006-01-02"),
		EventCounts:   make(map[EventType]int),
		CardsByRarity: make(map[string]int),
		RejectReasons: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventPackOpened:
			stats.PacksOpened++
			if rarities, ok := metadata["rarities"].([]interface{}); ok {
				for _, r := range rarities {
					if s, ok := r.(string); ok {
						stats.CardsByRarity[s]++
					}
				}
			}
		case EventCodeRedeemed:
			stats.CodesRedeemed++
		case EventCodeRejected:
			if reason, ok := metadata["reason"].(string); ok {
				stats.RejectReasons[reason]++
			}
		case EventCardPlaced:
			stats.CardsPlaced++
		}
	}

	return stats, nil
}
