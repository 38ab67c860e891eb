package telemetry

import "time"

type EventType string

const (
	EventPackOpened   EventType = "pack_opened"
	EventCodeRedeemed EventType = "code_redeemed"
	EventCodeRejected EventType = "code_rejected"
	EventCardPlaced   EventType = "card_placed"
	EventCardRemoved  EventType = "card_removed"
	EventDailyBonus   EventType = "daily_bonus"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
