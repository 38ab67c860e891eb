package model

// SlotKind distinguishes the unplaced-cards pool from album grid slots.
type SlotKind string

const (
	// SlotHolding is the holding area; it accepts any card.
	SlotHolding SlotKind = "holding"
	// SlotAlbum is a numbered slot in a team album grid.
	SlotAlbum SlotKind = "album"
)

// SlotRef identifies a drop target. Number and Team are meaningful only for
// album slots.
type SlotRef struct {
	Kind   SlotKind `json:"kind"`
	Team   string   `json:"team,omitempty"`
	Number int      `json:"number,omitempty"`
}

// HoldingSlot returns the holding-area slot reference.
func HoldingSlot() SlotRef {
	return SlotRef{Kind: SlotHolding}
}

// AlbumSlot returns a reference to slot number n in a team's album.
func AlbumSlot(team string, n int) SlotRef {
	return SlotRef{Kind: SlotAlbum, Team: team, Number: n}
}
