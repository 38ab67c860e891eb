package player

import "context"

// Repo persists player state. Load reports found=false when no state exists
// yet, or when what exists cannot be parsed; malformed storage degrades to
// defaults rather than surfacing an error to the user.
type Repo interface {
	Load(ctx context.Context, userID string) (state State, found bool, err error)
	Save(ctx context.Context, userID string, state State) error
}
