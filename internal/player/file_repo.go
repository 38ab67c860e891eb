package player

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileRepo persists player state as one JSON file per user.
type FileRepo struct {
	mu      sync.RWMutex
	dataDir string
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileRepo{dataDir: dataDir}, nil
}

func (r *FileRepo) filePath(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "default"
	}
	return filepath.Join(r.dataDir, userID+".json")
}

// Load reads a user's state. A missing or unparseable file reports
// found=false so the caller falls back to defaults.
func (r *FileRepo) Load(_ context.Context, userID string) (State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, err := os.ReadFile(r.filePath(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, false, nil
		}
		return State{}, false, err
	}

	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		slog.Warn("discarding unparseable player state", "user", userID, "error", err)
		return State{}, false, nil
	}
	return normalize(s), true, nil
}

func (r *FileRepo) Save(_ context.Context, userID string, s State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.filePath(userID), b, 0o644)
}
