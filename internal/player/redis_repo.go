package player

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	redisclient "cardbinder/internal/redis"
)

const stateKeyPrefix = "player:state:"

// RedisRepo persists player state as one JSON value per user.
type RedisRepo struct {
	client redisclient.Client
}

func NewRedisRepo(client redisclient.Client) (*RedisRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &RedisRepo{client: client}, nil
}

func stateKey(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "default"
	}
	return stateKeyPrefix + userID
}

func (r *RedisRepo) Load(ctx context.Context, userID string) (State, bool, error) {
	b, err := r.client.Get(ctx, stateKey(userID)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("load player state: %w", err)
	}

	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		slog.Warn("discarding unparseable player state", "user", userID, "error", err)
		return State{}, false, nil
	}
	return normalize(s), true, nil
}

func (r *RedisRepo) Save(ctx context.Context, userID string, s State) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, stateKey(userID), b, 0).Err(); err != nil {
		return fmt.Errorf("save player state: %w", err)
	}
	return nil
}
