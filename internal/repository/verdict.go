package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/search"
)

var ErrVerdictNotFound = errors.New("verdict not found")

// verdictTTL bounds how long a solved position stays cached.
const verdictTTL = 24 * time.Hour

// VerdictRepository caches search results per position and engine role.
type VerdictRepository interface {
	Save(ctx context.Context, key string, role search.Role, verdict search.Result) error
	Get(ctx context.Context, key string, role search.Role) (search.Result, error)
}

type dbVerdict struct {
	client *redis.Client
}

func NewVerdictRepository(client *redis.Client) VerdictRepository {
	return &dbVerdict{
		client: client,
	}
}

func (that *dbVerdict) Save(ctx context.Context, key string, role search.Role, verdict search.Result) error {
	verdictJSON, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("could not marshal verdict: %w", err)
	}

	err = that.client.Set(ctx, verdictKey(key, role), verdictJSON, verdictTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to set verdict: %w", err)
	}

	return nil
}

func (that *dbVerdict) Get(ctx context.Context, key string, role search.Role) (search.Result, error) {
	response, err := that.client.Get(ctx, verdictKey(key, role)).Result()

	if errors.Is(err, redis.Nil) {
		return search.Result{}, ErrVerdictNotFound
	}

	if err != nil {
		return search.Result{}, fmt.Errorf("failed to get verdict: %w", err)
	}

	var verdict search.Result
	if err = json.Unmarshal([]byte(response), &verdict); err != nil {
		return search.Result{}, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}

	return verdict, nil
}

type memoryVerdict struct {
	mu       sync.RWMutex
	verdicts map[string]search.Result
}

// NewMemoryVerdictRepository - process-local cache used when redis is disabled.
func NewMemoryVerdictRepository() VerdictRepository {
	return &memoryVerdict{
		verdicts: make(map[string]search.Result),
	}
}

func (that *memoryVerdict) Save(_ context.Context, key string, role search.Role, verdict search.Result) error {
	that.mu.Lock()
	that.verdicts[verdictKey(key, role)] = verdict
	that.mu.Unlock()

	return nil
}

func (that *memoryVerdict) Get(_ context.Context, key string, role search.Role) (search.Result, error) {
	that.mu.RLock()
	verdict, ok := that.verdicts[verdictKey(key, role)]
	that.mu.RUnlock()

	if !ok {
		return search.Result{}, ErrVerdictNotFound
	}

	return verdict, nil
}

func verdictKey(key string, role search.Role) string {
	return fmt.Sprintf("verdict:%s:%s", key, role.Mark)
}
