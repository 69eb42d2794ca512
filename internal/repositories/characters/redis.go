package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/sheet-engine/internal/character"
	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
	"github.com/KirkDiggler/sheet-engine/internal/uuid"
)

// DraftData is the serialized form of a draft in Redis. The document is the
// draft itself plus bookkeeping timestamps.
type DraftData struct {
	character.Draft
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds the dependencies for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedisRepository creates a new Redis-backed draft repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
	}
}

// NewRedis creates a Redis-backed draft repository with default dependencies
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client:        client,
		UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
	})
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

func (r *redisRepo) ownerCharactersKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

func (r *redisRepo) Create(ctx context.Context, draft *character.Draft) error {
	if draft == nil {
		return dnderr.InvalidArgument("draft cannot be nil")
	}
	if draft.OwnerID == "" {
		return dnderr.InvalidArgument("draft owner ID is required")
	}
	if draft.ID == "" {
		draft.ID = r.uuidGenerator.New()
	}

	exists, err := r.client.Exists(ctx, r.key(draft.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check draft existence: %w", err)
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("character with ID '%s' already exists", draft.ID).
			WithMeta("character_id", draft.ID)
	}

	now := time.Now().UTC()
	data := DraftData{Draft: *draft, CreatedAt: now, UpdatedAt: now}
	jsonData, err := json.Marshal(&data)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(draft.ID), jsonData, 0)
	pipe.SAdd(ctx, r.ownerCharactersKey(draft.OwnerID), draft.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*character.Draft, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("draft ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var data DraftData
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &data.Draft, nil
}

func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*character.Draft, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerCharactersKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list draft IDs: %w", err)
	}

	drafts := make([]*character.Draft, 0, len(ids))
	for _, id := range ids {
		draft, err := r.Get(ctx, id)
		if err != nil {
			// Skip drafts that can't be loaded
			continue
		}
		drafts = append(drafts, draft)
	}

	return drafts, nil
}

func (r *redisRepo) Update(ctx context.Context, draft *character.Draft) error {
	if draft == nil {
		return dnderr.InvalidArgument("draft cannot be nil")
	}
	if draft.ID == "" {
		return dnderr.InvalidArgument("draft ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(draft.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check draft existence: %w", err)
	}
	if exists == 0 {
		return dnderr.NotFoundf("character with ID '%s' not found", draft.ID).
			WithMeta("character_id", draft.ID)
	}

	data := DraftData{Draft: *draft, UpdatedAt: time.Now().UTC()}
	jsonData, err := json.Marshal(&data)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	// Whole-document overwrite; concurrent writers race and the last one
	// wins.
	if err := r.client.Set(ctx, r.key(draft.ID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}

	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("draft ID is required")
	}

	draft, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerCharactersKey(draft.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	return nil
}
