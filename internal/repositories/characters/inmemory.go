package characters

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/sheet-engine/internal/character"
	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
	"github.com/KirkDiggler/sheet-engine/internal/uuid"
)

// inMemoryRepo is a thread-safe in-memory Repository for tests and local
// development. Drafts are deep-copied through JSON so callers cannot mutate
// stored state.
type inMemoryRepo struct {
	mu            sync.RWMutex
	drafts        map[string]*character.Draft
	uuidGenerator uuid.Generator
}

// NewInMemory creates an in-memory draft repository
func NewInMemory() Repository {
	return &inMemoryRepo{
		drafts:        make(map[string]*character.Draft),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

func copyDraft(draft *character.Draft) (*character.Draft, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	var out character.Draft
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *inMemoryRepo) Create(_ context.Context, draft *character.Draft) error {
	if draft == nil {
		return dnderr.InvalidArgument("draft cannot be nil")
	}
	if draft.OwnerID == "" {
		return dnderr.InvalidArgument("draft owner ID is required")
	}
	if draft.ID == "" {
		draft.ID = r.uuidGenerator.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drafts[draft.ID]; ok {
		return dnderr.AlreadyExistsf("character with ID '%s' already exists", draft.ID).
			WithMeta("character_id", draft.ID)
	}

	stored, err := copyDraft(draft)
	if err != nil {
		return dnderr.Wrap(err, "failed to store draft")
	}
	r.drafts[draft.ID] = stored
	return nil
}

func (r *inMemoryRepo) Get(_ context.Context, id string) (*character.Draft, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("draft ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	draft, ok := r.drafts[id]
	if !ok {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return copyDraft(draft)
}

func (r *inMemoryRepo) GetByOwner(_ context.Context, ownerID string) ([]*character.Draft, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var drafts []*character.Draft
	for _, draft := range r.drafts {
		if draft.OwnerID != ownerID {
			continue
		}
		out, err := copyDraft(draft)
		if err != nil {
			continue
		}
		drafts = append(drafts, out)
	}
	return drafts, nil
}

func (r *inMemoryRepo) Update(_ context.Context, draft *character.Draft) error {
	if draft == nil {
		return dnderr.InvalidArgument("draft cannot be nil")
	}
	if draft.ID == "" {
		return dnderr.InvalidArgument("draft ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drafts[draft.ID]; !ok {
		return dnderr.NotFoundf("character with ID '%s' not found", draft.ID).
			WithMeta("character_id", draft.ID)
	}

	stored, err := copyDraft(draft)
	if err != nil {
		return dnderr.Wrap(err, "failed to store draft")
	}
	r.drafts[draft.ID] = stored
	return nil
}

func (r *inMemoryRepo) Delete(_ context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("draft ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drafts[id]; !ok {
		return dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	delete(r.drafts, id)
	return nil
}
