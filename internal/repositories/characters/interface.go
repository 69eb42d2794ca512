package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/sheet-engine/internal/character"
)

// Repository defines the interface for character draft persistence. Drafts
// are stored and loaded as whole documents; the last writer wins.
type Repository interface {
	// Create stores a new draft, assigning an ID when missing
	Create(ctx context.Context, draft *character.Draft) error

	// Get retrieves a draft by ID
	Get(ctx context.Context, id string) (*character.Draft, error)

	// GetByOwner retrieves all drafts for a specific owner
	GetByOwner(ctx context.Context, ownerID string) ([]*character.Draft, error)

	// Update overwrites an existing draft
	Update(ctx context.Context, draft *character.Draft) error

	// Delete removes a draft
	Delete(ctx context.Context, id string) error
}
