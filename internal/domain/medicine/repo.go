package medicine

import (
	"context"
	"errors"
)

// ErrNotFound reports an unknown medicine id on read, update, or delete.
var ErrNotFound = errors.New("medicine not found")

// Filter selects medicines on list. Zero-value fields impose no constraint;
// set fields combine with AND semantics.
type Filter struct {
	Category string // exact match
	Type     string // exact match
	Tag      string // case-insensitive substring match on tags
}

type Repository interface {
	Insert(ctx context.Context, m *Medicine) error
	FindByID(ctx context.Context, id string) (*Medicine, error)
	List(ctx context.Context, f Filter) ([]*Medicine, error)
	Update(ctx context.Context, m *Medicine) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}
