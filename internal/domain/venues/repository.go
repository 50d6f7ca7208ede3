package venues

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("venue not found")

type Filters struct {
	Country string
	City    string
	Query   string
}

type Pagination struct {
	Limit int
	After string
}

// Stored is a venue row as the repository returns it: the plain document plus
// row bookkeeping. The codec only ever sees the plain document.
type Stored struct {
	ID        string
	Doc       map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListResult struct {
	Venues     []Stored
	NextCursor string
}

type Repository interface {
	Create(ctx context.Context, id string, doc map[string]any) (*Stored, error)
	GetByID(ctx context.Context, id string) (*Stored, error)
	List(ctx context.Context, filters Filters, pagination Pagination) (ListResult, error)
	// Update merges partial into the stored document: submitted top-level
	// keys replace stored ones, keys absent from partial stay untouched.
	Update(ctx context.Context, id string, partial map[string]any) (*Stored, error)
	Delete(ctx context.Context, id string) error
}
