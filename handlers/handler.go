package handlers

import (
	"context"

	"github.com/ldmxd/oceanswimmer/swims"
)

// SwimStore is the query side the handlers depend on.
type SwimStore interface {
	Search(ctx context.Context, c swims.Criteria) (*swims.SearchPage, error)
	Races(ctx context.Context, text string) ([]swims.Race, error)
	Ping(ctx context.Context) error
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store SwimStore
}

// New creates a Handler backed by store.
func New(store SwimStore) *Handler {
	return &Handler{store: store}
}
