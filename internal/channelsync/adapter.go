// internal/channelsync/adapter.go
package channelsync

import (
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

// StockUpdate is the single capability the sync engine needs from a
// channel: set the published quantity of one listing.
type StockUpdate struct {
	Listing   models.ChannelListing
	TargetQty int
}

type UpdateResult struct {
	OK      bool
	Message string
}

// Adapter performs the external stock update for one channel provider.
// Implementations may fail and must be idempotent from the caller's side:
// invoking them again with the same or a newer target quantity is safe.
type Adapter interface {
	Provider() models.ChannelProvider
	UpdateStock(update StockUpdate) (UpdateResult, error)
}

// Registry maps a provider tag to its adapter, falling back to a generic
// no-op adapter for unrecognized tags.
type Registry struct {
	adapters map[models.ChannelProvider]Adapter
	fallback Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{
		adapters: make(map[models.ChannelProvider]Adapter),
		fallback: newGenericAdapter(),
	}
	for _, a := range adapters {
		r.adapters[a.Provider()] = a
	}
	return r
}

// DefaultRegistry wires the stub adapter set for every known provider.
func DefaultRegistry() *Registry {
	return NewRegistry(
		newNaverAdapter(),
		newCoupangAdapter(),
		newElevenstAdapter(),
		newKreamAdapter(),
	)
}

func (r *Registry) For(provider models.ChannelProvider) Adapter {
	if a, ok := r.adapters[provider]; ok {
		return a
	}
	return r.fallback
}
