package metadata

import (
	"fmt"

	"github.com/killallgit/subarr/internal/models"
)

// Registry maps each source to the provider that serves it
type Registry struct {
	providers map[models.Source]Provider
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[models.Source]Provider)}
}

// Register binds p to source, replacing any previous binding
func (r *Registry) Register(source models.Source, p Provider) *Registry {
	r.providers[source] = p
	return r
}

// Lookup returns the provider for source
func (r *Registry) Lookup(source models.Source) (Provider, error) {
	p, ok := r.providers[source]
	if !ok || p == nil {
		return nil, fmt.Errorf("no metadata provider registered for source %q", source)
	}
	return p, nil
}
