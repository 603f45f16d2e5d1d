package llmclient

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultProviderID is always registered; the Gemini key is the one
// credential deployments are required to carry.
const DefaultProviderID = "gemini"

// Registry maps provider ids to adapters. Built once at startup and
// read-only afterwards.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.ID()] = p
	}
	return r
}

// Get resolves a provider id; empty selects the default.
func (r *Registry) Get(id string) (Provider, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		id = DefaultProviderID
	}
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", id)
	}
	return p, nil
}

func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
