package providers

import (
	domainInference "github.com/promptdeck/promptdeck/domains/inference"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
)

// Registry holds the configured providers by name. It is populated once at
// startup and read-only afterwards, so lookups need no locking.
type Registry struct {
	providers map[string]domainInference.Provider
}

func NewRegistry(providers ...domainInference.Provider) *Registry {
	r := &Registry{providers: make(map[string]domainInference.Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

func (r *Registry) Get(name string) (domainInference.Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, pkgError.NotFoundError("provider not found: " + name)
	}
	return p, nil
}

// Names lists the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
