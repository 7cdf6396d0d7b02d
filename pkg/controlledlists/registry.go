package controlledlists

import (
	"sync"

	"github.com/agentstation/refselect/pkg/errors"
)

// Registry holds loaded lists by id.
type Registry struct {
	mu    sync.RWMutex
	lists map[string]*ControlledList
	order []string
}

// NewRegistry creates a registry holding lists.
func NewRegistry(lists ...*ControlledList) *Registry {
	r := &Registry{lists: make(map[string]*ControlledList)}
	for _, l := range lists {
		r.Add(l)
	}
	return r
}

// Add stores list, replacing a list with the same id.
func (r *Registry) Add(list *ControlledList) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.lists[list.ID]; !exists {
		r.order = append(r.order, list.ID)
	}
	r.lists[list.ID] = list
}

// Get returns the list with id.
func (r *Registry) Get(id string) (*ControlledList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, ok := r.lists[id]
	if !ok {
		return nil, errors.NewNotFoundError("controlled list", id)
	}
	return list, nil
}

// List returns all lists in the order they were added.
func (r *Registry) List() []*ControlledList {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ControlledList, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.lists[id])
	}
	return out
}

// Len returns the number of lists.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lists)
}
