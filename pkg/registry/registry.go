// Package registry keeps validated machines under generated identifiers
// and dispatches runs against them. Engines stay pure; identifier and
// persistence concerns live here behind the Store port.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	automata "github.com/GNINE11/ProjAutomata-TC"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/google/uuid"
)

// ErrNotFound is returned when an identifier has no stored machine.
// Backends must map their own miss conditions onto it.
var ErrNotFound = errors.New("machine not found")

// Record is the persisted form of a registered machine: its kind plus the
// JSON definition it was validated from. Machines rebuild from the
// definition on load, so backends only ever move opaque records around.
type Record struct {
	Kind       machine.Kind    `json:"kind"`
	Definition json.RawMessage `json:"definition"`
}

// Store persists records under identifiers.
type Store interface {
	// Save persists the record under id, overwriting any previous one.
	Save(ctx context.Context, id string, rec *Record) error

	// Load retrieves the record stored under id, or ErrNotFound.
	Load(ctx context.Context, id string) (*Record, error)

	// Delete removes the record stored under id. Unknown identifiers are
	// not an error.
	Delete(ctx context.Context, id string) error

	// List returns every stored identifier.
	List(ctx context.Context) ([]string, error)
}

// Info pairs an identifier with the kind stored under it.
type Info struct {
	ID   string       `json:"id"`
	Kind machine.Kind `json:"kind"`
}

// Registry validates definitions and glues identifiers, store and engines
// together.
type Registry struct {
	store Store
}

// New creates a registry over the given store.
func New(store Store) *Registry {
	return &Registry{store: store}
}

// Create validates the definition and stores it under a fresh identifier.
// Nothing is stored when validation fails.
func (r *Registry) Create(ctx context.Context, kind machine.Kind, def json.RawMessage) (string, error) {
	if _, err := automata.FromJSON(kind, def); err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := r.store.Save(ctx, id, &Record{Kind: kind, Definition: def}); err != nil {
		return "", fmt.Errorf("failed to save machine: %w", err)
	}
	return id, nil
}

// Get rebuilds the machine stored under id.
func (r *Registry) Get(ctx context.Context, id string) (machine.Machine, error) {
	rec, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	m, err := automata.FromJSON(rec.Kind, rec.Definition)
	if err != nil {
		// Records are validated on the way in, so a failure here means
		// the stored data was tampered with or the backend corrupted it.
		return nil, fmt.Errorf("stored machine %s is corrupt: %w", id, err)
	}
	return m, nil
}

// Run executes the machine stored under id against input.
func (r *Registry) Run(ctx context.Context, id, input string, opts ...machine.RunOption) (machine.Result, error) {
	m, err := r.Get(ctx, id)
	if err != nil {
		return machine.Result{}, err
	}
	return m.Run(input, opts...)
}

// Delete removes the machine stored under id.
func (r *Registry) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// List returns the identifiers of every stored machine.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	return r.store.List(ctx)
}

// Describe returns identifier and kind for every stored machine. Records
// deleted between the listing and the load are skipped.
func (r *Registry) Describe(ctx context.Context) ([]Info, error) {
	ids, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(ids))
	for _, id := range ids {
		rec, err := r.store.Load(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		infos = append(infos, Info{ID: id, Kind: rec.Kind})
	}
	return infos, nil
}
