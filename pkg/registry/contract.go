package registry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract verifies that a Store implementation honors the port
// contract. Backend test suites call it against a fresh store so every
// backend proves the same semantics, ErrNotFound mapping included.
func RunStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	rec := &Record{
		Kind:       "dfa",
		Definition: json.RawMessage(`{"states":["q0"],"input_alphabet":["a"],"initial_state":"q0","final_states":["q0"],"transitions":{"q0":{"a":"q0"}}}`),
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, "m1", rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, "m1")
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.Kind, loaded.Kind)
		assert.JSONEq(t, string(rec.Definition), string(loaded.Definition))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "m1", rec))
		updated := &Record{Kind: "dpda", Definition: json.RawMessage(`{}`)}
		require.NoError(t, store.Save(ctx, "m1", updated))

		loaded, err := store.Load(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, updated.Kind, loaded.Kind)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "m2", rec))
		require.NoError(t, store.Delete(ctx, "m2"))

		_, err := store.Load(ctx, "m2")
		assert.ErrorIs(t, err, ErrNotFound, "Load after Delete should return ErrNotFound")

		assert.NoError(t, store.Delete(ctx, "never-existed"), "deleting an unknown id is not an error")
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "m3", rec))
		require.NoError(t, store.Save(ctx, "m4", rec))
		defer func() {
			_ = store.Delete(ctx, "m3")
			_ = store.Delete(ctx, "m4")
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, "m3")
		assert.Contains(t, ids, "m4")
	})
}
