package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/GNINE11/ProjAutomata-TC/internal/adapters/file"
	"github.com/GNINE11/ProjAutomata-TC/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	registry.RunStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_WritesOneFilePerMachine(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	rec := &registry.Record{Kind: "dfa", Definition: []byte(`{"states": []}`)}
	require.NoError(t, store.Save(ctx, "m1", rec))
	require.NoError(t, store.Save(ctx, "m2", rec))

	assert.FileExists(t, filepath.Join(dir, "m1.json"))
	assert.FileExists(t, filepath.Join(dir, "m2.json"))
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	rec := &registry.Record{Kind: "dfa", Definition: []byte(`{}`)}
	require.NoError(t, store.Save(ctx, "m1", rec))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a machine"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, ids)
}

func TestFileStore_DefaultsBasePath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".automata", "machines"), store.BasePath)
}

func TestFileStore_ListOnMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "never-created"))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
