package middleware_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"io"
	"testing"

	"github.com/GNINE11/ProjAutomata-TC/internal/adapters/memory"
	"github.com/GNINE11/ProjAutomata-TC/pkg/persistence/middleware"
	"github.com/GNINE11/ProjAutomata-TC/pkg/registry"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	registry.RunStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	// Setup
	underlyingStore := memory.NewStore()
	key := generateKey(t)
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	id := "secret-machine"
	original := &registry.Record{
		Kind:       "dfa",
		Definition: json.RawMessage(`{"states":["even","odd"],"note":"my-secret-sauce"}`),
	}

	// 1. Save
	if err := secureStore.Save(ctx, id, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Verify the underlying store directly (should be encrypted)
	stored, err := underlyingStore.Load(ctx, id)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if bytes.Contains(stored.Definition, []byte("my-secret-sauce")) {
		t.Fatalf("Expected definition to be hidden, found plaintext: %s", stored.Definition)
	}
	var envelope map[string]any
	if err := json.Unmarshal(stored.Definition, &envelope); err != nil {
		t.Fatalf("Envelope is not valid JSON: %v", err)
	}
	if _, ok := envelope["__encrypted__"]; !ok {
		t.Fatal("Expected __encrypted__ field in stored definition")
	}
	if stored.Kind != "dfa" {
		t.Errorf("Expected kind to stay readable, got %q", stored.Kind)
	}

	// 3. Load via middleware (should be decrypted)
	loaded, err := secureStore.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if !bytes.Contains(loaded.Definition, []byte("my-secret-sauce")) {
		t.Errorf("Expected decrypted definition, got %s", loaded.Definition)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	// Setup
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	// Create middleware with OLD key to save the initial record
	mwOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	secureStoreOld := mwOld(underlyingStore)

	ctx := context.Background()
	id := "rotation-machine"
	original := &registry.Record{
		Kind:       "dpda",
		Definition: json.RawMessage(`{"data":"encrypted-with-old-key"}`),
	}

	// 1. Save with OLD key
	if err := secureStoreOld.Save(ctx, id, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Load with NEW key (active) + OLD key (fallback)
	mwNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	secureStoreNew := mwNew(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if !bytes.Contains(loaded.Definition, []byte("encrypted-with-old-key")) {
		t.Errorf("Decryption with fallback key failed, got %s", loaded.Definition)
	}

	// 3. Save again (now under the NEW key)
	loaded.Definition = json.RawMessage(`{"data":"encrypted-with-new-key"}`)
	if err := secureStoreNew.Save(ctx, id, loaded); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}

	// 4. Verify we CANNOT load with just the OLD key anymore
	if _, err := secureStoreOld.Load(ctx, id); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_RejectsPlainRecords(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()

	plain := &registry.Record{Kind: "dfa", Definition: json.RawMessage(`{"states":["q0"]}`)}
	if err := underlyingStore.Save(ctx, "plain-machine", plain); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if _, err := mw(underlyingStore).Load(ctx, "plain-machine"); err == nil {
		t.Error("Expected failure when loading a record stored without encryption")
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}
