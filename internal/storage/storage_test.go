package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"barboard/internal/config"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := New(config.StorageConfig{
		Root:          t.TempDir(),
		PublicBaseURL: "http://localhost:8080",
	})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	return store
}

func TestUploadAndRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stored, err := store.Upload(ctx, "ingredient-icons", "icons/lemon.png", strings.NewReader("png-bytes"), true)
	if err != nil {
		t.Fatalf("Upload error = %v", err)
	}
	if stored != "icons/lemon.png" {
		t.Fatalf("stored path = %q", stored)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "ingredient-icons", "icons", "lemon.png"))
	if err != nil {
		t.Fatalf("reading stored object: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content = %q", data)
	}

	if err := store.Remove(ctx, "ingredient-icons", stored); err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if err := store.Remove(ctx, "ingredient-icons", stored); err == nil {
		t.Fatal("expected error removing a missing object")
	}
}

func TestUploadUpsertOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Upload(ctx, "galleries", "shot.jpg", strings.NewReader("one"), true); err != nil {
		t.Fatalf("first Upload error = %v", err)
	}
	stored, err := store.Upload(ctx, "galleries", "shot.jpg", strings.NewReader("two"), true)
	if err != nil {
		t.Fatalf("second Upload error = %v", err)
	}
	if stored != "shot.jpg" {
		t.Fatalf("stored path = %q, want overwrite in place", stored)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "galleries", "shot.jpg"))
	if err != nil {
		t.Fatalf("reading stored object: %v", err)
	}
	if string(data) != "two" {
		t.Fatalf("content = %q, want %q", data, "two")
	}
}

func TestUploadWithoutUpsertUniquifies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Upload(ctx, "recipe-pictures", "pasta.jpg", strings.NewReader("one"), false); err != nil {
		t.Fatalf("first Upload error = %v", err)
	}
	stored, err := store.Upload(ctx, "recipe-pictures", "pasta.jpg", strings.NewReader("two"), false)
	if err != nil {
		t.Fatalf("second Upload error = %v", err)
	}
	if stored == "pasta.jpg" {
		t.Fatal("expected a uniquified path for the colliding upload")
	}
	if !strings.HasPrefix(stored, "pasta-") || !strings.HasSuffix(stored, ".jpg") {
		t.Fatalf("uniquified path = %q", stored)
	}
}

func TestUploadRejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Upload(context.Background(), "galleries", "../escape.txt", strings.NewReader("x"), true); err == nil {
		t.Fatal("expected error for traversal path")
	}
	if _, err := store.Upload(context.Background(), "bad/bucket", "a.txt", strings.NewReader("x"), true); err == nil {
		t.Fatal("expected error for invalid bucket")
	}
}

func TestPublicURL(t *testing.T) {
	store := newTestStore(t)
	got := store.PublicURL("ingredient-icons", "icons/lemon.png")
	want := "http://localhost:8080/files/ingredient-icons/icons/lemon.png"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}
