package db

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alignedempire/aligned/internal/content"
)

// openTestStore opens a migrated store in a temp directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return s
}

func defaultCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatalf("Failed to load default catalog: %v", err)
	}
	return c
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("Expected error for empty path")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}
}

func TestSeedThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	want := defaultCatalog(t)

	if err := s.Seed(ctx, want); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	got, err := s.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Catalog changed through the store (-want +got):\n%s", diff)
	}
}

func TestSeedReplacesPreviousCatalog(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	c := defaultCatalog(t)

	if err := s.Seed(ctx, c); err != nil {
		t.Fatalf("First seed failed: %v", err)
	}

	smaller := *c
	smaller.Posts = c.Posts[:2]
	if err := s.Seed(ctx, &smaller); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	n, err := s.CountPosts(ctx)
	if err != nil {
		t.Fatalf("CountPosts failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 posts after reseed, got %d", n)
	}
}

func TestSeedRejectsInvalidCatalog(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	c := defaultCatalog(t)
	if err := s.Seed(ctx, c); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	bad := *c
	bad.Contact.Email = ""
	err := s.Seed(ctx, &bad)
	if !errors.Is(err, content.ErrInvalidCatalog) {
		t.Fatalf("Expected ErrInvalidCatalog, got %v", err)
	}

	// The stored catalog is untouched.
	n, _ := s.CountPosts(ctx)
	if n != len(c.Posts) {
		t.Errorf("Expected %d posts to survive a rejected seed, got %d", len(c.Posts), n)
	}
}

func TestLoadCatalogBeforeSeed(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadCatalog(context.Background())
	if !errors.Is(err, ErrNotSeeded) {
		t.Fatalf("Expected ErrNotSeeded, got %v", err)
	}
}

func TestLoadCatalogWithoutSchema(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "bare.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	if _, err := s.LoadCatalog(context.Background()); err == nil {
		t.Fatal("Expected error loading from an unmigrated database")
	}
}

func TestLoadCatalogCancelled(t *testing.T) {
	s := openTestStore(t)
	if err := s.Seed(context.Background(), defaultCatalog(t)); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.LoadCatalog(ctx); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}

func TestConcurrentLoads(t *testing.T) {
	/*
		CONFIDENCE: The pool serves many parallel readers
		THRESHOLD: No errors, every load sees the full catalog
	*/
	ctx := context.Background()
	s := openTestStore(t)
	c := defaultCatalog(t)
	if err := s.Seed(ctx, c); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	const readers = 20
	var wg sync.WaitGroup
	errs := make(chan error, readers)

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.LoadCatalog(ctx)
			if err != nil {
				errs <- err
				return
			}
			if len(got.Posts) != len(c.Posts) {
				errs <- errors.New("short read")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent load failed: %v", err)
	}
}

func TestCloseTwice(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "c.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
}
