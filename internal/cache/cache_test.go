package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stahnma/pds-didweb/internal/pds"
)

func sampleListing(t *testing.T) *pds.Listing {
	t.Helper()
	listing, err := pds.ParseListing([]byte(`{"cursor":"c1","repos":[{"did":"did:web:a.com","head":"bafy1","rev":"1"},{"did":"did:plc:xyz"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	return listing
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestListingKey(t *testing.T) {
	if got := ListingKey("bsky.network"); got != "listRepos:bsky.network" {
		t.Errorf("got %q", got)
	}
}

func TestListing_SetGet(t *testing.T) {
	c := New()
	c.SetListing("bsky.network", sampleListing(t))

	got, found := c.Listing("bsky.network")
	if !found {
		t.Fatal("expected listing to be found")
	}
	if got.Total() != 2 || got.Repos[0].DID != "did:web:a.com" {
		t.Errorf("unexpected listing: %+v", got)
	}
	if _, found := c.Listing("other.host"); found {
		t.Error("listings must be keyed by host")
	}
}

func TestFlush(t *testing.T) {
	c := New()
	c.SetListing("bsky.network", sampleListing(t))
	c.Flush()

	if _, found := c.Listing("bsky.network"); found {
		t.Error("expected listing to be gone after Flush")
	}
}

func TestSaveAndLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gob")

	c := New()
	c.SetListing("bsky.network", sampleListing(t))
	if err := c.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	got, found := loaded.Listing("bsky.network")
	if !found {
		t.Fatal("expected listing after load")
	}
	if got.Cursor != "c1" {
		t.Errorf("cursor = %q, want c1", got.Cursor)
	}
	if string(got.Repos[0].Raw) != `{"did":"did:web:a.com","head":"bafy1","rev":"1"}` {
		t.Errorf("raw record not preserved: %s", got.Repos[0].Raw)
	}
}

func TestLoadFromFile_NonexistentFile(t *testing.T) {
	c, err := LoadFromFile("/nonexistent/path/cache.gob")
	if err != nil {
		t.Fatalf("expected no error for nonexistent file, got %v", err)
	}
	if c == nil {
		t.Fatal("expected fresh cache, got nil")
	}
}

func TestLoadFromFile_CorruptData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gob")
	if err := os.WriteFile(path, []byte("not valid gob data"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromFile(path)
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected *CorruptError, got %v", err)
	}
	if c == nil {
		t.Fatal("expected fresh cache, got nil")
	}
	if c.Len() != 0 {
		t.Error("expected empty cache from corrupt file")
	}
}
