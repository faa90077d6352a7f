package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phanxgames/galleria"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := OpenMemoryCatalog()
	if err != nil {
		t.Fatalf("OpenMemoryCatalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalogAddKeepsOrder(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	for _, p := range []galleria.Photo{
		{Source: "z.jpg", AltText: "Last name first"},
		{Source: "a.jpg"},
		{Source: "m.jpg", AltText: "Middle"},
	} {
		if _, err := c.Add(ctx, p); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	got, err := c.Photos(ctx)
	if err != nil {
		t.Fatalf("Photos: %v", err)
	}
	assertPhotos(t, got, []galleria.Photo{
		{Source: "z.jpg", AltText: "Last name first"},
		{Source: "a.jpg", AltText: galleria.DefaultAltText},
		{Source: "m.jpg", AltText: "Middle"},
	})
}

func TestCatalogAddAtAndRemove(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	second, err := c.Add(ctx, galleria.Photo{Source: "second.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Add(ctx, galleria.Photo{Source: "third.jpg"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddAt(ctx, -1, galleria.Photo{Source: "first.jpg"}); err != nil {
		t.Fatal(err)
	}

	got, err := c.Photos(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].Source != "first.jpg" || got[2].Source != "third.jpg" {
		t.Fatalf("order = %v", got)
	}

	if err := c.Remove(ctx, second); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Remove(ctx, "unknown"); err != nil {
		t.Errorf("removing an unknown id should not fail: %v", err)
	}
	got, _ = c.Photos(ctx)
	if len(got) != 2 || got[1].Source != "third.jpg" {
		t.Errorf("after remove = %v", got)
	}
}

func TestCatalogImport(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)
	if _, err := c.Add(ctx, galleria.Photo{Source: "existing.jpg"}); err != nil {
		t.Fatal(err)
	}

	if err := c.Import(ctx, []galleria.Photo{{Source: "a.jpg"}, {Source: "b.jpg"}}); err != nil {
		t.Fatalf("Import: %v", err)
	}
	got, err := c.Photos(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"existing.jpg", "a.jpg", "b.jpg"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i].Source != want[i] {
			t.Errorf("photo %d = %q, want %q", i, got[i].Source, want[i])
		}
	}
}

func TestCatalogPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "photos.db")

	c, err := OpenCatalog(path)
	if err != nil {
		t.Fatalf("OpenCatalog: %v", err)
	}
	if _, err := c.Add(ctx, galleria.Photo{Source: "kept.jpg", AltText: "Kept"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c, err = OpenCatalog(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()
	got, err := c.Photos(ctx)
	if err != nil {
		t.Fatal(err)
	}
	assertPhotos(t, got, []galleria.Photo{{Source: "kept.jpg", AltText: "Kept"}})
}

func TestCatalogEmpty(t *testing.T) {
	got, err := openTestCatalog(t).Photos(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}
