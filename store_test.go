package tripkit

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "trip.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreTripRoundtrip(t *testing.T) {
	s := newTestStore(t)

	trip := mustTrip(t, "Kyoto", "2026-10-02", "2026-10-09")
	trip.Days[0].Items = append(trip.Days[0].Items, ItineraryItem{ID: "i1", Title: "Fushimi Inari"})
	if err := s.SaveTrip(trip); err != nil {
		t.Fatalf("SaveTrip failed: %v", err)
	}

	got, err := s.LoadTrip()
	if err != nil {
		t.Fatalf("LoadTrip failed: %v", err)
	}
	if got.Title != "Kyoto" {
		t.Errorf("title = %q, want Kyoto", got.Title)
	}
	if len(got.Days) != 8 {
		t.Errorf("days = %d, want 8", len(got.Days))
	}
	if got.Days[0].Items[0].Title != "Fushimi Inari" {
		t.Errorf("item = %q, want Fushimi Inari", got.Days[0].Items[0].Title)
	}
}

func TestStoreLoadTripNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.LoadTrip(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty store, got %v", err)
	}
}

func TestStoreSaveTripOverwrites(t *testing.T) {
	s := newTestStore(t)

	first := mustTrip(t, "Draft", "2026-10-02", "2026-10-03")
	if err := s.SaveTrip(first); err != nil {
		t.Fatalf("SaveTrip failed: %v", err)
	}
	second := mustTrip(t, "Final", "2026-10-02", "2026-10-05")
	if err := s.SaveTrip(second); err != nil {
		t.Fatalf("second SaveTrip failed: %v", err)
	}

	got, err := s.LoadTrip()
	if err != nil {
		t.Fatalf("LoadTrip failed: %v", err)
	}
	if got.Title != "Final" {
		t.Errorf("title = %q, want Final: the document is replaced wholesale", got.Title)
	}
}

func TestStoreCorruptBodyDiscarded(t *testing.T) {
	s := newTestStore(t)

	trip := mustTrip(t, "Kyoto", "2026-10-02", "2026-10-03")
	if err := s.SaveTrip(trip); err != nil {
		t.Fatalf("SaveTrip failed: %v", err)
	}
	if _, err := s.db.Exec(`UPDATE documents SET body = '{truncated' WHERE key = ?`, tripKey); err != nil {
		t.Fatalf("corrupting body failed: %v", err)
	}

	if _, err := s.LoadTrip(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a corrupt body, got %v", err)
	}
	// The broken row is gone, not retried forever.
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("documents rows = %d, want 0 after discard", n)
	}
}

func TestStoreDeleteTrip(t *testing.T) {
	s := newTestStore(t)

	trip := mustTrip(t, "Kyoto", "2026-10-02", "2026-10-03")
	if err := s.SaveTrip(trip); err != nil {
		t.Fatalf("SaveTrip failed: %v", err)
	}
	if err := s.DeleteTrip(); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}
	if _, err := s.LoadTrip(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreHeroImages(t *testing.T) {
	s := newTestStore(t)

	imgs := []HeroImage{
		{Filename: "osaka-castle.jpg", OriginalName: "IMG_1001.jpg", Width: 1200, Height: 800, Size: 90210, UploadedAt: "2026-08-30T10:00:00Z"},
		{Filename: "beach.jpg", OriginalName: "beach.jpg", Width: 1024, Height: 768, Size: 55000, UploadedAt: "2026-08-30T11:00:00Z"},
	}
	for _, img := range imgs {
		if err := s.SaveImage(img); err != nil {
			t.Fatalf("SaveImage(%s) failed: %v", img.Filename, err)
		}
	}

	got, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("images = %d, want 2", len(got))
	}

	if err := s.DeleteImage("beach.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	got, err = s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(got) != 1 || got[0].Filename != "osaka-castle.jpg" {
		t.Errorf("after delete got %+v, want just osaka-castle.jpg", got)
	}
}
