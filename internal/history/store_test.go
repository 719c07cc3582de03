package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"rtvk/internal/history"
)

func TestAddAndList(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	first := history.Record{
		SourceURL:   "https://redd.it/abc",
		MediaKind:   "gallery",
		Attachments: "photo1_10,photo1_11",
		WallPostID:  77,
		Title:       "Hello",
		PublishedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if _, err := store.Add(ctx, first); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, history.Record{SourceURL: "https://redd.it/def", MediaKind: "image", Attachments: "photo1_12", WallPostID: 78}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List returned %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].SourceURL != "https://redd.it/def" {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Attachments != "photo1_10,photo1_11" {
		t.Errorf("records[1].Attachments = %q", records[1].Attachments)
	}
	if !records[1].PublishedAt.Equal(first.PublishedAt) {
		t.Errorf("published at = %v, want %v", records[1].PublishedAt, first.PublishedAt)
	}
}

func TestListLimit(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Add(ctx, history.Record{SourceURL: "https://redd.it/x", MediaKind: "image"}); err != nil {
			t.Fatal(err)
		}
	}
	records, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("List returned %d records, want 2", len(records))
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Add(context.Background(), history.Record{SourceURL: "https://redd.it/x", MediaKind: "video"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	records, err := reopened.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("List returned %d records, want 1", len(records))
	}
}
