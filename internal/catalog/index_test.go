package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

type staticFetcher struct {
	items []Item
	calls atomic.Int32
}

func (f *staticFetcher) FetchAll(_ context.Context) ([]Item, error) {
	f.calls.Add(1)
	return f.items, nil
}

func testItems() []Item {
	win := map[Platform]string{PlatformWindows: "", PlatformMacOS: "", PlatformLinux: ""}
	return []Item{
		{Name: "VLC", DownloadPattern: "https://www.videolan.org/vlc/", OSCompatibility: win},
		{Name: "Visual Studio", DownloadPattern: "https://visualstudio.microsoft.com/downloads/", OSCompatibility: map[Platform]string{PlatformWindows: "", PlatformMacOS: ""}},
		{Name: "Visual Studio Code", DownloadPattern: "https://code.visualstudio.com/download", OSCompatibility: win},
		{Name: "Firefox", DownloadPattern: "https://www.mozilla.org/firefox/download/", OSCompatibility: win},
		{Name: "Google Chrome", DownloadPattern: "https://www.google.com/chrome/", OSCompatibility: win},
	}
}

func TestMatch_ExactSingle(t *testing.T) {
	ix := NewIndex(&staticFetcher{items: testItems()})
	got, err := ix.Match(context.Background(), "download VLC")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(got) != 1 || got[0].Name != "VLC" {
		t.Fatalf("expected single VLC hit, got %v", got)
	}
}

func TestMatch_ExactWithAmbiguousSiblings(t *testing.T) {
	ix := NewIndex(&staticFetcher{items: testItems()})
	got, err := ix.Match(context.Background(), "visual studio")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected exact match plus sibling, got %v", got)
	}
	if got[0].Name != "Visual Studio" || got[1].Name != "Visual Studio Code" {
		t.Fatalf("wrong order: %v", got)
	}
}

func TestMatch_PrefixAmbiguousCappedAtTwoShortest(t *testing.T) {
	items := testItems()
	items = append(items,
		Item{Name: "Firebird", DownloadPattern: "https://firebirdsql.org/en/downloads/", OSCompatibility: map[Platform]string{PlatformWindows: ""}},
		Item{Name: "Firewalld Tools", DownloadPattern: "https://firewalld.org/", OSCompatibility: map[Platform]string{PlatformLinux: ""}},
	)
	ix := NewIndex(&staticFetcher{items: items})
	got, err := ix.Match(context.Background(), "fire")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two shortest prefix hits, got %v", got)
	}
	if len(got[0].Name) > len(got[1].Name) {
		t.Fatalf("not sorted by name length: %v", got)
	}
}

func TestMatch_WordTierSingleShortest(t *testing.T) {
	ix := NewIndex(&staticFetcher{items: testItems()})
	got, err := ix.Match(context.Background(), "studio code")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Visual Studio Code" {
		t.Fatalf("expected single word-tier hit, got %v", got)
	}
}

func TestMatch_EmptyAfterNormalize(t *testing.T) {
	ix := NewIndex(&staticFetcher{items: testItems()})
	for _, q := range []string{"", "download the app"} {
		got, err := ix.Match(context.Background(), q)
		if err != nil {
			t.Fatalf("match(%q): %v", q, err)
		}
		if len(got) != 0 {
			t.Fatalf("match(%q): expected no hits, got %v", q, got)
		}
	}
}

func TestLoad_SingleFlight(t *testing.T) {
	f := &staticFetcher{items: testItems()}
	ix := NewIndex(f)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ix.Load(context.Background())
		}()
	}
	wg.Wait()
	if n := f.calls.Load(); n != 1 {
		t.Fatalf("expected one fetch, got %d", n)
	}

	ix.Invalidate()
	if err := ix.Load(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n := f.calls.Load(); n != 2 {
		t.Fatalf("expected refetch after invalidate, got %d", n)
	}
}
