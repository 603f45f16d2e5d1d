package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Fetcher supplies the raw catalog. Implementations live in
// internal/store/catalogstore.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]Item, error)
}

// Stop-words removed during query normalization. Tuned empirically;
// overridable via WithStopWords.
var defaultStopWords = []string{
	"download", "install", "get", "find", "need", "want", "me", "i", "my",
	"the", "a", "an", "for", "on", "of", "to", "please",
	"app", "application", "program", "software", "browser", "driver",
	"drivers", "latest", "version", "free",
	// Platform words are handled by DetectPlatform, never by matching.
	"windows", "win", "mac", "macos", "apple", "linux", "ubuntu",
	"debian", "android",
}

type snapshot struct {
	items []Item
}

// Index caches the verified catalog and answers tiered name lookups.
// The first load is single-flight; once warm, reads see an immutable
// snapshot replaced wholesale by Invalidate.
type Index struct {
	fetcher   Fetcher
	stopWords map[string]struct{}

	g singleflight.Group

	mu   sync.RWMutex
	snap *snapshot
}

type Option func(*Index)

// WithStopWords replaces the default normalization stop-word list.
func WithStopWords(words []string) Option {
	return func(ix *Index) {
		ix.stopWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			ix.stopWords[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
	}
}

func NewIndex(fetcher Fetcher, opts ...Option) *Index {
	ix := &Index{fetcher: fetcher}
	WithStopWords(defaultStopWords)(ix)
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Load fetches the catalog if no warm snapshot exists. Concurrent first
// callers share one in-flight fetch and all observe the same result.
func (ix *Index) Load(ctx context.Context) error {
	ix.mu.RLock()
	warm := ix.snap != nil
	ix.mu.RUnlock()
	if warm {
		return nil
	}
	_, err, _ := ix.g.Do("catalog", func() (any, error) {
		// Re-check under the flight: a caller that lost the race to a
		// completed load must not trigger a second fetch.
		ix.mu.RLock()
		warm := ix.snap != nil
		ix.mu.RUnlock()
		if warm {
			return nil, nil
		}
		items, err := ix.fetcher.FetchAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog fetch: %w", err)
		}
		ix.mu.Lock()
		ix.snap = &snapshot{items: items}
		ix.mu.Unlock()
		return nil, nil
	})
	return err
}

// Invalidate drops the cached snapshot; the next Load refetches.
func (ix *Index) Invalidate() {
	ix.mu.Lock()
	ix.snap = nil
	ix.mu.Unlock()
}

// Normalize lowercases, strips punctuation, and removes stop-words.
func (ix *Index) Normalize(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-', r == '.', r == '+':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	var kept []string
	for _, tok := range strings.Fields(b.String()) {
		if _, stop := ix.stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Match resolves free text to catalog entries in three tiers of
// decreasing confidence, returning at the first tier that yields results.
//
//	exact:  name equality, plus sibling entries whose name extends the
//	        exact match ("visual studio" vs "visual studio code"),
//	        shortest first, as a disambiguation set
//	prefix: names starting with the query; ambiguous sets are capped at
//	        the two shortest
//	word:   every query token (len > 1) is a substring of the name;
//	        only the single shortest match survives
//
// An empty normalized query returns nil, not an error. Match requires a
// warm snapshot; call Load first.
func (ix *Index) Match(ctx context.Context, rawQuery string) ([]Item, error) {
	if err := ix.Load(ctx); err != nil {
		return nil, err
	}
	ix.mu.RLock()
	snap := ix.snap
	ix.mu.RUnlock()
	if snap == nil {
		return nil, nil
	}

	q := ix.Normalize(rawQuery)
	if q == "" {
		return nil, nil
	}

	// Exact tier.
	var exact *Item
	for i := range snap.items {
		if strings.EqualFold(snap.items[i].Name, q) {
			exact = &snap.items[i]
			break
		}
	}
	if exact != nil {
		out := []Item{*exact}
		prefix := strings.ToLower(exact.Name) + " "
		var siblings []Item
		for _, it := range snap.items {
			if it.Name == exact.Name {
				continue
			}
			if strings.HasPrefix(strings.ToLower(it.Name), prefix) {
				siblings = append(siblings, it)
			}
		}
		sortByNameLen(siblings)
		return append(out, siblings...), nil
	}

	// Prefix tier.
	var prefixed []Item
	for _, it := range snap.items {
		if strings.HasPrefix(strings.ToLower(it.Name), q) {
			prefixed = append(prefixed, it)
		}
	}
	if len(prefixed) > 0 {
		sortByNameLen(prefixed)
		if len(prefixed) > 2 {
			prefixed = prefixed[:2]
		}
		return prefixed, nil
	}

	// Word tier.
	tokens := make([]string, 0, 4)
	for _, tok := range strings.Fields(q) {
		if len(tok) > 1 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	var wordHits []Item
	for _, it := range snap.items {
		name := strings.ToLower(it.Name)
		all := true
		for _, tok := range tokens {
			if !strings.Contains(name, tok) {
				all = false
				break
			}
		}
		if all {
			wordHits = append(wordHits, it)
		}
	}
	if len(wordHits) == 0 {
		return nil, nil
	}
	sortByNameLen(wordHits)
	return wordHits[:1], nil
}

func sortByNameLen(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return len(items[i].Name) < len(items[j].Name)
	})
}
