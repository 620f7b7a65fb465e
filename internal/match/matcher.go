package match

import (
	"context"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Xmerr/steam-client/internal/cache"
	"github.com/Xmerr/steam-client/models"
)

// CatalogKey is the fixed key the app-list snapshot is cached under.
const CatalogKey = "catalog"

// CatalogTTL is how long one app-list snapshot stays fresh. The list is large
// and changes slowly, so it gets a much longer life than details records.
const CatalogTTL = 24 * time.Hour

// CatalogFetcher pulls the full app list from the remote API.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) ([]models.App, error)
}

// Matcher resolves free-text titles to catalog entries. It borrows the catalog
// cache from its owner and keeps a lazily built index over the most recently
// fetched snapshot; a new snapshot (cache cleared, or expired and refetched)
// invalidates the index, which is rebuilt on the next lookup.
type Matcher struct {
	cache   *cache.Cache[string, *models.Catalog]
	fetcher CatalogFetcher
	logger  *zap.Logger
	group   singleflight.Group

	mu  sync.Mutex
	idx *catalogIndex
}

// New creates a matcher over the given catalog cache and fetcher.
func New(catalogCache *cache.Cache[string, *models.Catalog], fetcher CatalogFetcher, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		cache:   catalogCache,
		fetcher: fetcher,
		logger:  logger,
	}
}

// ExactMatch returns the first catalog entry whose normalized name equals the
// normalized query, with MatchScore 1.0. Empty and punctuation-only queries
// resolve to no match without touching the catalog.
func (m *Matcher) ExactMatch(ctx context.Context, title string) (models.App, bool, error) {
	query := Normalize(title)
	if query == "" {
		return models.App{}, false, nil
	}
	idx, err := m.snapshotIndex(ctx)
	if err != nil {
		return models.App{}, false, err
	}
	app, ok := idx.lookupExact(query)
	return app, ok, nil
}

// BestMatch resolves title to the single closest catalog entry whose distance
// does not exceed threshold. An exact match wins outright with score 1.0;
// otherwise candidates are ranked by normalized edit distance and ties keep
// catalog order.
func (m *Matcher) BestMatch(ctx context.Context, title string, threshold float64) (models.App, bool, error) {
	query := Normalize(title)
	if query == "" {
		return models.App{}, false, nil
	}
	idx, err := m.snapshotIndex(ctx)
	if err != nil {
		return models.App{}, false, err
	}
	if app, ok := idx.lookupExact(query); ok {
		return app, true, nil
	}

	queryLen := utf8.RuneCountInString(query)
	bestPos := -1
	bestDist := 0.0
	for i, cand := range idx.entries {
		if distanceLowerBound(queryLen, cand.normLen) > threshold {
			continue
		}
		d := normalizedDistance(query, cand.norm)
		if d > threshold {
			continue
		}
		if bestPos < 0 || d < bestDist {
			bestPos, bestDist = i, d
		}
	}
	if bestPos < 0 {
		return models.App{}, false, nil
	}
	app := idx.entries[bestPos].app
	app.MatchScore = 1 - bestDist
	return app, true, nil
}

// TopMatches returns up to limit entries within threshold, best first; equal
// distances keep catalog order.
func (m *Matcher) TopMatches(ctx context.Context, title string, limit int, threshold float64) ([]models.App, error) {
	query := Normalize(title)
	if query == "" || limit <= 0 {
		return nil, nil
	}
	idx, err := m.snapshotIndex(ctx)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		pos  int
		dist float64
	}
	queryLen := utf8.RuneCountInString(query)
	var matched []candidate
	for i, cand := range idx.entries {
		if distanceLowerBound(queryLen, cand.normLen) > threshold {
			continue
		}
		d := normalizedDistance(query, cand.norm)
		if d > threshold {
			continue
		}
		matched = append(matched, candidate{pos: i, dist: d})
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].dist < matched[j].dist })
	if len(matched) > limit {
		matched = matched[:limit]
	}

	apps := make([]models.App, 0, len(matched))
	for _, cand := range matched {
		app := idx.entries[cand.pos].app
		app.MatchScore = 1 - cand.dist
		apps = append(apps, app)
	}
	return apps, nil
}

// WarmCatalog fetches and caches the app list if no live snapshot exists.
func (m *Matcher) WarmCatalog(ctx context.Context) error {
	_, err := m.catalog(ctx)
	return err
}

// snapshotIndex returns the search index for the current catalog snapshot,
// rebuilding it when the snapshot has changed since the last build.
func (m *Matcher) snapshotIndex(ctx context.Context) (*catalogIndex, error) {
	snapshot, err := m.catalog(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.idx == nil || m.idx.snapshot != snapshot {
		start := time.Now()
		m.idx = buildIndex(snapshot)
		m.logger.Debug("rebuilt catalog index",
			zap.Int("apps", len(snapshot.Apps)),
			zap.Duration("took", time.Since(start)))
	}
	return m.idx, nil
}

// catalog returns the cached app list, fetching and caching a fresh snapshot
// when absent or expired. Concurrent misses share a single fetch.
func (m *Matcher) catalog(ctx context.Context) (*models.Catalog, error) {
	if snapshot, ok := m.cache.Get(CatalogKey); ok {
		return snapshot, nil
	}
	v, err, _ := m.group.Do(CatalogKey, func() (interface{}, error) {
		apps, err := m.fetcher.FetchCatalog(ctx)
		if err != nil {
			return nil, err
		}
		snapshot := &models.Catalog{Apps: apps, FetchedAt: time.Now()}
		m.cache.Set(CatalogKey, snapshot, CatalogTTL)
		m.logger.Debug("cached catalog snapshot", zap.Int("apps", len(apps)))
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Catalog), nil
}

// catalogIndex is an immutable search structure over one catalog snapshot:
// the entries with their precomputed normalized names, plus a hash index for
// exact lookups.
type catalogIndex struct {
	snapshot *models.Catalog
	entries  []indexedApp
	exact    map[string]int // normalized name -> first position in entries
}

// indexedApp pairs a catalog entry with its normalized name. Entries whose
// names normalize to nothing (pure punctuation) are not indexed.
type indexedApp struct {
	norm    string
	normLen int
	app     models.App
}

func buildIndex(snapshot *models.Catalog) *catalogIndex {
	idx := &catalogIndex{
		snapshot: snapshot,
		entries:  make([]indexedApp, 0, len(snapshot.Apps)),
		exact:    make(map[string]int, len(snapshot.Apps)),
	}
	for _, app := range snapshot.Apps {
		norm := Normalize(app.Name)
		if norm == "" {
			continue
		}
		pos := len(idx.entries)
		idx.entries = append(idx.entries, indexedApp{
			norm:    norm,
			normLen: utf8.RuneCountInString(norm),
			app:     app,
		})
		if _, taken := idx.exact[norm]; !taken {
			idx.exact[norm] = pos
		}
	}
	return idx
}

func (idx *catalogIndex) lookupExact(query string) (models.App, bool) {
	pos, ok := idx.exact[query]
	if !ok {
		return models.App{}, false
	}
	app := idx.entries[pos].app
	app.MatchScore = 1.0
	return app, true
}

// normalizedDistance scores two normalized titles in [0, 1]: 0 means
// identical, 1 means nothing in common. Edit distance scaled by the longer
// rune length.
func normalizedDistance(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

// distanceLowerBound is the smallest distance two strings of the given rune
// lengths could possibly have. The catalog runs to hundreds of thousands of
// entries, so candidates that cannot clear the threshold are skipped before
// paying for the edit distance.
func distanceLowerBound(la, lb int) float64 {
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	return float64(diff) / float64(longest)
}
