package models

import "time"

// App is one catalog entry: a Steam application id and its display name.
// MatchScore is filled in by the matcher (1 - distance, so 1.0 for an exact
// match) and is zero on entries coming straight from the app list.
type App struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	MatchScore float64 `json:"matchScore,omitempty"`
}

// Catalog is one fetched snapshot of the full Steam app list. Snapshots are
// immutable once built; a refetch produces a new snapshot, which is what the
// matcher keys its index rebuilds on.
type Catalog struct {
	Apps      []App     `json:"apps"`
	FetchedAt time.Time `json:"fetchedAt"`
}
