package models

// CacheStats summarizes one cache (or the client's combined view). Size is the
// number of live entries; HitRate is hits / (hits + misses), 0 before any
// lookup.
type CacheStats struct {
	Size    int     `json:"size"`
	HitRate float64 `json:"hitRate"`
}
