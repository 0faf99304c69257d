package cache

import "time"

// Cache stores serialized reference records keyed by sector
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SectorKey builds the cache key for a sector's reference document.
// The key is versioned so a schema change invalidates old snapshots.
func SectorKey(sectorID string) string {
	return "physaudit:v1:sector_" + sectorID
}
