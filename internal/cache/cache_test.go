package cache

import (
	"testing"
	"time"
)

func TestSectorKey(t *testing.T) {
	if got := SectorKey("13"); got != "physaudit:v1:sector_13" {
		t.Errorf("SectorKey = %s", got)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	key := SectorKey("13")

	if _, found := c.Get(key); found {
		t.Fatal("empty cache reported a hit")
	}

	if err := c.Set(key, []byte("snapshot"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found || string(val) != "snapshot" {
		t.Errorf("Get = %q, found=%v", val, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("deleted key still present")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := SectorKey("13")

	if err := c.Set(key, []byte("snapshot"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found || string(val) != "snapshot" {
		t.Errorf("Get = %q, found=%v", val, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := SectorKey("13")

	if err := c.Set(key, []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expired entry served")
	}
}

func TestLayeredCache_PromotesDiskHit(t *testing.T) {
	dir := t.TempDir()
	key := SectorKey("13")

	// Seed only the disk layer
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set(key, []byte("snapshot"), time.Minute); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := layered.Get(key)
	if !found || string(val) != "snapshot" {
		t.Fatalf("layered Get = %q, found=%v", val, found)
	}

	// Hit must now be served from memory
	if val, found := layered.memory.Get(key); !found || string(val) != "snapshot" {
		t.Error("disk hit was not promoted to memory")
	}
}

func TestLayeredCache_Clear(t *testing.T) {
	layered := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)
	key := SectorKey("13")

	if err := layered.Set(key, []byte("snapshot"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := layered.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := layered.Get(key); found {
		t.Error("cleared cache reported a hit")
	}
}
