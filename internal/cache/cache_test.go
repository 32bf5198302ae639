package cache

import (
	"sync"
	"testing"
)

func TestCache_GetOrCreate(t *testing.T) {
	c := New[int, string](0)
	calls := 0
	create := func() string { calls++; return "v" }

	for range 3 {
		if got := c.GetOrCreate(7, create); got != "v" {
			t.Fatalf("GetOrCreate() = %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Len != 1 || s.Capacity != 0 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss, 1 entry", s)
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](4)
	identity := func(k int) func() int { return func() int { return k } }
	for i := range 4 {
		c.GetOrCreate(i, identity(i))
	}
	// Touch 0 so 1 becomes the oldest.
	c.GetOrCreate(0, identity(0))
	c.GetOrCreate(4, identity(4))

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	rebuilt := map[int]bool{}
	for _, k := range []int{0, 1, 4} {
		c.GetOrCreate(k, func() int { rebuilt[k] = true; return k })
	}
	if rebuilt[0] {
		t.Error("recently used key 0 was evicted")
	}
	if !rebuilt[1] {
		t.Error("oldest key 1 survived eviction")
	}
	if rebuilt[4] {
		t.Error("newest key 4 was evicted")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				c.GetOrCreate((g+i)%32, func() int { return i })
			}
		}()
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("Len() = %d exceeds soft limit", c.Len())
	}
}

func BenchmarkCacheGetOrCreate(b *testing.B) {
	c := New[int, int](64)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.GetOrCreate(i%32, func() int { return i })
	}
}
