// Package cache provides a small generic LRU cache.
//
// The blob detector keeps one precomputed RGB565 match table per
// threshold; Cache bounds how many of those tables stay resident.
//
//	c := cache.New[string, int](100)
//	value := c.GetOrCreate("key", func() int { return 42 })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
