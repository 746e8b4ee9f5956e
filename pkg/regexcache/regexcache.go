// Package regexcache provides a thread-safe cache for compiled regular
// expressions. Rule patterns and exception contexts are compiled once per
// process even when the same rule set is applied to thousands of files.
//
// Usage:
//
//	re, err := regexcache.Get(`(?i)exit\s+code\s+99`)
//	if err != nil {
//	    // malformed pattern: setup error
//	}
//	locs := re.FindAllStringIndex(line, -1)
package regexcache

import (
	"regexp"
	"sync"
)

// cache holds compiled regular expressions keyed by pattern string.
// Using sync.Map for concurrent access without explicit locking.
var cache sync.Map

// Get returns a compiled regexp for the given pattern.
// If the pattern was previously compiled, it returns the cached version.
// If the pattern is invalid, it returns an error.
func Get(pattern string) (*regexp.Regexp, error) {
	if cached, ok := cache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	// LoadOrStore handles concurrent compilation of the same pattern.
	actual, _ := cache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// MustGet returns a compiled regexp for the given pattern.
// It panics if the pattern is invalid. Reserved for built-in patterns
// that are covered by tests.
func MustGet(pattern string) *regexp.Regexp {
	re, err := Get(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Precompile compiles and caches multiple patterns at once, for warming
// the cache before a scan. Returns an error per pattern that failed.
func Precompile(patterns ...string) []error {
	var errs []error
	for _, pattern := range patterns {
		if _, err := Get(pattern); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Clear removes all cached regular expressions.
// This is primarily useful for testing.
func Clear() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}

// Size returns the number of cached regular expressions.
func Size() int {
	count := 0
	cache.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
