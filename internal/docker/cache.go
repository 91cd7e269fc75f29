package docker

import "strings"

// sanitizeCacheKey rewrites a free-form cache key into a BuildKit-legal
// cache mount id: alphanumerics, '-', '_' and '.' pass through, everything
// else collapses to '-'. Idempotent. Distinct inputs that differ only in
// disallowed characters can collide; that is an accepted limitation of the
// id charset.
func sanitizeCacheKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
