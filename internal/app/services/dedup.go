package services

// dedupBy folds a slice down to the first occurrence per key, keeping
// the original order. Listing queries join across one-to-many linkage
// tables and fan out duplicate logical rows; every listing that joins
// that way funnels through this fold.
func dedupBy[T any, K comparable](items []T, key func(T) K) []T {
	if len(items) == 0 {
		return items
	}
	seen := make(map[K]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}
