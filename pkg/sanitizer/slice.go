package sanitizer

import "strings"

// NormalizeStringSlice applies normalizer to every item and keeps the first
// occurrence of each non-empty result.
func NormalizeStringSlice(items []string, normalizer Strategy) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		v := normalizer(item)
		if _, dup := seen[v]; v == "" || dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func trimTrailingSlash(s string) string {
	return strings.TrimRight(s, "/")
}

// NormalizeList trims and de-duplicates a comma-split setting.
func NormalizeList(items []string) []string {
	return NormalizeStringSlice(items, trim)
}

// NormalizeOrigins trims and de-duplicates a CORS origin list. "https://a/"
// and "https://a" are the same origin.
func NormalizeOrigins(origins []string) []string {
	return NormalizeStringSlice(origins, Pipeline{trim, trimTrailingSlash}.Apply)
}
