package sanitizer

import "strings"

// NormalizeAddOnIDs lowercases add-on identifiers, drops empties and
// deduplicates while preserving first-seen order. Selection order is
// irrelevant to pricing, but a stable order keeps stored documents
// deterministic.
func NormalizeAddOnIDs(ids []string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, id := range ids {
		s := strings.ToLower(strings.TrimSpace(id))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
