package universe

import (
	"sort"
	"strings"
)

// Clean normalizes a raw ticker list: uppercase, dots to dashes (share-class
// notation), drop special symbols and anything longer than 5 characters,
// dedupe and sort.
func Clean(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	cleaned := make([]string, 0, len(raw))

	for _, t := range raw {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		t = strings.ReplaceAll(t, ".", "-")
		if strings.ContainsAny(t, "$^") {
			continue
		}
		if len(t) > 5 {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		cleaned = append(cleaned, t)
	}

	sort.Strings(cleaned)
	return cleaned
}
