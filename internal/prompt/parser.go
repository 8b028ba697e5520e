package prompt

import "strings"

// ParseList splits a comma-separated model completion into its entries.
// Entries are trimmed of surrounding whitespace and dropped when empty, so
// stray leading, trailing, or doubled commas are harmless. Order is
// preserved and duplicates are kept. ParseList never fails: input without
// commas is a single entry, whitespace-only input is no entries.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
