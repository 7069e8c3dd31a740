package util

import "strings"

// ListSeparator separates the items of list valued filter attributes such as `type=Spearman,Bowman`.
const ListSeparator = ","

// SplitList splits str on commas, trims the whitespace around every item and drops empty items.
func SplitList(str string) []string {
	if strings.TrimSpace(str) == "" {
		return []string{}
	}

	parts := strings.Split(str, ListSeparator)
	items := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}

	return items
}
