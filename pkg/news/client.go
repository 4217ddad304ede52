package news

import "strings"

// Item is one search hit, fetched per chat turn and never stored.
type Item struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Date        string `json:"date"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type Searcher interface {
	Search(query, language string, maxItems int) ([]Item, error)
	Enabled() bool
}

// FormatBlock renders items as the fixed three-line blocks folded into the
// chat context. Empty input renders to an empty string.
func FormatBlock(items []Item) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(item.Title)
		if item.Source != "" {
			sb.WriteString(" — " + item.Source)
		}
		if item.Date != "" {
			sb.WriteString(" (" + item.Date + ")")
		}
		sb.WriteString("\n")
		if item.Description != "" {
			sb.WriteString(item.Description + "\n")
		}
		if item.URL != "" {
			sb.WriteString(item.URL + "\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
