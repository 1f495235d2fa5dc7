package search

import (
	"fmt"
	"strings"

	"github.com/adrianliechti/wingman-search/pkg/searcher"
)

const (
	MaxExcerptLength = 200

	NoResults = "No results found."
)

// Digest renders results as numbered entries separated by blank lines.
func Digest(query string, results []searcher.Result) string {
	if len(results) == 0 {
		return NoResults
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Found %d results for %q:", len(results), query)

	for i, r := range results {
		sb.WriteString("\n\n")

		title := flatten(r.Title)

		if title == "" {
			title = "(untitled)"
		}

		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)

		if media := flatten(r.Media); media != "" {
			fmt.Fprintf(&sb, "   Source: %s\n", media)
		}

		if date := flatten(r.PublishDate); date != "" {
			fmt.Fprintf(&sb, "   Published: %s\n", date)
		}

		fmt.Fprintf(&sb, "   %s\n", Excerpt(r.Content))
		fmt.Fprintf(&sb, "   %s", flatten(r.Source))
	}

	return sb.String()
}

// Excerpt flattens content to a single line of at most MaxExcerptLength characters.
func Excerpt(content string) string {
	content = flatten(content)

	if content == "" {
		return "..."
	}

	runes := []rune(content)

	if len(runes) <= MaxExcerptLength {
		return content
	}

	return string(runes[:MaxExcerptLength-3]) + "..."
}

// flatten collapses whitespace runs, line breaks included, into single spaces.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Failure renders a provider error as conversational text.
func Failure(err error) string {
	return "search failed: " + err.Error()
}
