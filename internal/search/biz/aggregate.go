package biz

import (
	"fmt"
	"strings"

	"github.com/sightline-ai/people-search-backend/internal/search/types"
)

// maxResults caps the aggregated output served to the frontend
const maxResults = 10

// viewProfileText is the fixed call-to-action label on every entry
const viewProfileText = "View Profile"

// nameSeparators in priority order: the first one present in the title
// wins, regardless of position
var nameSeparators = []string{" - ", " / ", " | "}

// extractName cuts the person name out of a search-result title
func extractName(title string) string {
	for _, sep := range nameSeparators {
		if idx := strings.Index(title, sep); idx >= 0 {
			return strings.TrimSpace(title[:idx])
		}
	}
	return strings.TrimSpace(title)
}

// resultID derives a stable entry id from the flattened result index and
// the last 8 characters of the link. Characters, not bytes, so a
// multibyte link tail never yields a split rune.
func resultID(index int, link string) string {
	tail := link
	if runes := []rune(link); len(runes) > 8 {
		tail = string(runes[len(runes)-8:])
	}
	return fmt.Sprintf("%d-%s", index, tail)
}

// profileImageURL builds the avatar placeholder URL for a name
func profileImageURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + strings.ReplaceAll(name, " ", "+") + "&background=random"
}

// aggregate flattens a bundle into normalized entries, preserving
// generation order then intra-page order, capped at maxResults
func aggregate(bundle *types.QueryBundle) []types.AggregatedResult {
	out := make([]types.AggregatedResult, 0, maxResults)
	index := 0

	for _, entry := range bundle.Entries {
		if entry.Results == nil {
			continue
		}
		for _, raw := range entry.Results.Data {
			if index >= maxResults {
				return out
			}
			name := extractName(raw.Title)
			out = append(out, types.AggregatedResult{
				ID:           resultID(index, raw.Link),
				Name:         name,
				ProfileImage: profileImageURL(name),
				LinkUrl:      raw.Link,
				LinkText:     viewProfileText,
			})
			index++
		}
	}

	return out
}
