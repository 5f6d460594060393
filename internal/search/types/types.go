package types

// StructuredQuery is a single search-engine query string in dork syntax
type StructuredQuery = string

// RawResult is one item returned by a search backend
type RawResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// ResultPage holds the results of one executed query.
// Links mirrors Data[i].Link in order.
type ResultPage struct {
	Data  []RawResult `json:"data"`
	Links []string    `json:"links"`
}

// NewResultPage builds a page and its link projection
func NewResultPage(results []RawResult) *ResultPage {
	links := make([]string, len(results))
	for i, r := range results {
		links[i] = r.Link
	}
	return &ResultPage{Data: results, Links: links}
}

// BundleEntry pairs a generated query with its results
type BundleEntry struct {
	Label   string          `json:"label"` // query_1, query_2, ...
	Query   StructuredQuery `json:"query"`
	Results *ResultPage     `json:"results"`
}

// QueryBundle preserves the generation order of the synthesized queries
type QueryBundle struct {
	Entries []BundleEntry `json:"entries"`
}

// AggregatedResult is one normalized person entry served to the frontend
type AggregatedResult struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
	LinkUrl      string `json:"linkUrl"`
	LinkText     string `json:"linkText"`
}
