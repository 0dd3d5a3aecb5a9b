package nvd

import (
	"net/url"
	"strconv"
	"time"
)

const (
	// PageSize caps the number of advisories requested per search.
	PageSize = 20
	// Lookback is the publication window applied to every search.
	Lookback = 30 * 24 * time.Hour

	// timestampLayout is ISO-8601 in UTC with a literal Z and second precision.
	timestampLayout = "2006-01-02T15:04:05Z"
)

// SearchRequest is the parameter set for one keyword search.
type SearchRequest struct {
	Keyword     string
	WindowStart time.Time
	WindowEnd   time.Time
	PageSize    int
}

// BuildQuery returns a search for keyword covering the Lookback window that
// ends at now.
func BuildQuery(keyword string, now time.Time) SearchRequest {
	end := now.UTC().Truncate(time.Second)
	return SearchRequest{
		Keyword:     keyword,
		WindowStart: end.Add(-Lookback),
		WindowEnd:   end,
		PageSize:    PageSize,
	}
}

// Params encodes the request as upstream query parameters.
func (r SearchRequest) Params() url.Values {
	v := url.Values{}
	v.Set("pubStartDate", formatTimestamp(r.WindowStart))
	v.Set("pubEndDate", formatTimestamp(r.WindowEnd))
	v.Set("keywordSearch", r.Keyword)
	v.Set("resultsPerPage", strconv.Itoa(r.PageSize))
	return v
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(timestampLayout)
}
