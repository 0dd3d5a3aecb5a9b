package nvd_test

import (
	"testing"
	"time"

	"github.com/DeafMist/cve-radar/internal/nvd"
	"github.com/stretchr/testify/require"
)

func TestBuildQueryWindow(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC+5:30", 5*3600+1800),
		time.FixedZone("UTC-8", -8*3600),
	}
	keywords := []string{"", "log4j", "apache http server"}

	for _, loc := range zones {
		for _, kw := range keywords {
			now := time.Date(2024, 3, 10, 2, 30, 15, 987654321, loc)
			req := nvd.BuildQuery(kw, now)

			require.Equal(t, 30*24*time.Hour, req.WindowEnd.Sub(req.WindowStart))
			require.Equal(t, time.UTC, req.WindowEnd.Location())
			require.True(t, req.WindowEnd.Equal(now.Truncate(time.Second)))
			require.Equal(t, kw, req.Keyword)
			require.Equal(t, 20, req.PageSize)
		}
	}
}

func TestSearchRequestParams(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 5, 500, time.UTC)
	params := nvd.BuildQuery("log4j", now).Params()

	require.Equal(t, "2024-03-01T12:00:05Z", params.Get("pubStartDate"))
	require.Equal(t, "2024-03-31T12:00:05Z", params.Get("pubEndDate"))
	require.Equal(t, "log4j", params.Get("keywordSearch"))
	require.Equal(t, "20", params.Get("resultsPerPage"))
	require.Len(t, params, 4)
}

func TestSearchRequestParamsConvertOffsetToZ(t *testing.T) {
	now := time.Date(2024, 1, 31, 9, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	params := nvd.BuildQuery("", now).Params()

	require.Equal(t, "2024-01-31T07:00:00Z", params.Get("pubEndDate"))
	require.Equal(t, "2024-01-01T07:00:00Z", params.Get("pubStartDate"))
	require.True(t, params.Has("keywordSearch"))
	require.Empty(t, params.Get("keywordSearch"))
}
