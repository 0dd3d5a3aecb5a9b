package render_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/DeafMist/cve-radar/internal/models"
	"github.com/DeafMist/cve-radar/internal/render"
)

// collect returns the text content of every element named tag, in document order.
func collect(t *testing.T, markup, tag string) []string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)

	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, textOf(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func TestResultsEmpty(t *testing.T) {
	for _, records := range [][]models.Advisory{nil, {}} {
		got := string(render.Results(records))
		require.Equal(t, "<p>"+render.NoResults+"</p>", got)
		require.Contains(t, got, "no matching results")
		require.Empty(t, collect(t, got, "li"))
	}
}

func TestResultsItemCount(t *testing.T) {
	for _, n := range []int{1, 2, 7, 20} {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			records := make([]models.Advisory, 0, n)
			for i := 0; i < n; i++ {
				records = append(records, models.Advisory{ID: fmt.Sprintf("CVE-2024-%04d", i), Description: "d"})
			}

			got := string(render.Results(records))
			require.Len(t, collect(t, got, "ul"), 1)
			require.Len(t, collect(t, got, "li"), n)
			require.NotContains(t, got, render.NoResults)
		})
	}
}

func TestResultsOrderAndMarkup(t *testing.T) {
	got := string(render.Results([]models.Advisory{
		{ID: "CVE-2021-44228", Description: "desc A"},
		{ID: "CVE-2021-45046", Description: "desc B"},
	}))

	require.Equal(t, []string{"CVE-2021-44228: desc A", "CVE-2021-45046: desc B"}, collect(t, got, "li"))
	require.Equal(t, []string{"CVE-2021-44228", "CVE-2021-45046"}, collect(t, got, "strong"))
}

func TestResultsEscapes(t *testing.T) {
	got := string(render.Results([]models.Advisory{
		{ID: "CVE-<b>1</b>", Description: `<script>alert("x")</script>`},
	}))

	require.NotContains(t, got, "<script>")
	require.Contains(t, got, "&lt;script&gt;")
	require.Equal(t, []string{`CVE-<b>1</b>: <script>alert("x")</script>`}, collect(t, got, "li"))
}

func TestPage(t *testing.T) {
	var buf bytes.Buffer
	err := render.Page(&buf, render.PageData{
		Keyword: `log4j"><x`,
		Results: render.Results([]models.Advisory{{ID: "CVE-2021-44228", Description: "desc A"}}),
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "<title>Fetch CVEs</title>")
	require.Contains(t, out, `<form action="/fetch_cves" method="post"`)
	require.Contains(t, out, `value="log4j&#34;&gt;&lt;x"`)
	require.Equal(t, []string{"CVE-2021-44228: desc A"}, collect(t, out, "li"))
}
