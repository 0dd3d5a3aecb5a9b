package nvd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DeafMist/cve-radar/internal/models"
	"github.com/DeafMist/cve-radar/internal/processing"
)

// searchResponse mirrors the parts of the CVE API 2.0 payload we read.
type searchResponse struct {
	TotalResults    int `json:"totalResults"`
	Vulnerabilities []struct {
		CVE *struct {
			ID           string `json:"id"`
			Descriptions []struct {
				Lang  string `json:"lang"`
				Value string `json:"value"`
			} `json:"descriptions"`
		} `json:"cve"`
	} `json:"vulnerabilities"`
}

// Decode extracts advisories from a raw search response. Entries without a
// CVE identifier are skipped; source order is preserved.
func Decode(raw []byte) ([]models.Advisory, error) {
	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]models.Advisory, 0, len(parsed.Vulnerabilities))
	for _, v := range parsed.Vulnerabilities {
		if v.CVE == nil {
			continue
		}
		id := strings.TrimSpace(v.CVE.ID)
		if id == "" {
			continue
		}

		variants := make([]processing.Description, 0, len(v.CVE.Descriptions))
		for _, d := range v.CVE.Descriptions {
			variants = append(variants, processing.Description{Lang: d.Lang, Value: d.Value})
		}

		items = append(items, models.Advisory{
			ID:          id,
			Description: processing.FirstDescription(variants),
		})
	}

	return items, nil
}

// Parse is Decode without the error: a body that cannot be decoded yields no
// advisories.
func Parse(raw []byte) []models.Advisory {
	items, err := Decode(raw)
	if err != nil {
		return []models.Advisory{}
	}
	return items
}
