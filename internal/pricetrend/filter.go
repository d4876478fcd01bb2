package pricetrend

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed seed/trends.json
var seedTrends []byte

// SeedTrends decodes the bundled price observations.
func SeedTrends() ([]Trend, error) {
	var trends []Trend
	if err := json.Unmarshal(seedTrends, &trends); err != nil {
		return nil, fmt.Errorf("decode seed trends: %w", err)
	}
	return trends, nil
}

// Filter keeps trends whose crop contains category (unless it is AllCrops or
// blank) and whose crop or location contains search. Matching ignores case.
func Filter(trends []Trend, category, search string) []Trend {
	cat := strings.ToLower(strings.TrimSpace(category))
	if strings.EqualFold(cat, AllCrops) {
		cat = ""
	}
	q := strings.ToLower(strings.TrimSpace(search))

	out := make([]Trend, 0, len(trends))
	for _, t := range trends {
		crop := strings.ToLower(t.Crop)
		if cat != "" && !strings.Contains(crop, cat) {
			continue
		}
		if q != "" && !strings.Contains(crop, q) && !strings.Contains(strings.ToLower(t.Location), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Find returns the first trend for crop, compared case-insensitively.
func Find(trends []Trend, crop string) (Trend, bool) {
	crop = strings.TrimSpace(crop)
	for _, t := range trends {
		if strings.EqualFold(t.Crop, crop) {
			return t, true
		}
	}
	return Trend{}, false
}

// Crops lists the distinct crop names in first-seen order.
func Crops(trends []Trend) []string {
	seen := make(map[string]struct{}, len(trends))
	out := make([]string, 0, len(trends))
	for _, t := range trends {
		if _, dup := seen[t.Crop]; dup {
			continue
		}
		seen[t.Crop] = struct{}{}
		out = append(out, t.Crop)
	}
	return out
}
