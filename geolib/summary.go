package geolib

import (
	"fmt"
	"io"
	"sort"
)

// UnknownCity buckets target-country results the database located only
// to country level.
const UnknownCity = "Unknown"

// CityCount is one row of the city distribution.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// BatchSummary is derived from a result sequence in a single pass and
// holds no state of its own. Cities covers only results whose country
// equals TargetCountry, sorted by descending count; ties keep the order
// the cities were first seen in.
type BatchSummary struct {
	Total         int                `json:"total"`
	Found         int                `json:"found"`
	WithHostname  int                `json:"with_hostname"`
	WithHints     int                `json:"with_hints"`
	Confidence    map[Confidence]int `json:"confidence"`
	Cities        []CityCount        `json:"cities"`
	TargetCountry string             `json:"target_country"`
}

// Summarize recomputes the aggregate statistics for a finished batch.
// All four confidence levels are always present in the map.
func Summarize(results []LookupResult, targetCountry string) BatchSummary {
	summary := BatchSummary{
		Total:         len(results),
		TargetCountry: targetCountry,
		Confidence: map[Confidence]int{
			ConfidenceNone:   0,
			ConfidenceLow:    0,
			ConfidenceMedium: 0,
			ConfidenceHigh:   0,
		},
	}

	cityCounts := map[string]int{}
	cityOrder := []string{}

	for i := range results {
		result := &results[i]

		if result.Found() {
			summary.Found++
		}

		if result.Hostname != "" {
			summary.WithHostname++
		}

		if result.DNSHints != "" {
			summary.WithHints++
		}

		summary.Confidence[result.Confidence]++

		if result.Country != targetCountry {
			continue
		}

		city := result.City
		if city == "" {
			city = UnknownCity
		}

		if _, ok := cityCounts[city]; !ok {
			cityOrder = append(cityOrder, city)
		}

		cityCounts[city]++
	}

	summary.Cities = make([]CityCount, 0, len(cityOrder))
	for _, city := range cityOrder {
		summary.Cities = append(summary.Cities, CityCount{City: city, Count: cityCounts[city]})
	}

	sort.SliceStable(summary.Cities, func(i, j int) bool {
		return summary.Cities[i].Count > summary.Cities[j].Count
	})

	return summary
}

// Render writes the human readable run summary.
func (s BatchSummary) Render(w io.Writer) {
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Total IPs processed:     %d\n", s.Total)
	fmt.Fprintf(w, "Found in database:       %d (%.1f%%)\n", s.Found, s.percent(s.Found))
	fmt.Fprintf(w, "With DNS hostname:       %d (%.1f%%)\n", s.WithHostname, s.percent(s.WithHostname))
	fmt.Fprintf(w, "With location hints:     %d (%.1f%%)\n", s.WithHints, s.percent(s.WithHints))

	fmt.Fprintln(w, "\nConfidence levels:")
	for _, level := range []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceNone} {
		count := s.Confidence[level]
		fmt.Fprintf(w, "  %-7s %d (%.1f%%)\n", level.String()+":", count, s.percent(count))
	}

	if len(s.Cities) > 0 {
		fmt.Fprintf(w, "\n%s city distribution:\n", s.TargetCountry)
		for _, city := range s.Cities {
			fmt.Fprintf(w, "  %-20s: %d\n", city.City, city.Count)
		}
	}
}

func (s BatchSummary) percent(count int) float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(count) / float64(s.Total) * 100
}
