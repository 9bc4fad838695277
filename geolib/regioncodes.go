package geolib

import (
	"regexp"
	"strings"

	"github.com/juju/errors"
)

// RegionCode binds a short hostname token to a canonical city name.
type RegionCode struct {
	Code string
	City string
}

// RegionCodeTable matches region code tokens inside hostnames. Entry
// order is significant: overlapping codes ("tc" vs "tcn") resolve to
// the first entry whose pattern matches, so a table always yields the
// same hint for the same hostname.
type RegionCodeTable struct {
	entries  []RegionCode
	patterns []*regexp.Regexp
}

// NewRegionCodeTable compiles the token patterns once. A code matches
// only as a bounded token: on a word boundary, between one of "-", "_",
// ".", or immediately followed by a digit. Plain substrings inside an
// unrelated word never match.
func NewRegionCodeTable(entries []RegionCode) (*RegionCodeTable, error) {
	table := &RegionCodeTable{
		entries:  entries,
		patterns: make([]*regexp.Regexp, 0, len(entries)),
	}

	for _, entry := range entries {
		if entry.Code == "" || entry.City == "" {
			return nil, errors.Errorf("Incorrect region code mapping %q -> %q",
				entry.Code, entry.City)
		}

		code := regexp.QuoteMeta(strings.ToLower(entry.Code))
		pattern, err := regexp.Compile(`\b` + code + `\b|[-_.]` + code + `[-_.]|` + code + `\d`)
		if err != nil {
			return nil, errors.Annotatef(err, "Cannot compile pattern for code %s", entry.Code)
		}

		table.patterns = append(table.patterns, pattern)
	}

	return table, nil
}

// Extract returns the city of the first region code found in the
// hostname, or an empty string when no bounded token matches.
func (t *RegionCodeTable) Extract(hostname string) string {
	hostname = strings.ToLower(hostname)

	for i, pattern := range t.patterns {
		if pattern.MatchString(hostname) {
			return t.entries[i].City
		}
	}

	return ""
}

// Len returns the number of entries in the table.
func (t *RegionCodeTable) Len() int {
	return len(t.entries)
}

// DefaultRegionCodes is the Taiwan city code table the batch was tuned
// on. Order matters and is part of the contract.
func DefaultRegionCodes() []RegionCode {
	return []RegionCode{
		{"tpe", "Taipei"},
		{"tpq", "Taipei"},
		{"ntc", "New Taipei"},
		{"ntpc", "New Taipei"},
		{"tyn", "Taoyuan"},
		{"ty", "Taoyuan"},
		{"tcn", "Taichung"},
		{"tc", "Taichung"},
		{"txg", "Taichung"},
		{"tnn", "Tainan"},
		{"tn", "Tainan"},
		{"khh", "Kaohsiung"},
		{"kh", "Kaohsiung"},
		{"hsc", "Hsinchu"},
		{"hc", "Hsinchu"},
		{"hch", "Hsinchu"},
		{"hl", "Hualien"},
		{"il", "Yilan"},
		{"tt", "Taitung"},
		{"nt", "Nantou"},
		{"cy", "Chiayi"},
		{"ml", "Miaoli"},
		{"cl", "Changhua"},
		{"yl", "Yunlin"},
		{"pt", "Pingtung"},
	}
}
