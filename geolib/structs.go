package geolib

// GeoRecord is what a geo database provider returns for a single
// address. Absent strings are empty, absent numbers are nil.
type GeoRecord struct {
	Country        string
	City           string
	Subdivision    string
	Latitude       *float64
	Longitude      *float64
	AccuracyRadius *uint16
	PostalCode     string
}

// LookupResult is the enrichment outcome for one address. It is fully
// populated by a single Enrich call and is read-only afterwards.
//
// A database miss leaves the geo fields absent and sets Error, but
// Hostname and DNSHints can still be present: reverse DNS is attempted
// regardless of the database outcome.
type LookupResult struct {
	IP             string     `json:"ip"`
	Country        string     `json:"country,omitempty"`
	City           string     `json:"city,omitempty"`
	Subdivision    string     `json:"subdivision,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	AccuracyRadius *uint16    `json:"accuracy_radius,omitempty"`
	PostalCode     string     `json:"postal_code,omitempty"`
	Hostname       string     `json:"hostname,omitempty"`
	DNSHints       string     `json:"dns_hints,omitempty"`
	Confidence     Confidence `json:"confidence"`
	Error          string     `json:"error,omitempty"`
}

// Found tells if the database gave us a usable city-level record.
func (r *LookupResult) Found() bool {
	return r.City != ""
}
