package geolib

import (
	"context"
	"net"

	"github.com/juju/errors"
)

// Enricher assembles a LookupResult for one address out of the geo
// database record, the reverse DNS answer, and the region code hint.
// It keeps no state between calls: no caching, no retries.
type Enricher struct {
	geo    GeoProvider
	dns    ReverseDNS
	codes  *RegionCodeTable
	logger Logger
}

func NewEnricher(geo GeoProvider, dns ReverseDNS, codes *RegionCodeTable, logger Logger) *Enricher {
	if logger == nil {
		logger = nopLogger{}
	}

	return &Enricher{
		geo:    geo,
		dns:    dns,
		codes:  codes,
		logger: logger,
	}
}

// Enrich never fails the call itself: database misses and failures end
// up in the result's Error field so the batch can go on. Reverse DNS is
// attempted even when the database had nothing, a hostname alone can
// still push confidence above none.
func (e *Enricher) Enrich(ctx context.Context, ip net.IP) LookupResult {
	result := LookupResult{IP: ip.String()}

	record, err := e.geo.Lookup(ctx, ip)
	switch {
	case err == nil:
		result.Country = record.Country
		result.City = record.City
		result.Subdivision = record.Subdivision
		result.Latitude = record.Latitude
		result.Longitude = record.Longitude
		result.AccuracyRadius = record.AccuracyRadius
		result.PostalCode = record.PostalCode
	case errors.Cause(err) == ErrIPNotFound:
		result.Error = ErrIPNotFound.Error()
	default:
		result.Error = err.Error()
		e.logger.LookupError(ip, e.geo.Name(), err)
	}

	if hostname, err := e.dns.Resolve(ctx, ip); err == nil {
		result.Hostname = hostname
		result.DNSHints = e.codes.Extract(hostname)
	}

	result.Confidence = Score(&result)

	return result
}
