package geolib

import "errors"

var (
	// ErrIPNotFound is returned by a GeoProvider when the database has
	// no record for the address. Its text is written to the report
	// verbatim, so do not reword it.
	ErrIPNotFound = errors.New("IP not found in database")

	// ErrHostNotFound is the "no PTR record" outcome of a ReverseDNS
	// provider. NXDOMAIN and resolver timeouts both map here.
	ErrHostNotFound = errors.New("hostname is not resolvable")
)
