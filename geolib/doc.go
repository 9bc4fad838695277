// Package geolib implements the router geolocation pipeline: it takes
// IPv4 addresses, enriches each one with a record from a local geo
// database and a reverse DNS hostname, extracts city hints from the
// hostname with a region code table, rates how much evidence backs the
// location guess, and aggregates run statistics.
//
// The package does not know how to acquire databases or how DNS works.
// Both are hidden behind the GeoProvider and ReverseDNS interfaces and
// supplied by the providers package.
package geolib
