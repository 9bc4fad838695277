package geolib

import (
	"context"
	"net"
)

// GeoProvider is an opened geo database. Lookup returns ErrIPNotFound
// when the database has no record for the address; any other error is
// a lookup failure. Close releases the underlying reader.
type GeoProvider interface {
	Name() string
	Lookup(ctx context.Context, ip net.IP) (GeoRecord, error)
	Close() error
}

// ReverseDNS resolves a PTR hostname for an address. A missing answer
// is reported as ErrHostNotFound and treated as absent data upstream,
// never as a row error.
type ReverseDNS interface {
	Resolve(ctx context.Context, ip net.IP) (string, error)
}

// Logger receives pipeline events. Implementations must be safe for
// concurrent use, the batch processor calls them from its workers.
type Logger interface {
	LookupError(ip net.IP, provider string, err error)
	Progress(done, total int, result *LookupResult)
}

type nopLogger struct{}

func (l nopLogger) LookupError(net.IP, string, error) {}

func (l nopLogger) Progress(int, int, *LookupResult) {}
