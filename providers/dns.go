package providers

import (
	"context"
	stderrors "errors"
	"net"
	"strings"
	"time"

	"github.com/juju/errors"

	"github.com/twnetmap/routergeo/geolib"
)

// DefaultDNSTimeout caps how long one PTR query may stall the batch.
const DefaultDNSTimeout = 5 * time.Second

// ReverseDNS resolves PTR records with the system resolver. A missing
// answer and a resolver timeout are the same expected outcome: no
// hostname for this address.
type ReverseDNS struct {
	resolver *net.Resolver
	timeout  time.Duration
}

func NewReverseDNS(timeout time.Duration) *ReverseDNS {
	if timeout <= 0 {
		timeout = DefaultDNSTimeout
	}

	return &ReverseDNS{
		resolver: &net.Resolver{},
		timeout:  timeout,
	}
}

func (r *ReverseDNS) Resolve(ctx context.Context, ip net.IP) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	names, err := r.resolver.LookupAddr(ctx, ip.String())
	if err != nil {
		if isResolutionMiss(err) {
			return "", geolib.ErrHostNotFound
		}

		return "", errors.Annotatef(err, "Cannot resolve hostname for %s", ip)
	}

	if len(names) == 0 {
		return "", geolib.ErrHostNotFound
	}

	return strings.TrimSuffix(names[0], "."), nil
}

func isResolutionMiss(err error) bool {
	var dnsErr *net.DNSError

	if stderrors.As(err, &dnsErr) {
		return dnsErr.IsNotFound || dnsErr.IsTimeout || dnsErr.IsTemporary
	}

	return stderrors.Is(err, context.DeadlineExceeded)
}
