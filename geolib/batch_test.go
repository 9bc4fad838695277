package geolib_test

import (
	"context"
	"net"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twnetmap/routergeo/geolib"
)

// stubGeo serves canned records keyed by address; anything else is a
// database miss.
type stubGeo struct {
	records map[string]geolib.GeoRecord
}

func (s stubGeo) Name() string {
	return "stub"
}

func (s stubGeo) Lookup(_ context.Context, ip net.IP) (geolib.GeoRecord, error) {
	record, ok := s.records[ip.String()]
	if !ok {
		return geolib.GeoRecord{}, geolib.ErrIPNotFound
	}

	return record, nil
}

func (s stubGeo) Close() error {
	return nil
}

type stubDNS struct {
	names map[string]string
}

func (s stubDNS) Resolve(_ context.Context, ip net.IP) (string, error) {
	name, ok := s.names[ip.String()]
	if !ok {
		return "", geolib.ErrHostNotFound
	}

	return name, nil
}

type countingLogger struct {
	lookupErrors uint32
	progress     uint32
}

func (l *countingLogger) LookupError(net.IP, string, error) {
	atomic.AddUint32(&l.lookupErrors, 1)
}

func (l *countingLogger) Progress(int, int, *geolib.LookupResult) {
	atomic.AddUint32(&l.progress, 1)
}

func newTestProcessor(t *testing.T, geo geolib.GeoProvider, dns geolib.ReverseDNS, workers int, logger geolib.Logger) *geolib.Processor {
	table, err := geolib.NewRegionCodeTable(geolib.DefaultRegionCodes())
	assert.Nil(t, err)

	processor, err := geolib.NewProcessor(geolib.NewEnricher(geo, dns, table, logger), logger, workers)
	assert.Nil(t, err)

	return processor
}

func parseIPs(t *testing.T, addrs ...string) []net.IP {
	ips := make([]net.IP, 0, len(addrs))

	for _, addr := range addrs {
		ip := net.ParseIP(addr)
		assert.NotNil(t, ip)
		ips = append(ips, ip)
	}

	return ips
}

func TestProcessPreservesInputOrder(t *testing.T) {
	geo := stubGeo{records: map[string]geolib.GeoRecord{
		"10.0.0.2": {Country: "Taiwan", City: "Taipei"},
	}}
	dns := stubDNS{}

	for _, workers := range []int{1, 4} {
		processor := newTestProcessor(t, geo, dns, workers, nil)

		ips := parseIPs(t, "10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4")
		results, err := processor.Process(context.Background(), ips)
		assert.Nil(t, err)

		assert.Len(t, results, len(ips))
		for i, ip := range ips {
			assert.Equal(t, ip.String(), results[i].IP)
		}

		processor.Shutdown()
	}
}

func TestProcessRowFailureDoesNotAbortBatch(t *testing.T) {
	geo := stubGeo{records: map[string]geolib.GeoRecord{
		"10.0.0.1": {Country: "Taiwan", City: "Taipei"},
		"10.0.0.3": {Country: "Taiwan", City: "Tainan"},
	}}
	dns := stubDNS{}

	processor := newTestProcessor(t, geo, dns, 1, nil)
	defer processor.Shutdown()

	results, err := processor.Process(context.Background(),
		parseIPs(t, "10.0.0.1", "10.0.0.2", "10.0.0.3"))
	assert.Nil(t, err)
	assert.Len(t, results, 3)

	assert.Empty(t, results[0].Error)
	assert.Equal(t, "Taipei", results[0].City)

	assert.Equal(t, "IP not found in database", results[1].Error)
	assert.Empty(t, results[1].City)

	assert.Empty(t, results[2].Error)
	assert.Equal(t, "Tainan", results[2].City)
}

func TestProcessReportsProgress(t *testing.T) {
	logger := &countingLogger{}
	processor := newTestProcessor(t, stubGeo{}, stubDNS{}, 2, logger)
	defer processor.Shutdown()

	_, err := processor.Process(context.Background(),
		parseIPs(t, "10.0.0.1", "10.0.0.2", "10.0.0.3"))
	assert.Nil(t, err)

	assert.Equal(t, uint32(3), atomic.LoadUint32(&logger.progress))
	assert.Equal(t, uint32(0), atomic.LoadUint32(&logger.lookupErrors))
}

func TestProcessEmptyBatch(t *testing.T) {
	processor := newTestProcessor(t, stubGeo{}, stubDNS{}, 1, nil)
	defer processor.Shutdown()

	results, err := processor.Process(context.Background(), nil)
	assert.Nil(t, err)
	assert.Len(t, results, 0)
}

func TestProcessEndToEndRow(t *testing.T) {
	geo := stubGeo{}
	dns := stubDNS{names: map[string]string{
		"1.2.3.4": "tpe-core1.example.tw",
	}}

	processor := newTestProcessor(t, geo, dns, 1, nil)
	defer processor.Shutdown()

	results, err := processor.Process(context.Background(), parseIPs(t, "1.2.3.4"))
	assert.Nil(t, err)
	assert.Len(t, results, 1)

	row := results[0]
	assert.Equal(t, "1.2.3.4", row.IP)
	assert.Empty(t, row.Country)
	assert.Empty(t, row.City)
	assert.Nil(t, row.Latitude)
	assert.Nil(t, row.Longitude)
	assert.Equal(t, "IP not found in database", row.Error)
	assert.Equal(t, "tpe-core1.example.tw", row.Hostname)
	assert.Equal(t, "Taipei", row.DNSHints)
	assert.Equal(t, geolib.ConfidenceLow, row.Confidence)
}
