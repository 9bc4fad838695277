package providers

import (
	"context"
	"net"

	"github.com/juju/errors"
	geoip2 "github.com/oschwald/geoip2-golang"

	"github.com/twnetmap/routergeo/geolib"
)

const maxmindName = "maxmind"

// MaxMind reads a GeoLite2/GeoIP2 City database. The reader is opened
// once and must be released with Close, there is no finalizer safety
// net.
type MaxMind struct {
	db *geoip2.Reader
}

func NewMaxMind(path string) (*MaxMind, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "Cannot open maxmind database %s", path)
	}

	return &MaxMind{db: db}, nil
}

func (m *MaxMind) Name() string {
	return maxmindName
}

func (m *MaxMind) Lookup(ctx context.Context, ip net.IP) (geolib.GeoRecord, error) {
	record := geolib.GeoRecord{}

	city, err := m.db.City(ip)
	if err != nil {
		return record, errors.Annotatef(err, "Cannot resolve %s", ip)
	}

	// geoip2 reports unknown addresses with an empty record, not an
	// error.
	if emptyCityRecord(city) {
		return record, geolib.ErrIPNotFound
	}

	record.Country = city.Country.Names["en"]
	record.City = city.City.Names["en"]
	record.PostalCode = city.Postal.Code

	// the last subdivision is the most specific one.
	if len(city.Subdivisions) > 0 {
		record.Subdivision = city.Subdivisions[len(city.Subdivisions)-1].Names["en"]
	}

	// The mmdb decoder gives no way to tell a stored (0,0) from a
	// missing location section, both come out as zeroes. Treat both as
	// absent.
	if city.Location.Latitude != 0 || city.Location.Longitude != 0 {
		latitude := city.Location.Latitude
		longitude := city.Location.Longitude
		record.Latitude = &latitude
		record.Longitude = &longitude
	}

	if city.Location.AccuracyRadius > 0 {
		radius := city.Location.AccuracyRadius
		record.AccuracyRadius = &radius
	}

	return record, nil
}

func (m *MaxMind) Close() error {
	return m.db.Close()
}

func emptyCityRecord(city *geoip2.City) bool {
	return city.Country.IsoCode == "" &&
		len(city.City.Names) == 0 &&
		len(city.Subdivisions) == 0 &&
		city.Location.Latitude == 0 &&
		city.Location.Longitude == 0 &&
		city.Postal.Code == ""
}
