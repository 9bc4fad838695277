package providers

import (
	"context"
	"net"
	"strings"

	ip2location "github.com/ip2location/ip2location-go/v9"
	"github.com/juju/errors"

	"github.com/twnetmap/routergeo/geolib"
)

const ip2locationName = "ip2location"

// IP2Location serves lookups from an IP2Location BIN database. LITE
// data carries no accuracy radius, so that field stays absent and the
// scorer never awards its point for this provider.
type IP2Location struct {
	db *ip2location.DB
}

func NewIP2Location(path string) (*IP2Location, error) {
	db, err := ip2location.OpenDB(path)
	if err != nil {
		return nil, errors.Annotatef(err, "Cannot open ip2location database %s", path)
	}

	return &IP2Location{db: db}, nil
}

func (p *IP2Location) Name() string {
	return ip2locationName
}

func (p *IP2Location) Lookup(ctx context.Context, ip net.IP) (geolib.GeoRecord, error) {
	record := geolib.GeoRecord{}

	all, err := p.db.Get_all(ip.String())
	if err != nil {
		return record, errors.Annotatef(err, "Cannot resolve %s", ip)
	}

	country := cleanField(all.Country_long)
	if country == "" {
		return record, geolib.ErrIPNotFound
	}

	record.Country = country
	record.City = cleanField(all.City)
	record.Subdivision = cleanField(all.Region)
	record.PostalCode = cleanField(all.Zipcode)

	if all.Latitude != 0 || all.Longitude != 0 {
		latitude := float64(all.Latitude)
		longitude := float64(all.Longitude)
		record.Latitude = &latitude
		record.Longitude = &longitude
	}

	return record, nil
}

func (p *IP2Location) Close() error {
	p.db.Close()

	return nil
}

// cleanField drops the placeholder strings ip2location returns for
// unknown addresses and for columns the data file does not carry.
func cleanField(value string) string {
	switch {
	case value == "-" || value == "":
		return ""
	case strings.HasPrefix(value, "This parameter is unavailable"):
		return ""
	case strings.EqualFold(value, "invalid ip address."):
		return ""
	default:
		return value
	}
}
