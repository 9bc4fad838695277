package config

import (
	"io"
	"io/ioutil"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"
	"github.com/pariz/gountries"

	"github.com/twnetmap/routergeo/geolib"
)

var validDatabaseKinds = map[string]bool{
	"maxmind":     true,
	"ip2location": true,
}

var countryQuery = gountries.New()

type duration struct {
	time.Duration
}

func (dur *duration) UnmarshalText(text []byte) (err error) {
	dur.Duration, err = time.ParseDuration(string(text))
	return
}

type DatabaseConfig struct {
	Kind string
	Path string
}

// RegionCodeConfig entries come as an array of tables so the file
// keeps its order, a plain TOML table would not.
type RegionCodeConfig struct {
	Code string
	City string
}

type Config struct {
	TargetCountry string   `toml:"target_country"`
	DNSTimeout    duration `toml:"dns_timeout"`
	Workers       int
	Listen        string
	Database      DatabaseConfig
	RegionCodes   []RegionCodeConfig `toml:"region_codes"`
}

// RegionCodeEntries returns the configured table or, when the config
// carries none, the built-in default one.
func (c *Config) RegionCodeEntries() []geolib.RegionCode {
	if len(c.RegionCodes) == 0 {
		return geolib.DefaultRegionCodes()
	}

	entries := make([]geolib.RegionCode, 0, len(c.RegionCodes))
	for _, rc := range c.RegionCodes {
		entries = append(entries, geolib.RegionCode{Code: rc.Code, City: rc.City})
	}

	return entries
}

func Parse(file io.Reader) (*Config, error) {
	conf := &Config{
		TargetCountry: "Taiwan",
		DNSTimeout:    duration{5 * time.Second},
		Workers:       1,
		Listen:        ":8000",
		Database:      DatabaseConfig{Kind: "maxmind"},
	}

	buf, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot read config file")
	}

	if _, err := toml.Decode(string(buf), conf); err != nil {
		return nil, errors.Annotate(err, "Cannot parse config file")
	}

	if err = validate(conf); err != nil {
		return nil, errors.Annotate(err, "Invalid value")
	}

	return conf, nil
}

func validate(conf *Config) error {
	if !validDatabaseKinds[conf.Database.Kind] {
		return errors.Errorf("Unknown database kind %s", conf.Database.Kind)
	}

	if conf.Database.Path == "" {
		return errors.Errorf("Database path is required")
	}

	if conf.Workers <= 0 {
		return errors.Errorf("Incorrect workers count %d", conf.Workers)
	}

	if conf.DNSTimeout.Duration <= 0 {
		return errors.Errorf("Incorrect dns timeout %s", conf.DNSTimeout.Duration)
	}

	for _, rc := range conf.RegionCodes {
		if rc.Code == "" || rc.City == "" {
			return errors.Errorf("Incorrect region code mapping %q -> %q", rc.Code, rc.City)
		}
	}

	normalized, err := normalizeCountry(conf.TargetCountry)
	if err != nil {
		return err
	}
	conf.TargetCountry = normalized

	return nil
}

// normalizeCountry maps whatever the operator wrote (common name,
// alpha-2 or alpha-3 code) to the common English country name, the
// form geo databases report.
func normalizeCountry(name string) (string, error) {
	country, err := countryQuery.FindCountryByName(name)
	if err != nil {
		country, err = countryQuery.FindCountryByAlpha(name)
	}

	if err != nil {
		return "", errors.Errorf("Unknown country %s", name)
	}

	return country.Name.Common, nil
}
