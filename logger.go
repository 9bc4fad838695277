package main

import (
	"net"

	log "github.com/sirupsen/logrus"

	"github.com/twnetmap/routergeo/geolib"
)

type logger struct{}

func (l logger) LookupError(ip net.IP, provider string, err error) {
	log.WithFields(log.Fields{
		"ip":       ip.String(),
		"provider": provider,
	}).Warn(err.Error())
}

func (l logger) Progress(done, total int, result *geolib.LookupResult) {
	fields := log.Fields{
		"done":       done,
		"total":      total,
		"ip":         result.IP,
		"confidence": result.Confidence.String(),
	}

	if result.City != "" {
		fields["city"] = result.City
	}

	if result.DNSHints != "" {
		fields["dns_hint"] = result.DNSHints
	}

	log.WithFields(fields).Info("Processed address.")
}
