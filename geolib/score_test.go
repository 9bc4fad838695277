package geolib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twnetmap/routergeo/geolib"
)

func float64Ref(v float64) *float64 {
	return &v
}

func uint16Ref(v uint16) *uint16 {
	return &v
}

func TestScoreEmptyResult(t *testing.T) {
	result := geolib.LookupResult{IP: "1.2.3.4"}

	assert.Equal(t, geolib.ConfidenceNone, geolib.Score(&result))
}

func TestScoreHostnameAloneIsNotEnough(t *testing.T) {
	result := geolib.LookupResult{IP: "1.2.3.4", Hostname: "gw.example.net"}

	assert.Equal(t, geolib.ConfidenceNone, geolib.Score(&result))
}

func TestScoreThresholds(t *testing.T) {
	// city only: 2 points.
	result := geolib.LookupResult{City: "Taipei"}
	assert.Equal(t, geolib.ConfidenceLow, geolib.Score(&result))

	// city + hostname: 3 points, still low.
	result.Hostname = "gw.example.net"
	assert.Equal(t, geolib.ConfidenceLow, geolib.Score(&result))

	// city + coordinates: 4 points.
	result = geolib.LookupResult{
		City:      "Taipei",
		Latitude:  float64Ref(25.04),
		Longitude: float64Ref(121.53),
	}
	assert.Equal(t, geolib.ConfidenceMedium, geolib.Score(&result))

	// coordinates + city + hint: 6 points.
	result.DNSHints = "Taipei"
	assert.Equal(t, geolib.ConfidenceHigh, geolib.Score(&result))
}

func TestScoreDNSSignalsAloneGiveLow(t *testing.T) {
	result := geolib.LookupResult{
		IP:       "1.2.3.4",
		Hostname: "tpe-core1.example.tw",
		DNSHints: "Taipei",
		Error:    "IP not found in database",
	}

	// 1 for the hostname plus 2 for the hint.
	assert.Equal(t, geolib.ConfidenceLow, geolib.Score(&result))
}

func TestScoreAccuracyRadiusThreshold(t *testing.T) {
	result := geolib.LookupResult{
		Latitude:       float64Ref(25.04),
		Longitude:      float64Ref(121.53),
		Hostname:       "gw.example.net",
		AccuracyRadius: uint16Ref(49),
	}

	// 2 + 1 + 1: the sub-50km radius point counts.
	assert.Equal(t, geolib.ConfidenceMedium, geolib.Score(&result))

	// exactly 50km earns nothing.
	result.AccuracyRadius = uint16Ref(50)
	assert.Equal(t, geolib.ConfidenceLow, geolib.Score(&result))
}

func TestScoreIncompleteCoordinatePairEarnsNothing(t *testing.T) {
	result := geolib.LookupResult{City: "Taipei", Latitude: float64Ref(25.04)}

	assert.Equal(t, geolib.ConfidenceLow, geolib.Score(&result))
}

func TestScoreMonotonicInSignals(t *testing.T) {
	result := geolib.LookupResult{IP: "1.2.3.4"}
	previous := geolib.Score(&result)

	additions := []func(){
		func() { result.Hostname = "tpe-gw1.example.net" },
		func() { result.City = "Taipei" },
		func() { result.DNSHints = "Taipei" },
		func() {
			result.Latitude = float64Ref(25.04)
			result.Longitude = float64Ref(121.53)
		},
		func() { result.AccuracyRadius = uint16Ref(10) },
	}

	for _, add := range additions {
		add()
		current := geolib.Score(&result)
		assert.GreaterOrEqual(t, int(current), int(previous))
		previous = current
	}

	assert.Equal(t, geolib.ConfidenceHigh, previous)
}

func TestConfidenceStrings(t *testing.T) {
	assert.Equal(t, "none", geolib.ConfidenceNone.String())
	assert.Equal(t, "low", geolib.ConfidenceLow.String())
	assert.Equal(t, "medium", geolib.ConfidenceMedium.String())
	assert.Equal(t, "high", geolib.ConfidenceHigh.String())
}
