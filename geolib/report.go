package geolib

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/juju/errors"
	"github.com/spf13/afero"
)

// reportColumns is the report header, in the exact order fields are
// written. Downstream tooling keys on these names.
var reportColumns = []string{
	"ip",
	"country",
	"city",
	"subdivision",
	"latitude",
	"longitude",
	"accuracy_radius",
	"postal_code",
	"hostname",
	"dns_hints",
	"confidence",
	"error",
}

// WriteCSV serializes results one row per address, in the order given.
// Absent values become empty fields, not placeholders.
func WriteCSV(w io.Writer, results []LookupResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(reportColumns); err != nil {
		return errors.Annotate(err, "Cannot write report header")
	}

	for i := range results {
		if err := writer.Write(reportRow(&results[i])); err != nil {
			return errors.Annotatef(err, "Cannot write report row for %s", results[i].IP)
		}
	}

	writer.Flush()

	return errors.Annotate(writer.Error(), "Cannot flush report")
}

// SaveCSV writes the report into a file on the given filesystem.
func SaveCSV(fs afero.Fs, filename string, results []LookupResult) error {
	file, err := fs.Create(filename)
	if err != nil {
		return errors.Annotatef(err, "Cannot create report file %s", filename)
	}
	defer file.Close()

	return WriteCSV(file, results)
}

func reportRow(result *LookupResult) []string {
	return []string{
		result.IP,
		result.Country,
		result.City,
		result.Subdivision,
		formatCoordinate(result.Latitude),
		formatCoordinate(result.Longitude),
		formatRadius(result.AccuracyRadius),
		result.PostalCode,
		result.Hostname,
		result.DNSHints,
		result.Confidence.String(),
		result.Error,
	}
}

func formatCoordinate(value *float64) string {
	if value == nil {
		return ""
	}

	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatRadius(value *uint16) string {
	if value == nil {
		return ""
	}

	return strconv.Itoa(int(*value))
}
