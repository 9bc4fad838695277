package geolib

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/juju/errors"
	"github.com/spf13/afero"
)

// WriteCityChart renders the target-country city distribution of a
// summary as a standalone HTML bar chart, largest bucket first.
func WriteCityChart(fs afero.Fs, filename string, summary BatchSummary) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s city distribution", summary.TargetCountry),
			Subtitle: fmt.Sprintf("%d of %d addresses located in %s", cityTotal(summary), summary.Total, summary.TargetCountry),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Router city distribution",
		}),
	)

	cities := make([]string, 0, len(summary.Cities))
	counts := make([]opts.BarData, 0, len(summary.Cities))

	for _, city := range summary.Cities {
		cities = append(cities, city.City)
		counts = append(counts, opts.BarData{Value: city.Count})
	}

	bar.SetXAxis(cities).AddSeries("addresses", counts)
	bar.XYReversal()

	file, err := fs.Create(filename)
	if err != nil {
		return errors.Annotatef(err, "Cannot create chart file %s", filename)
	}
	defer file.Close()

	return errors.Annotate(bar.Render(file), "Cannot render chart")
}

func cityTotal(summary BatchSummary) int {
	total := 0

	for _, city := range summary.Cities {
		total += city.Count
	}

	return total
}
