package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/twnetmap/routergeo/api"
	"github.com/twnetmap/routergeo/config"
	"github.com/twnetmap/routergeo/geolib"
	"github.com/twnetmap/routergeo/providers"
)

var (
	app = kingpin.New(
		"routergeo",
		"Router IP geolocation with reverse DNS corroboration")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("ROUTERGEO_DEBUG").
		Bool()
	configFile = app.Flag("config", "Path to the config.").
			Short('c').
			Envar("ROUTERGEO_CONFIG").
			Required().
			File()

	runCmd = app.Command("run", "Enrich a router list and write the report.")
	input  = runCmd.Flag("input", "Router list file.").
		Short('i').
		Envar("ROUTERGEO_INPUT").
		Default("router_ips.txt").
		String()
	output = runCmd.Flag("output", "Report CSV file.").
		Short('o').
		Envar("ROUTERGEO_OUTPUT").
		Default("router_locations.csv").
		String()
	chart = runCmd.Flag("chart", "City distribution chart HTML file.").
		Envar("ROUTERGEO_CHART").
		String()

	serveCmd = app.Command("serve", "Serve the resolve HTTP API.")
)

// sampleIPs is the demonstration set used when no router list is
// around: Chunghwa Telecom, HiNet DNS and TANet.
var sampleIPs = []net.IP{
	net.ParseIP("1.34.0.1"),
	net.ParseIP("168.95.1.1"),
	net.ParseIP("203.133.1.1"),
}

const databaseGuidance = `A city-level geo database is required before anything can be processed.
For MaxMind, download GeoLite2-City.mmdb, e.g.:

    wget https://github.com/P3TERX/GeoLite.mmdb/raw/download/GeoLite2-City.mmdb

and point database.path of the config at it.`

func init() {
	app.Version("0.1.0")
	log.SetFormatter(&log.TextFormatter{})
	log.SetLevel(log.WarnLevel)
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := config.Parse(*configFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	codes, err := geolib.NewRegionCodeTable(conf.RegionCodeEntries())
	if err != nil {
		log.Fatal(err.Error())
	}

	geo, err := openDatabase(conf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		fmt.Fprintln(os.Stderr, databaseGuidance)
		os.Exit(1)
	}
	defer geo.Close()

	enricher := geolib.NewEnricher(geo,
		providers.NewReverseDNS(conf.DNSTimeout.Duration),
		codes,
		logger{})

	processor, err := geolib.NewProcessor(enricher, logger{}, conf.Workers)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer processor.Shutdown()

	switch command {
	case runCmd.FullCommand():
		if err := runBatch(processor, conf); err != nil {
			log.Fatal(err.Error())
		}
	case serveCmd.FullCommand():
		log.WithFields(log.Fields{
			"listen": conf.Listen,
		}).Info("Start HTTP API.")

		if err := http.ListenAndServe(conf.Listen, api.MakeServer(processor, conf.TargetCountry)); err != nil {
			log.Fatal(err.Error())
		}
	}
}

func openDatabase(conf *config.Config) (geolib.GeoProvider, error) {
	switch conf.Database.Kind {
	case "ip2location":
		return providers.NewIP2Location(conf.Database.Path)
	default:
		return providers.NewMaxMind(conf.Database.Path)
	}
}

func runBatch(processor *geolib.Processor, conf *config.Config) error {
	fs := afero.NewOsFs()
	ips := sampleIPs

	entries, err := geolib.LoadRouterList(fs, *input)
	switch {
	case err == nil:
		log.WithFields(log.Fields{
			"input":   *input,
			"routers": len(entries),
		}).Debug("Parsed router list.")

		ips = geolib.RouterIPs(entries)
	case os.IsNotExist(errors.Cause(err)):
		log.WithFields(log.Fields{
			"input": *input,
		}).Warn("Router list is missing, using sample addresses.")
	default:
		return err
	}

	results, err := processor.Process(context.Background(), ips)
	if err != nil {
		return err
	}

	if err := geolib.SaveCSV(fs, *output, results); err != nil {
		return err
	}

	summary := geolib.Summarize(results, conf.TargetCountry)
	summary.Render(os.Stdout)

	if *chart != "" {
		if err := geolib.WriteCityChart(fs, *chart, summary); err != nil {
			return err
		}
	}

	return nil
}
