package geolib

import (
	"bufio"
	"io"
	"net"
	"regexp"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/afero"
)

// RouterEntry is one parsed line of a router list file. The trailing
// hostname is whatever annotation the list carried, it is kept for the
// operator but the pipeline resolves hostnames itself.
type RouterEntry struct {
	IP       net.IP
	Hostname string
}

// Router lists look like traceroute output:
//
//	1. 140.123.103.250    csgate103.cs.ccu.edu.tw
//
// an index, a dot, an IPv4 address, an optional annotation. Anything
// else is skipped.
var routerLinePattern = regexp.MustCompile(`^\s*\d+\.\s+(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})\s*(.*)$`)

// ParseRouterList extracts router entries from a line oriented reader.
// Lines that do not match the format, including ones with out-of-range
// octets, are ignored.
func ParseRouterList(r io.Reader) ([]RouterEntry, error) {
	entries := []RouterEntry{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		groups := routerLinePattern.FindStringSubmatch(scanner.Text())
		if groups == nil {
			continue
		}

		ip := net.ParseIP(groups[1])
		if ip == nil {
			continue
		}

		entries = append(entries, RouterEntry{
			IP:       ip,
			Hostname: strings.TrimSpace(groups[2]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Annotate(err, "Cannot read router list")
	}

	return entries, nil
}

// LoadRouterList parses a router list file from the given filesystem.
func LoadRouterList(fs afero.Fs, filename string) ([]RouterEntry, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, errors.Annotatef(err, "Cannot open router list %s", filename)
	}
	defer file.Close()

	return ParseRouterList(file)
}

// RouterIPs strips entries down to the address list the batch consumes.
func RouterIPs(entries []RouterEntry) []net.IP {
	ips := make([]net.IP, 0, len(entries))

	for _, entry := range entries {
		ips = append(ips, entry.IP)
	}

	return ips
}
