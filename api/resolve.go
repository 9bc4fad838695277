package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/twnetmap/routergeo/geolib"
)

type ipResolveRequestStruct struct {
	Ips []string `json:"ips"`
}

type ipResolveResponseStruct struct {
	Results []geolib.LookupResult `json:"results"`
	Summary geolib.BatchSummary   `json:"summary"`
}

type resolveHandler struct {
	resolver      Resolver
	targetCountry string
}

func (h *resolveHandler) resolveIPs(w http.ResponseWriter, r *http.Request) {
	requestBody := ipResolveRequestStruct{}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		abort(w, http.StatusNotAcceptable, err.Error())
		return
	}

	if len(requestBody.Ips) == 0 {
		abort(w, http.StatusNotAcceptable, "Please provide ips to resolve")
		return
	}

	ips := make([]net.IP, 0, len(requestBody.Ips))

	for _, v := range requestBody.Ips {
		ip := net.ParseIP(v)
		if ip == nil {
			abort(w, http.StatusNotAcceptable, fmt.Sprintf("Incorrect IP address %s", v))
			return
		}

		ips = append(ips, ip)
	}

	h.respond(w, r, ips)
}

func (h *resolveHandler) resolveSelf(w http.ResponseWriter, r *http.Request) {
	// RealIP middleware already stripped the port when the address came
	// from a proxy header.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	ip := net.ParseIP(host)
	if ip == nil {
		abort(w, http.StatusInternalServerError, "Cannot detect the caller address")
		return
	}

	h.respond(w, r, []net.IP{ip})
}

func (h *resolveHandler) respond(w http.ResponseWriter, r *http.Request, ips []net.IP) {
	results, err := h.resolver.Process(r.Context(), ips)
	if err != nil {
		abort(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := ipResolveResponseStruct{
		Results: results,
		Summary: geolib.Summarize(results, h.targetCountry),
	}

	json.NewEncoder(w).Encode(response) // nolint
}
