package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/twnetmap/routergeo/geolib"
)

// Resolver is the slice of the batch pipeline the HTTP surface needs.
type Resolver interface {
	Process(ctx context.Context, ips []net.IP) ([]geolib.LookupResult, error)
}

// MakeServer builds the resolve API: GET / enriches the caller's own
// address, POST / enriches a submitted list.
func MakeServer(resolver Resolver, targetCountry string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(middleware.SetHeader("Content-Type", "application/json"))

	handler := &resolveHandler{
		resolver:      resolver,
		targetCountry: targetCountry,
	}

	router.Get("/", handler.resolveSelf)
	router.Post("/", handler.resolveIPs)

	return router
}

func abort(w http.ResponseWriter, code int, message string) {
	msg, _ := json.Marshal(map[string]string{"error": message})
	http.Error(w, string(msg), code)
}
