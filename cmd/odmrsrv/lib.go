package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/spinlab/odmr/data"
	"github.com/spinlab/odmr/generichttp"
	"github.com/spinlab/odmr/generichttp/tmc"
	"github.com/spinlab/odmr/server/middleware/locker"
	"github.com/spinlab/odmr/siggen"
	"github.com/spinlab/odmr/srs"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// ObjSetup holds the typical triplet of args for a New<device> call.
// Serial is not always used, and need not be populated in the config
// file if not used.
type ObjSetup struct {
	// Addr holds the network or filesystem address of the remote device,
	// e.g. 192.168.100.123:5025 for a device on ethernet,
	// or /dev/ttyS4 for an RS232 device on a serial cable.  Unused for
	// simulated devices.
	Addr string `yaml:"Addr"`

	// Endpoint is the path the routes from this device will be served
	// on, ex. Endpoint="/odmr/siggen" produces routes of
	// /odmr/siggen/frequency, etc.
	Endpoint string `yaml:"Endpoint"`

	// Serial determines if the connection is serial/RS232 (True) or TCP (False)
	Serial bool `yaml:"Serial"`

	// Type is the "type" of the device, e.g. SG380
	Type string `yaml:"Type"`
}

// Config is a struct that holds the initialization parameters for the
// server.  It is to be populated by a yaml/unmarshal call.
type Config struct {
	// Addr is the address to listen at
	Addr string `yaml:"Addr"`

	// Mock replaces every configured device with the simulator
	Mock bool `yaml:"Mock"`

	// Nodes is the list of devices to set up
	Nodes []ObjSetup `yaml:"Nodes"`
}

// BuildMux uses the config to construct a chi router with a submux per
// device, the data relay mounted at /data, and a special route,
// /endpoints, which returns all device routes as JSON.
func BuildMux(c Config) chi.Router {
	// make the root handler
	root := chi.NewRouter()
	root.Use(middleware.Logger)
	supergraph := map[string][]string{}

	for _, node := range c.Nodes {
		var httper generichttp.HTTPer
		typ := strings.ToLower(node.Type)
		switch typ {
		case "siggen", "sim":
			httper = siggen.NewHTTPWrapper(siggen.New())

		case "srs", "sg380", "sg384", "sg386":
			if c.Mock {
				httper = siggen.NewHTTPWrapper(siggen.New())
				break
			}
			gen := srs.NewSG380(node.Addr, node.Serial)
			httper = tmc.NewHTTPSignalGenerator(gen)

		default:
			log.Fatal("type ", typ, " not understood")
		}

		// prepare the URL, "odmr/siggen" => "/odmr/siggen"
		hndlS := generichttp.SubMuxSanitize(node.Endpoint)

		// add a lock interface for this node, so a client can hold the
		// device for the duration of a measurement
		lock := locker.New()
		locker.Inject(httper, lock)

		// add the endpoints to the graph
		supergraph[hndlS] = httper.RT().Endpoints()

		// bind to the mux
		r := chi.NewRouter()
		r.Use(lock.Check)
		httper.RT().Bind(r)
		root.Mount(hndlS, r)
	}

	// the data relay carries measurement results from sweep processes
	// to any subscribed consumers
	hub := data.NewHub()
	relay := data.NewRelay(hub)
	root.Route("/data", func(r chi.Router) {
		relay.Bind(r)
	})

	root.Get("/endpoints", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		err := json.NewEncoder(w).Encode(supergraph)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return root
}
