// Package generichttp defines interfaces for generic devices
// and an extensible type that wraps them in an HTTP interface
package generichttp

import (
	"encoding/json"
	"go/types"
	"net/http"
	"sort"
	"strings"

	"github.com/spinlab/odmr/server"

	"github.com/go-chi/chi"
)

// MethodPath is a route, a pair of an HTTP method and a URL path
type MethodPath struct {
	Method string
	Path   string
}

// RouteTable maps routes to handlers
type RouteTable map[MethodPath]http.HandlerFunc

// Bind registers every route in the table on r
func (rt RouteTable) Bind(r chi.Router) {
	for mp, handler := range rt {
		r.Method(mp.Method, mp.Path, handler)
	}
}

// Endpoints lists the paths in the route table, sorted and deduplicated
func (rt RouteTable) Endpoints() []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(rt))
	for mp := range rt {
		if _, ok := seen[mp.Path]; ok {
			continue
		}
		seen[mp.Path] = struct{}{}
		out = append(out, mp.Path)
	}
	sort.Strings(out)
	return out
}

// HTTPer is an object that can yield a route table to be bound on a router
type HTTPer interface {
	RT() RouteTable
}

// SubMuxSanitize ensures a leading slash and no trailing slash or
// wildcard, "omc/nkt/" => "/omc/nkt"
func SubMuxSanitize(stem string) string {
	stem = strings.TrimSuffix(stem, "*")
	stem = strings.Trim(stem, "/")
	return "/" + stem
}

// GetFloat calls a float-getting function and returns the response
// as json {'f64': value}
func GetFloat(fcn func() (float64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := fcn()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		hp := server.HumanPayload{T: types.Float64, Float: f}
		hp.EncodeAndRespond(w, r)
	}
}

// SetFloat parses a JSON input of {'f64': value} and
// calls fcn with it
func SetFloat(fcn func(float64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := server.FloatT{}
		err := json.NewDecoder(r.Body).Decode(&f)
		defer r.Body.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err = fcn(f.F64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// GetBool calls a bool-getting function and returns the response
// as json {'bool': value}
func GetBool(fcn func() (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := fcn()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		hp := server.HumanPayload{T: types.Bool, Bool: b}
		hp.EncodeAndRespond(w, r)
	}
}

// SetBool parses a JSON input of {'bool': value} and calls enable or
// disable based on it
func SetBool(enable, disable func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := server.BoolT{}
		err := json.NewDecoder(r.Body).Decode(&b)
		defer r.Body.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if b.Bool {
			err = enable()
		} else {
			err = disable()
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// Call wraps a no-argument, no-return method in an HTTP handler
func Call(fcn func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fcn()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
