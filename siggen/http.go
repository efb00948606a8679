package siggen

import (
	"github.com/spinlab/odmr/generichttp"
	"github.com/spinlab/odmr/generichttp/tmc"
)

// HTTPWrapper provides HTTP bindings on top of the underlying Go interface
type HTTPWrapper struct {
	// SigGen is the underlying device that is wrapped
	*SigGen

	// RouteTable maps routes to http handlers
	RouteTable generichttp.RouteTable
}

// NewHTTPWrapper returns a new HTTP wrapper with the route table pre-configured
func NewHTTPWrapper(sg *SigGen) HTTPWrapper {
	w := HTTPWrapper{SigGen: sg}
	rt := generichttp.RouteTable{}
	tmc.HTTPSignalGenerator(sg, rt)
	tmc.HTTPPhotonCounter(sg, rt)
	w.RouteTable = rt
	return w
}

// RT satisfies generichttp.HTTPer
func (h HTTPWrapper) RT() generichttp.RouteTable {
	return h.RouteTable
}
