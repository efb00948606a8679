package sweep

import (
	"github.com/spinlab/odmr/data"
	"github.com/spinlab/odmr/gateway"
)

// ODMR connects to the instrument mounted at endpoint on the server at
// gwAddr and to the data relay at dataAddr, runs the sweep described
// by p, and releases both connections on any exit path.
func ODMR(gwAddr, endpoint, dataAddr string, p Params, stop <-chan struct{}) error {
	if err := p.Validate(); err != nil {
		return err
	}
	gw, err := gateway.Dial(gwAddr, endpoint)
	if err != nil {
		return err
	}
	defer gw.Close()
	src, err := data.NewSource(dataAddr, p.Dataset)
	if err != nil {
		return err
	}
	defer src.Close()
	return Run(gw, src, p, stop)
}
