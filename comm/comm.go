/*Package comm provides embeddable types for communication with lab hardware.

Most usages of this package will boil down to:
	1.  embed *RemoteDevice in a type that represents your hardware.
	2.  pass the termination bytes for your device's protocol to
		NewRemoteDevice, or nil for the default of carriage returns
	3.  write any methods you see fit based on this low-level
		communication implementation

A minimal example for a temperature sensor that responds to "RD?" with
the current temperature, assuming the default terminators are OK:

	import "strconv"

	type MySensor struct {
		*comm.RemoteDevice
	}

	func (ms *MySensor) ReadTemp() (float64, error) {
		err := ms.Open()
		if err != nil {
			return 0, err
		}
		defer ms.CloseEventually()
		resp, err := ms.SendRecv([]byte("RD?"))
		if err != nil {
			return 0, err
		}
		return strconv.ParseFloat(string(resp), 64)
	}
*/
package comm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/tarm/serial"
)

var (
	// ErrNoSerialConf is generated when IsSerial is true but no serial config was given
	ErrNoSerialConf = errors.New("device is serial but no serial.Config was provided")

	// ErrNotConnected is generated when .Conn is nil and Send or Recv is called.
	ErrNotConnected = errors.New("conn is nil, not connected to remote")

	// ErrTerminatorNotFound is generated when the termination byte is not found in a response
	ErrTerminatorNotFound = errors.New("termination byte not found")
)

// Terminators holds the Rx and Tx termination bytes for a device protocol
type Terminators struct {
	Rx byte
	Tx byte
}

/*RemoteDevice has an address and holds a connection to hardware over
TCP or a serial line.

The connection is opened lazily and torn down by CloseEventually unless
KeepAlive is set; devices that dislike connection thrashing can set it
and call Close themselves.
*/
type RemoteDevice struct {
	Addr     string
	IsSerial bool

	// Timeout is the connect/read/write deadline for TCP connections
	Timeout time.Duration

	// KeepAlive makes CloseEventually a no-op
	KeepAlive bool

	Conn io.ReadWriteCloser

	terms  Terminators
	serCfg *serial.Config
}

// NewRemoteDevice creates a new RemoteDevice instance.  terms may be
// nil, in which case carriage returns are used both ways.  serCfg may
// be nil for TCP devices.
func NewRemoteDevice(addr string, isSerial bool, terms *Terminators, serCfg *serial.Config) RemoteDevice {
	if terms == nil {
		terms = &Terminators{Rx: '\r', Tx: '\r'}
	}
	return RemoteDevice{
		Addr:     addr,
		IsSerial: isSerial,
		Timeout:  3 * time.Second,
		terms:    *terms,
		serCfg:   serCfg}
}

// Open the connection, setting the Conn variable
func (rd *RemoteDevice) Open() error {
	if rd.Conn != nil {
		return nil
	}
	// we use an exponential backoff, some sources do not
	// like being connection thrashed
	wasTimeout := false
	op := func() error {
		err := rd.open()
		if err != nil {
			errS := strings.ToLower(err.Error())
			if strings.Contains(errS, "refused") {
				return err
			}
			wasTimeout = true
			return nil
		}
		return nil
	}

	// backoff will cease on a timeout so we don't wait
	// forever, so we need to check for err != nil && !wasTimeout
	err := backoff.Retry(op, &backoff.ExponentialBackOff{
		InitialInterval:     25 * time.Millisecond,
		RandomizationFactor: 0.,
		Multiplier:          2.,
		MaxInterval:         1 * time.Second,
		MaxElapsedTime:      3 * time.Second,
		Clock:               backoff.SystemClock})
	if err == nil && !wasTimeout {
		return nil
	}
	if wasTimeout {
		return fmt.Errorf("connection timeout to %s", rd.Addr)
	}
	return err
}

func (rd *RemoteDevice) open() error {
	var (
		conn io.ReadWriteCloser
		err  error
	)
	if rd.IsSerial {
		if rd.serCfg == nil {
			return ErrNoSerialConf
		}
		conn, err = serial.OpenPort(rd.serCfg)
	} else {
		conn, err = TCPSetup(rd.Addr, rd.Timeout)
	}
	if err != nil {
		return err
	}
	rd.Conn = conn
	return nil
}

// Close the connection, nil-ing the Conn variable
func (rd *RemoteDevice) Close() error {
	if rd.Conn == nil {
		return nil
	}
	err := rd.Conn.Close()
	if err == nil {
		rd.Conn = nil
	}
	return err
}

// CloseEventually closes the connection unless KeepAlive is set
func (rd *RemoteDevice) CloseEventually() error {
	if rd.KeepAlive {
		return nil
	}
	return rd.Close()
}

// TxTerminator returns the transmission termination byte
func (rd *RemoteDevice) TxTerminator() byte {
	return rd.terms.Tx
}

// RxTerminator returns the receipt termination byte
func (rd *RemoteDevice) RxTerminator() byte {
	return rd.terms.Rx
}

// Send writes data to the remote after appending the Tx terminator
func (rd *RemoteDevice) Send(b []byte) error {
	if rd.Conn == nil {
		return ErrNotConnected
	}
	b = append(b, rd.TxTerminator())
	_, err := rd.Conn.Write(b)
	return err
}

// Recv recieves data from the remote and strips the Rx terminator
func (rd *RemoteDevice) Recv() ([]byte, error) {
	if rd.Conn == nil {
		return nil, ErrNotConnected
	}
	term := rd.RxTerminator()
	buf, err := bufio.NewReader(rd.Conn).ReadBytes(term)
	if err != nil {
		return []byte{}, err
	}
	if bytes.HasSuffix(buf, []byte{term}) {
		idx := bytes.IndexByte(buf, term)
		return buf[:idx], nil
	}
	return buf, ErrTerminatorNotFound
}

// SendRecv sends a buffer after appending the Tx terminator,
// then returns the response with the Rx terminator stripped
func (rd *RemoteDevice) SendRecv(b []byte) ([]byte, error) {
	if rd.Conn == nil {
		return []byte{}, ErrNotConnected
	}
	err := rd.Send(b)
	if err != nil {
		return []byte{}, err
	}
	return rd.Recv()
}

// TCPSetup opens a new TCP connection and sets a timeout on connect, read, and write
func TCPSetup(addr string, timeout time.Duration) (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(timeout)
	conn.SetReadDeadline(deadline)
	conn.SetWriteDeadline(deadline)
	return conn, nil
}
