package data

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/gorilla/websocket"
)

const dialTimeout = 5 * time.Second

// Relay serves a Hub over websockets so sources and sinks in other
// processes can reach it
type Relay struct {
	hub *Hub
	up  websocket.Upgrader
}

// NewRelay creates a Relay on top of hub
func NewRelay(hub *Hub) *Relay {
	return &Relay{
		hub: hub,
		up: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 65536,
		},
	}
}

// Bind registers the relay's routes on r
func (rl *Relay) Bind(r chi.Router) {
	r.Get("/{dataset}/source", rl.handleSource)
	r.Get("/{dataset}/sink", rl.handleSink)
}

// handleSource reads records pushed by a source client and publishes
// them to the hub
func (rl *Relay) handleSource(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")
	conn, err := rl.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	log.Printf("source connected to dataset %s", dataset)
	for {
		var rec Record
		if err := conn.ReadJSON(&rec); err != nil {
			log.Printf("source for dataset %s disconnected: %v", dataset, err)
			return
		}
		rl.hub.Publish(dataset, rec)
	}
}

// handleSink subscribes to the hub and forwards each record to the
// sink client
func (rl *Relay) handleSink(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")
	conn, err := rl.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	sub := rl.hub.Subscribe(dataset)
	defer sub.Close()
	log.Printf("sink connected to dataset %s", dataset)

	// drain the read side so we notice the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case rec := <-sub.Next():
			if err := conn.WriteJSON(rec); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

// Source is the push side of a dataset channel, connected to a relay
type Source struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewSource connects to the relay at addr (host:port) and opens the
// named dataset for publishing
func NewSource(addr, dataset string) (*Source, error) {
	conn, err := dial(addr, dataset, "source")
	if err != nil {
		return nil, err
	}
	return &Source{conn: conn}, nil
}

// Push publishes a record to the dataset
func (s *Source) Push(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(rec)
}

// Close tears down the connection to the relay
func (s *Source) Close() error {
	return s.conn.Close()
}

// Sink is the subscribe side of a dataset channel.  After a Pop that
// returns true, the Record fields hold the newest published snapshot.
type Sink struct {
	// Record is the last popped snapshot
	Record

	conn *websocket.Conn

	mu     sync.Mutex
	latest Record
	fresh  bool
	err    error
}

// NewSink connects to the relay at addr (host:port) and subscribes to
// the named dataset
func NewSink(addr, dataset string) (*Sink, error) {
	conn, err := dial(addr, dataset, "sink")
	if err != nil {
		return nil, err
	}
	s := &Sink{conn: conn}
	go s.readLoop()
	return s, nil
}

func (s *Sink) readLoop() {
	for {
		var rec Record
		if err := s.conn.ReadJSON(&rec); err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		}
		s.mu.Lock()
		s.latest = rec
		s.fresh = true
		s.mu.Unlock()
	}
}

// Pop reports whether new data arrived since the last call, copying it
// into the Record fields if so.  It never blocks.
func (s *Sink) Pop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fresh {
		return false
	}
	s.Record = s.latest
	s.fresh = false
	return true
}

// Err returns the error that stopped the sink's read loop, if any
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears down the connection to the relay
func (s *Sink) Close() error {
	return s.conn.Close()
}

func dial(addr, dataset, role string) (*websocket.Conn, error) {
	u := fmt.Sprintf("ws://%s/data/%s/%s", addr, dataset, role)
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(u, nil)
	if err != nil {
		return nil, fmt.Errorf("could not connect to data relay at %s: %w", u, err)
	}
	return conn, nil
}
