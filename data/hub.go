package data

import "sync"

// Hub is an in-process pub-sub exchange for named datasets.
// It is concurrent safe.  Hubs must be created with NewHub.
type Hub struct {
	mu      sync.Mutex
	streams map[string]*stream
}

type stream struct {
	subs map[*Subscription]struct{}
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{streams: map[string]*stream{}}
}

// Publish delivers rec to every subscriber of dataset.  A subscriber
// that has not consumed the previous record has it replaced; Publish
// never blocks.
func (h *Hub) Publish(dataset string, rec Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	str, ok := h.streams[dataset]
	if !ok {
		return
	}
	for sub := range str.subs {
		sub.deliver(rec)
	}
}

// Subscribe registers interest in a dataset.  The returned
// Subscription must be Closed when no longer needed.
func (h *Hub) Subscribe(dataset string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	str, ok := h.streams[dataset]
	if !ok {
		str = &stream{subs: map[*Subscription]struct{}{}}
		h.streams[dataset] = str
	}
	sub := &Subscription{
		hub:     h,
		dataset: dataset,
		ch:      make(chan Record, 1),
	}
	str.subs[sub] = struct{}{}
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	str, ok := h.streams[sub.dataset]
	if !ok {
		return
	}
	delete(str.subs, sub)
	if len(str.subs) == 0 {
		delete(h.streams, sub.dataset)
	}
}

// Subscription is one consumer's view of a dataset
type Subscription struct {
	hub     *Hub
	dataset string
	ch      chan Record
}

func (s *Subscription) deliver(rec Record) {
	for {
		select {
		case s.ch <- rec:
			return
		default:
			// stale record still queued, replace it
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Pop returns the newest unseen record, if one arrived since the last
// call.  It never blocks.
func (s *Subscription) Pop() (Record, bool) {
	select {
	case rec := <-s.ch:
		return rec, true
	default:
		return Record{}, false
	}
}

// Next exposes the delivery channel for consumers that want to block
// until a record arrives
func (s *Subscription) Next() <-chan Record {
	return s.ch
}

// Close unregisters the subscription from its hub
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}
