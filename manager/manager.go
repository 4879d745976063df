// Package manager implements the connection registry and supervisory
// worker of spec.md §4.G: it accepts TCP connections, spawns a conn.New
// split reader/writer for each, and runs a per-connection worker loop
// that drives Handler callbacks and feeds the registry's broadcast and
// query operations. Grounded on MongooseMoo-barn's
// server/connection.go ConnectionManager (accept loop, id generator,
// registry map) generalized from a single in-process map guarded by one
// mutex to the same shape, plus golang.org/x/sync/errgroup for the
// concurrent broadcast fan-out spec.md calls out explicitly ("collects
// send futures, awaits them concurrently").
package manager

import (
	"context"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/huhlig/termionix/conn"
	"github.com/huhlig/termionix/internal/trace"
	"github.com/huhlig/termionix/telnet"
)

// BroadcastResult reports how a Broadcast/BroadcastWhere fan-out went.
// Invariant (spec.md §8 #7): Total == Succeeded + Failed, and
// len(Errors) == Failed.
type BroadcastResult struct {
	Total     int
	Succeeded int
	Failed    int
	Errors    []error
}

type entry struct {
	conn *conn.Connection
	done chan struct{}
}

// Manager owns the listener, the connection registry, and the next-id
// generator. Its zero value is not usable; build one with New.
type Manager struct {
	cfg     ServerConfig
	handler Handler
	logger  *log.Logger

	// NewNegotiator builds the per-connection Q-method negotiator. Nil
	// defaults to a refuse-everything telnet.NewNegotiator(), through
	// telnet.NewDecoder's own fallback for a nil Negotiator.
	NewNegotiator func() *telnet.Negotiator

	nextID uint64 // atomic

	mu       sync.RWMutex
	entries  map[uint64]*entry
	listener net.Listener

	shuttingDown int32 // atomic bool
	wg           sync.WaitGroup
}

// New builds a Manager. handler receives the lifecycle callbacks for
// every accepted connection.
func New(handler Handler, cfg ServerConfig, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		entries: make(map[uint64]*entry),
	}
}

// Listen starts the TCP listener and spawns the accept loop in the
// background, returning immediately -- the same shape as
// MongooseMoo-barn's ConnectionManager.Listen.
func (m *Manager) Listen() error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", m.cfg.BindAddress)
	if err != nil {
		return err
	}
	m.listener = ln
	m.logger.Printf("manager: listening on %s", m.cfg.BindAddress)
	go m.acceptLoop(ln)
	return nil
}

func (m *Manager) acceptLoop(ln net.Listener) {
	for {
		socket, err := ln.Accept()
		if err != nil {
			if atomic.LoadInt32(&m.shuttingDown) == 1 {
				return
			}
			m.logger.Printf("manager: accept error: %v", err)
			continue
		}
		if m.Count() >= m.cfg.MaxConnections {
			// MaxConnectionsReached: close without further ceremony, per
			// spec.md §7 ("not required to send anything").
			socket.Close()
			continue
		}
		m.addConnection(socket)
	}
}

func (m *Manager) addConnection(socket net.Conn) *conn.Connection {
	id := atomic.AddUint64(&m.nextID, 1)

	var negotiator *telnet.Negotiator
	if m.NewNegotiator != nil {
		negotiator = m.NewNegotiator()
	}

	c := conn.New(id, socket, negotiator, m.cfg.Conn, m.logger)
	if trace.IsEnabled() {
		trace.Connection("NEW", id, socket.RemoteAddr().String(), "")
	}
	e := &entry{conn: c, done: make(chan struct{})}

	m.mu.Lock()
	m.entries[id] = e
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer close(e.done)
		runWorker(c, m.handler, m.cfg.ReadTimeout, m.cfg.IdleTimeout)
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
	}()

	return c
}

// Get returns the connection for id, or ErrConnectionNotFound.
func (m *Manager) Get(id uint64) (*conn.Connection, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrConnectionNotFound
	}
	return e.conn, nil
}

// Count returns the number of currently registered connections.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// ListIDs returns a snapshot of every currently registered connection id.
func (m *Manager) ListIDs() []uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uint64, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	return ids
}

// ListWhere returns the ids of connections whose Info matches pred.
func (m *Manager) ListWhere(pred func(conn.Info) bool) []uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []uint64
	for id, e := range m.entries {
		if pred(e.conn.Info()) {
			ids = append(ids, id)
		}
	}
	return ids
}

// SendTo forwards data to a single connection within the configured
// write timeout.
func (m *Manager) SendTo(id uint64, data []byte) error {
	c, err := m.Get(id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.WriteTimeout)
	defer cancel()
	return c.Send(ctx, data)
}

// Broadcast sends data to every currently registered connection.
func (m *Manager) Broadcast(data []byte) BroadcastResult {
	return m.broadcastWhere(data, nil)
}

// BroadcastWhere sends data only to connections whose Info matches pred.
func (m *Manager) BroadcastWhere(data []byte, pred func(conn.Info) bool) BroadcastResult {
	return m.broadcastWhere(data, pred)
}

func (m *Manager) broadcastWhere(data []byte, pred func(conn.Info) bool) BroadcastResult {
	m.mu.RLock()
	targets := make([]*conn.Connection, 0, len(m.entries))
	for _, e := range m.entries {
		if pred == nil || pred(e.conn.Info()) {
			targets = append(targets, e.conn)
		}
	}
	m.mu.RUnlock()

	var mu sync.Mutex
	var succeeded, failed int
	var errs []error

	var g errgroup.Group
	for _, c := range targets {
		c := c
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), m.cfg.WriteTimeout)
			defer cancel()
			err := c.Send(ctx, data)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				errs = append(errs, err)
			} else {
				succeeded++
			}
			return nil // a single connection's failure never aborts the rest
		})
	}
	g.Wait()

	return BroadcastResult{
		Total:     succeeded + failed,
		Succeeded: succeeded,
		Failed:    failed,
		Errors:    errs,
	}
}

// Shutdown sends Close to every worker and waits up to ShutdownTimeout
// for them to exit before giving up and clearing the registry anyway.
func (m *Manager) Shutdown() {
	atomic.StoreInt32(&m.shuttingDown, 1)
	if m.listener != nil {
		m.listener.Close()
	}

	for _, id := range m.ListIDs() {
		if c, err := m.Get(id); err == nil {
			c.Close()
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(m.cfg.ShutdownTimeout):
		m.logger.Printf("manager: shutdown grace period expired with %d connections still draining", m.Count())
	}

	m.mu.Lock()
	m.entries = make(map[uint64]*entry)
	m.mu.Unlock()
}
