// Package conn implements the split reader/writer connection of
// spec.md §4.F: each connection's socket halves are owned exclusively by
// one of two background goroutines, so a slow or stalled reader never
// blocks the writer and vice versa. It is the Go-goroutine rendering of
// the split-task architecture described in original_source's
// service/src/connection.rs and examples/split_connection_demo.rs, built
// over the same mutex-plus-atomics idiom MongooseMoo-barn's
// server/connection.go uses for its Connection type.
package conn

import (
	"context"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/huhlig/termionix/protocol"
	"github.com/huhlig/termionix/telnet"
	"github.com/huhlig/termionix/terminal"
)

// State is the connection lifecycle state, per spec.md's Connection layer:
// transitions are one-way toward Closed; Active and Idle alternate freely
// until then.
type State int32

const (
	StateConnecting State = iota
	StateActive
	StateIdle
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateIdle:
		return "idle"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Info is a point-in-time snapshot of a Connection's externally visible
// state, built entirely from atomics so it never races the reader/writer
// goroutines.
type Info struct {
	ID           uint64
	State        State
	RemoteAddr   string
	CreatedAt    time.Time
	LastActivity time.Time
	BytesIn      uint64
	BytesOut     uint64
	MessagesIn   uint64
	MessagesOut  uint64
}

// Config bounds the channels and behavior of a single Connection. Buffer
// sizes double as the backpressure thresholds described in spec.md §5.
type Config struct {
	EventBufferSize   int
	WriteBufferSize   int
	ControlBufferSize int
	Flush             FlushStrategy
	ANSI              protocol.Config
}

// DefaultConfig returns sensible channel sizes and the default flush
// strategy (OnNewline), per spec.md §4.F/§6.
func DefaultConfig() Config {
	return Config{
		EventBufferSize:   64,
		WriteBufferSize:   64,
		ControlBufferSize: 8,
		Flush:             DefaultFlushStrategy,
		ANSI:              protocol.DefaultConfig(),
	}
}

type writeRequest struct {
	data  []byte
	flush bool // true for auto-generated negotiation responses: always sent immediately
}

type controlKind uint8

const (
	ctrlClose controlKind = iota
	ctrlSetFlush
	ctrlSetCompression
)

type controlMsg struct {
	kind        controlKind
	flush       FlushStrategy
	compression string
	done        chan struct{}
}

// Connection is a single split telnet/ANSI/terminal connection: a reader
// goroutine owns the read half and the decode pipeline, a writer goroutine
// owns the write half and the encode pipeline, and this struct is the
// shared, race-free handle both publish their progress to via atomics.
type Connection struct {
	id         uint64
	remoteAddr string
	createdAt  time.Time
	lastActive int64 // unix nanos, atomic
	state      int32 // atomic State
	bytesIn    uint64
	bytesOut   uint64
	msgsIn     uint64
	msgsOut    uint64

	nc  net.Conn
	adp *terminal.Adapter

	eventCh   chan terminal.Event
	writeCh   chan writeRequest
	controlCh chan controlMsg

	logger *log.Logger

	closeOnce sync.Once
	closed    chan struct{}
	wg        sync.WaitGroup

	userData   map[string]any
	userDataMu sync.RWMutex
}

// New builds a Connection over nc, spawns its reader and writer goroutines,
// and returns immediately; the caller reads from Events() and writes via
// Send/Broadcast.
func New(id uint64, nc net.Conn, negotiator *telnet.Negotiator, cfg Config, logger *log.Logger) *Connection {
	if logger == nil {
		logger = log.Default()
	}
	if negotiator != nil {
		negotiator.ConnID = id
	}
	proto := protocol.NewAdapter(negotiator, cfg.ANSI)
	c := &Connection{
		id:         id,
		remoteAddr: nc.RemoteAddr().String(),
		createdAt:  time.Now(),
		nc:         nc,
		adp:        terminal.NewAdapter(proto, nil),
		eventCh:    make(chan terminal.Event, cfg.EventBufferSize),
		writeCh:    make(chan writeRequest, cfg.WriteBufferSize),
		controlCh:  make(chan controlMsg, cfg.ControlBufferSize),
		logger:     logger,
		closed:     make(chan struct{}),
		userData:   make(map[string]any),
	}
	atomic.StoreInt32(&c.state, int32(StateConnecting))
	c.touch()

	c.wg.Add(2)
	go c.readLoop()
	go c.writeLoop(cfg.Flush)
	go func() {
		c.wg.Wait()
		c.nc.Close()
		c.markClosed()
	}()

	return c
}

// ID returns the connection's monotonic identifier.
func (c *Connection) ID() uint64 { return c.id }

// Events returns the channel the reader goroutine publishes decoded
// terminal events to. Closed once the reader exits.
func (c *Connection) Events() <-chan terminal.Event { return c.eventCh }

// Done is closed once both the reader and writer goroutines have exited.
func (c *Connection) Done() <-chan struct{} { return c.closed }

// Info returns a race-free snapshot built from atomics.
func (c *Connection) Info() Info {
	return Info{
		ID:           c.id,
		State:        State(atomic.LoadInt32(&c.state)),
		RemoteAddr:   c.remoteAddr,
		CreatedAt:    c.createdAt,
		LastActivity: time.Unix(0, atomic.LoadInt64(&c.lastActive)),
		BytesIn:      atomic.LoadUint64(&c.bytesIn),
		BytesOut:     atomic.LoadUint64(&c.bytesOut),
		MessagesIn:   atomic.LoadUint64(&c.msgsIn),
		MessagesOut:  atomic.LoadUint64(&c.msgsOut),
	}
}

func (c *Connection) setState(s State) { atomic.StoreInt32(&c.state, int32(s)) }

func (c *Connection) touch() { atomic.StoreInt64(&c.lastActive, time.Now().UnixNano()) }

// MarkActive and MarkIdle let the supervisory worker (package manager)
// drive the Active<->Idle transitions described in spec.md's Connection
// layer; conn itself sets Connecting, Active (when the reader starts) and
// Closed.
func (c *Connection) MarkActive() { c.setState(StateActive) }
func (c *Connection) MarkIdle()   { c.setState(StateIdle) }

// Send forwards a pre-built command to the writer, waiting until it is
// queued, the connection closes, or ctx is done (reported as
// ErrWriteTimeout). It never blocks on anything the reader is doing, per
// the split-connection invariant.
func (c *Connection) Send(ctx context.Context, data []byte) error {
	req := writeRequest{data: data}
	select {
	case c.writeCh <- req:
		return nil
	case <-c.closed:
		return ErrClosed
	case <-ctx.Done():
		return ErrWriteTimeout
	}
}

// SendTimeout is a convenience wrapper around Send using a plain duration.
func (c *Connection) SendTimeout(data []byte, timeout time.Duration) error {
	if timeout <= 0 {
		return c.Send(context.Background(), data)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.Send(ctx, data)
}

// Close requests a graceful shutdown: the writer drains and flushes
// pending output, then both halves of the socket are closed. Idempotent.
func (c *Connection) Close() error {
	done := make(chan struct{})
	select {
	case c.controlCh <- controlMsg{kind: ctrlClose, done: done}:
		<-done
	case <-c.closed:
	}
	return nil
}

// SetFlush changes the writer's auto-flush policy. Observed at the next
// command boundary, per spec.md §4.F.
func (c *Connection) SetFlush(strategy FlushStrategy) {
	select {
	case c.controlCh <- controlMsg{kind: ctrlSetFlush, flush: strategy}:
	case <-c.closed:
	}
}

// SetCompression swaps in a compression wrapper for the write half.
// algo == "" or "none" disables compression; "zlib" (MCCP's wire format)
// is the only compression algorithm recognized. The read half is never
// wrapped.
func (c *Connection) SetCompression(algo string) {
	select {
	case c.controlCh <- controlMsg{kind: ctrlSetCompression, compression: algo}:
	case <-c.closed:
	}
}

// UserData returns the opaque per-connection value stored under key, for
// handler-side state that must not race the reader/writer goroutines.
func (c *Connection) UserData(key string) (any, bool) {
	c.userDataMu.RLock()
	defer c.userDataMu.RUnlock()
	v, ok := c.userData[key]
	return v, ok
}

// SetUserData stores an opaque per-connection value under key.
func (c *Connection) SetUserData(key string, value any) {
	c.userDataMu.Lock()
	defer c.userDataMu.Unlock()
	c.userData[key] = value
}

func (c *Connection) markClosed() {
	c.closeOnce.Do(func() {
		c.setState(StateClosed)
		close(c.closed)
	})
}
