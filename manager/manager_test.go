package manager

import (
	"io"
	"log"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/huhlig/termionix/conn"
	"github.com/huhlig/termionix/terminal"
)

type countingHandler struct {
	mu          sync.Mutex
	connects    int
	disconnects int
	events      int
}

func (h *countingHandler) OnConnect(c *conn.Connection) {
	h.mu.Lock()
	h.connects++
	h.mu.Unlock()
}
func (h *countingHandler) OnEvent(c *conn.Connection, ev terminal.Event) {
	h.mu.Lock()
	h.events++
	h.mu.Unlock()
}
func (h *countingHandler) OnTimeout(c *conn.Connection)     {}
func (h *countingHandler) OnIdleTimeout(c *conn.Connection) {}
func (h *countingHandler) OnError(c *conn.Connection, err error) {}
func (h *countingHandler) OnDisconnect(c *conn.Connection) {
	h.mu.Lock()
	h.disconnects++
	h.mu.Unlock()
}

func (h *countingHandler) snapshot() (connects, disconnects, events int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connects, h.disconnects, h.events
}

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newTestManager(t *testing.T, h Handler) (*Manager, string) {
	t.Helper()
	cfg := DefaultServerConfig()
	cfg.BindAddress = "127.0.0.1:0"
	m := New(h, cfg, testLogger())
	if err := m.Listen(); err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(m.Shutdown)
	return m, m.listener.Addr().String()
}

func TestManagerAcceptsAndRunsWorker(t *testing.T) {
	h := &countingHandler{}
	_, addr := newTestManager(t, h)

	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	c.Write([]byte("hi\n"))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if connects, _, events := h.snapshot(); connects == 1 && events > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("handler never observed a connect + event")
}

func TestManagerConnectionIDsAreMonotonic(t *testing.T) {
	h := &countingHandler{}
	m, addr := newTestManager(t, h)

	var lastID uint64
	for i := 0; i < 5; i++ {
		c, err := net.Dial("tcp", addr)
		if err != nil {
			t.Fatalf("dial %d: %v", i, err)
		}
		defer c.Close()
		time.Sleep(10 * time.Millisecond)

		ids := m.ListIDs()
		for _, id := range ids {
			if id > lastID {
				lastID = id
			}
		}
	}
	if lastID < 5 {
		t.Fatalf("expected at least 5 monotonically assigned ids, saw max %d", lastID)
	}
}

func TestBroadcastResultInvariant(t *testing.T) {
	h := &countingHandler{}
	m, addr := newTestManager(t, h)

	var clients []net.Conn
	for i := 0; i < 5; i++ {
		c, err := net.Dial("tcp", addr)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		clients = append(clients, c)
	}
	defer func() {
		for _, c := range clients {
			c.Close()
		}
	}()

	time.Sleep(50 * time.Millisecond)
	result := m.Broadcast([]byte("hello\n"))

	if result.Total != result.Succeeded+result.Failed {
		t.Fatalf("Total %d != Succeeded %d + Failed %d", result.Total, result.Succeeded, result.Failed)
	}
	if len(result.Errors) != result.Failed {
		t.Fatalf("len(Errors) %d != Failed %d", len(result.Errors), result.Failed)
	}
	if result.Total != 5 {
		t.Fatalf("expected 5 targets, got %d", result.Total)
	}
}

func TestManagerShutdownClearsRegistry(t *testing.T) {
	h := &countingHandler{}
	m, addr := newTestManager(t, h)

	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()
	time.Sleep(20 * time.Millisecond)

	m.Shutdown()
	if m.Count() != 0 {
		t.Fatalf("expected empty registry after shutdown, got %d", m.Count())
	}
}
