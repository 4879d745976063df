// Command termionixd runs a termionix telnet/ANSI server that echoes
// completed lines back to the connection they arrived on.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/huhlig/termionix/conn"
	"github.com/huhlig/termionix/internal/trace"
	"github.com/huhlig/termionix/manager"
	"github.com/huhlig/termionix/terminal"
)

func main() {
	bindAddr := flag.String("listen", "127.0.0.1:2323", "address to listen on")
	maxConns := flag.Int("max-conns", 1000, "maximum concurrent connections")
	idleTimeout := flag.Duration("idle-timeout", 300*time.Second, "idle disconnect timeout")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "per-read inactivity timeout")
	writeTimeout := flag.Duration("write-timeout", 10*time.Second, "per-write timeout")
	shutdownTimeout := flag.Duration("shutdown-timeout", 30*time.Second, "grace period for draining connections on shutdown")

	traceEnabled := flag.Bool("trace", false, "enable execution tracing")
	traceFilter := flag.String("trace-filter", "", "trace filter pattern (glob, comma-separated, e.g. 'negotiation,NEW')")

	flag.Parse()

	if *traceEnabled {
		var filters []string
		if *traceFilter != "" {
			filters = strings.Split(*traceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.Init(true, filters, os.Stderr)
		log.Printf("termionixd: tracing enabled (filters: %v)", filters)
	} else {
		trace.Init(false, nil, nil)
	}

	cfg := manager.DefaultServerConfig()
	cfg.BindAddress = *bindAddr
	cfg.MaxConnections = *maxConns
	cfg.IdleTimeout = *idleTimeout
	cfg.ReadTimeout = *readTimeout
	cfg.WriteTimeout = *writeTimeout
	cfg.ShutdownTimeout = *shutdownTimeout

	m := manager.New(&echoHandler{}, cfg, log.Default())
	if err := m.Listen(); err != nil {
		log.Fatalf("termionixd: %v", err)
	}
	log.Printf("termionixd: listening on %s", *bindAddr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Printf("termionixd: shutting down")
	m.Shutdown()
}

// echoHandler implements manager.Handler by echoing each completed line
// back to the connection it arrived on.
type echoHandler struct{}

func (h *echoHandler) OnConnect(c *conn.Connection) {
	log.Printf("conn %d: connected from %s", c.ID(), c.Info().RemoteAddr)
}

func (h *echoHandler) OnEvent(c *conn.Connection, ev terminal.Event) {
	if ev.Kind != terminal.EventLineCompleted {
		return
	}
	line := make([]byte, 0, len(ev.Line)+2)
	for _, sc := range ev.Line {
		line = append(line, string(sc.Char)...)
	}
	line = append(line, '\r', '\n')
	if err := c.SendTimeout(line, 5*time.Second); err != nil {
		h.OnError(c, err)
	}
}

func (h *echoHandler) OnTimeout(c *conn.Connection) {
	log.Printf("conn %d: read timed out", c.ID())
}

func (h *echoHandler) OnIdleTimeout(c *conn.Connection) {
	log.Printf("conn %d: idle timed out", c.ID())
}

func (h *echoHandler) OnError(c *conn.Connection, err error) {
	log.Printf("conn %d: error: %v", c.ID(), err)
}

func (h *echoHandler) OnDisconnect(c *conn.Connection) {
	log.Printf("conn %d: disconnected", c.ID())
}
