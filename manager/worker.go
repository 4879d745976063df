package manager

import (
	"time"

	"github.com/huhlig/termionix/conn"
	"github.com/huhlig/termionix/internal/trace"
	"github.com/huhlig/termionix/terminal"
)

// Handler receives the lifecycle callbacks spec.md §7 guarantees: exactly
// one OnConnect, zero or more OnEvent, at most one of
// {OnTimeout, OnIdleTimeout, OnError}, then exactly one OnDisconnect --
// even on abnormal termination.
type Handler interface {
	OnConnect(c *conn.Connection)
	OnEvent(c *conn.Connection, ev terminal.Event)
	OnTimeout(c *conn.Connection)
	OnIdleTimeout(c *conn.Connection)
	OnError(c *conn.Connection, err error)
	OnDisconnect(c *conn.Connection)
}

// idleMark is the duration of inactivity after which a connection is
// considered Idle but not yet timed out, per spec.md §4.G.
const idleMark = 60 * time.Second

// runWorker is the per-connection supervisory loop of spec.md §4.G: it
// selects across the next reader event, a read-timeout timer, and a
// periodic idle-state tick, invoking exactly the handler callbacks the
// lifecycle contract promises.
func runWorker(c *conn.Connection, h Handler, readTimeout, idleTimeout time.Duration) {
	if trace.IsEnabled() {
		trace.Connection("CONNECT", c.ID(), c.Info().RemoteAddr, "")
	}
	h.OnConnect(c)
	defer func() {
		if trace.IsEnabled() {
			trace.Connection("DISCONNECT", c.ID(), c.Info().RemoteAddr, "")
		}
		h.OnDisconnect(c)
	}()

	readTimer := time.NewTimer(readTimeout)
	defer readTimer.Stop()
	idleTicker := time.NewTicker(idleMark / 2)
	defer idleTicker.Stop()

	for {
		select {
		case ev, ok := <-c.Events():
			if !ok {
				return
			}
			if !readTimer.Stop() {
				drainTimer(readTimer)
			}
			readTimer.Reset(readTimeout)
			c.MarkActive()
			h.OnEvent(c, ev)

		case <-readTimer.C:
			if trace.IsEnabled() {
				trace.Connection("READ_TIMEOUT", c.ID(), c.Info().RemoteAddr, "")
			}
			h.OnTimeout(c)
			c.Close()
			return

		case <-idleTicker.C:
			idle := time.Since(c.Info().LastActivity)
			switch {
			case idle >= idleTimeout:
				if trace.IsEnabled() {
					trace.Connection("IDLE_TIMEOUT", c.ID(), c.Info().RemoteAddr, "")
				}
				h.OnIdleTimeout(c)
				c.Close()
				return
			case idle >= idleMark:
				c.MarkIdle()
			}

		case <-c.Done():
			return
		}
	}
}

func drainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}
