package manager

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/huhlig/termionix/conn"
	"github.com/huhlig/termionix/telnet"
	"github.com/huhlig/termionix/telnet/args"
)

// Dial opens a single outbound connection per ClientConfig, sends the
// initial NAWS and TERMINAL-TYPE subnegotiations, and wires it through
// the same conn.Connection split reader/writer used on the server side.
// AutoReconnect governs DialAndRun, not Dial itself.
func Dial(ctx context.Context, cfg ClientConfig, logger *log.Logger) (*conn.Connection, error) {
	if logger == nil {
		logger = log.Default()
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	dialer := net.Dialer{Timeout: cfg.ConnectTimeout}
	nc, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("manager: dial %s: %w", addr, err)
	}

	if tcpConn, ok := nc.(*net.TCPConn); ok && cfg.Keepalive {
		tcpConn.SetKeepAlive(true)
		tcpConn.SetKeepAlivePeriod(cfg.KeepaliveInterval)
	}

	negotiator := telnet.NewNegotiator()
	c := conn.New(0, nc, negotiator, cfg.Conn, logger)

	var hello []byte
	enc := telnet.NewEncoder()
	hello = enc.Encode(hello, telnet.SubnegotiateFrame(telnet.OptionNAWS,
		args.WindowSize{Columns: cfg.TerminalWidth, Rows: cfg.TerminalHeight}.Encode(nil)))
	hello = enc.Encode(hello, telnet.SubnegotiateFrame(telnet.OptionTerminalType,
		args.NewTerminalTypeIs(cfg.TerminalType).Encode(nil)))

	if err := c.SendTimeout(hello, cfg.ConnectTimeout); err != nil {
		c.Close()
		return nil, fmt.Errorf("manager: sending initial handshake: %w", err)
	}

	return c, nil
}

// DialAndRun dials cfg.Host:cfg.Port, runs a worker loop over the result
// with handler, and, if AutoReconnect is set, redials with ReconnectDelay
// between attempts (up to MaxReconnectAttempt, 0 meaning unlimited) each
// time the connection ends. With AutoReconnect it blocks until ctx is
// cancelled or reconnect attempts are exhausted; without it, it returns
// once the first dial fails or the first connection ends.
func DialAndRun(ctx context.Context, cfg ClientConfig, h Handler, serverCfg ServerConfig, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	attempts := 0
	for {
		c, err := Dial(ctx, cfg, logger)
		if err != nil {
			if !cfg.AutoReconnect {
				return err
			}
			logger.Printf("manager: dial failed: %v", err)
		} else {
			runWorker(c, h, serverCfg.ReadTimeout, serverCfg.IdleTimeout)
		}

		if !cfg.AutoReconnect {
			return nil
		}
		attempts++
		if cfg.MaxReconnectAttempt > 0 && attempts >= cfg.MaxReconnectAttempt {
			return fmt.Errorf("manager: exhausted %d reconnect attempts", attempts)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.ReconnectDelay):
		}
	}
}
