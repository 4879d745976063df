package manager

import (
	"errors"
	"time"

	"github.com/huhlig/termionix/conn"
)

// ServerConfig bounds a listening Manager's behavior, per spec.md §6.
type ServerConfig struct {
	BindAddress       string
	MaxConnections    int
	IdleTimeout       time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
	EnableCompression bool
	Conn              conn.Config
}

// DefaultServerConfig matches spec.md §6's documented defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		BindAddress:     "127.0.0.1:23",
		MaxConnections:  1000,
		IdleTimeout:     300 * time.Second,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		Conn:            conn.DefaultConfig(),
	}
}

// Validate rejects a zero duration or zero MaxConnections, per spec.md §6.
func (c ServerConfig) Validate() error {
	if c.MaxConnections == 0 {
		return errors.New("manager: MaxConnections must be non-zero")
	}
	for name, d := range map[string]time.Duration{
		"IdleTimeout":     c.IdleTimeout,
		"ReadTimeout":     c.ReadTimeout,
		"WriteTimeout":    c.WriteTimeout,
		"ShutdownTimeout": c.ShutdownTimeout,
	} {
		if d == 0 {
			return errors.New("manager: " + name + " must be non-zero")
		}
	}
	return nil
}

// ClientConfig bounds an outbound dial, per spec.md §6's client additions.
type ClientConfig struct {
	Host                string
	Port                int
	ConnectTimeout      time.Duration
	AutoReconnect       bool
	ReconnectDelay      time.Duration
	MaxReconnectAttempt int // 0 means unlimited
	TerminalType        string
	TerminalWidth       uint16
	TerminalHeight      uint16
	BufferSize          int
	Keepalive           bool
	KeepaliveInterval   time.Duration
	Conn                conn.Config
}

// DefaultClientConfig fills in reasonable defaults for the fields spec.md
// §6 leaves unspecified.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Port:              23,
		ConnectTimeout:    10 * time.Second,
		ReconnectDelay:    5 * time.Second,
		TerminalType:      "termionix",
		TerminalWidth:     80,
		TerminalHeight:    24,
		BufferSize:        4096,
		KeepaliveInterval: 30 * time.Second,
		Conn:              conn.DefaultConfig(),
	}
}
