package conn

import (
	"context"
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/huhlig/termionix/terminal"
)

func newTestConnection(t *testing.T) (*Connection, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	c := New(1, server, nil, DefaultConfig(), log.New(io.Discard, "", 0))
	t.Cleanup(func() { c.Close() })
	return c, client
}

func TestConnectionDecodesPlainText(t *testing.T) {
	c, client := newTestConnection(t)
	go client.Write([]byte("hi\n"))

	select {
	case ev := <-c.Events():
		if ev.Kind != terminal.EventCharacterAppended || ev.Char != 'h' {
			t.Fatalf("expected first event to be CharacterAppended('h'), got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestConnectionSendWritesToSocket(t *testing.T) {
	c, client := newTestConnection(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Send(ctx, []byte("hello\n")); err != nil {
		t.Fatalf("send: %v", err)
	}

	buf := make([]byte, 16)
	client.SetReadDeadline(time.Now().Add(time.Second))
	n, err := client.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "hello\n" {
		t.Fatalf("expected %q, got %q", "hello\n", buf[:n])
	}
}

func TestConnectionCloseIsIdempotent(t *testing.T) {
	c, _ := newTestConnection(t)
	c.Close()
	c.Close()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("connection never reached Done() after Close")
	}
}

func TestConnectionInfoSnapshot(t *testing.T) {
	c, _ := newTestConnection(t)
	info := c.Info()
	if info.ID != 1 {
		t.Fatalf("expected id 1, got %d", info.ID)
	}
	if info.RemoteAddr == "" {
		t.Fatal("expected a non-empty remote address")
	}
}
