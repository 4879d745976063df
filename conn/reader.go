package conn

import (
	"errors"
	"io"
	"sync/atomic"
)

// readLoop owns the read half of the socket and the decode pipeline
// exclusively; nothing else ever touches c.adp or c.nc's read side. It
// suspends at the socket read and at the event-channel send, per spec.md
// §5's suspension-point list, and never waits on the writer.
func (c *Connection) readLoop() {
	defer c.wg.Done()
	defer close(c.eventCh)

	c.setState(StateActive)

	buf := make([]byte, 4096)
	for {
		n, err := c.nc.Read(buf)
		if n > 0 {
			atomic.AddUint64(&c.bytesIn, uint64(n))
			events, reply, decErr := c.adp.Decode(buf[:n])
			if decErr != nil {
				c.logger.Printf("conn %d: decode error: %v", c.id, decErr)
				// Protocol errors don't terminate the connection, per
				// spec.md §7: the decoder already reset its own state.
			}
			if len(reply) > 0 {
				// Auto-generated negotiation responses are enqueued to
				// the writer before the triggering event reaches the
				// handler, per spec.md §5's ordering guarantee.
				select {
				case c.writeCh <- writeRequest{data: reply, flush: true}:
				case <-c.closed:
					return
				}
			}
			if len(events) > 0 {
				c.touch()
				atomic.AddUint64(&c.msgsIn, uint64(len(events)))
				for _, ev := range events {
					select {
					case c.eventCh <- ev:
					case <-c.closed:
						return
					}
				}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.logger.Printf("conn %d: read error: %v", c.id, err)
			}
			return
		}
	}
}
