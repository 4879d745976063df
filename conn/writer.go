package conn

import (
	"bufio"
	"compress/zlib"
	"io"
	"sync/atomic"
)

// writeLoop owns the write half of the socket exclusively. It suspends
// awaiting a write request, a control message, and the write-ready signal
// (the underlying bufio flush), per spec.md §5, and never waits on the
// reader.
func (c *Connection) writeLoop(strategy FlushStrategy) {
	defer c.wg.Done()

	var out io.Writer = c.nc
	var compressor *zlib.Writer
	bw := bufio.NewWriter(out)
	var pending int

	flush := func() error {
		if compressor != nil {
			if err := compressor.Flush(); err != nil {
				return err
			}
		}
		err := bw.Flush()
		pending = 0
		return err
	}

	write := func(data []byte) error {
		if len(data) == 0 {
			return nil
		}
		n, err := bw.Write(data)
		pending += n
		atomic.AddUint64(&c.bytesOut, uint64(n))
		return err
	}

	closing := false
	for {
		select {
		case req := <-c.writeCh:
			if err := write(req.data); err != nil {
				c.logger.Printf("conn %d: write error: %v", c.id, err)
				return
			}
			atomic.AddUint64(&c.msgsOut, 1)
			if req.flush || strategy.shouldFlush(req.data, pending) {
				if err := flush(); err != nil {
					c.logger.Printf("conn %d: flush error: %v", c.id, err)
					return
				}
			}
			if closing && len(c.writeCh) == 0 {
				return
			}

		case msg := <-c.controlCh:
			switch msg.kind {
			case ctrlClose:
				flush()
				closing = true
				if msg.done != nil {
					close(msg.done)
				}
				if len(c.writeCh) == 0 {
					return
				}

			case ctrlSetFlush:
				strategy = msg.flush

			case ctrlSetCompression:
				flush()
				switch msg.compression {
				case "", "none":
					compressor = nil
					out = c.nc
				case "zlib":
					compressor = zlib.NewWriter(c.nc)
					out = compressor
				default:
					c.logger.Printf("conn %d: unknown compression algorithm %q", c.id, msg.compression)
					continue
				}
				bw = bufio.NewWriter(out)
			}
		}
	}
}
