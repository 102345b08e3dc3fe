package xenon

import (
	"io"
	"sort"
)

// tailSize bounds how far back byteAt can see. It must exceed the
// decoder's internal read-ahead so that bytes near the most recent
// token boundary are always still in the ring.
const tailSize = 8192

// sourceBridge adapts a caller-owned stream to what the reading
// engine needs. It accounts for every byte handed to the engine:
// the absolute offset, the offset of every newline (for line/column
// queries), and a ring of the most recent bytes (so the engine
// adapter can inspect the input around a token boundary). The bridge
// never closes the underlying stream; its lifetime belongs to the
// caller.
type sourceBridge struct {
	src      io.Reader
	offset   int64
	newlines []int64
	tail     [tailSize]byte
}

func newSourceBridge(src io.Reader) *sourceBridge {
	return &sourceBridge{src: src}
}

func (b *sourceBridge) Read(p []byte) (int, error) {
	n, err := b.src.Read(p)
	if n > 0 {
		base := b.offset
		for i, c := range p[:n] {
			if c == '\n' {
				b.newlines = append(b.newlines, base+int64(i))
			}
			b.tail[(base+int64(i))%tailSize] = c
		}
		b.offset += int64(n)
	}
	if err != nil {
		return n, err
	}
	if n == 0 && len(p) > 0 {
		// A stream with nothing to deliver and no error to report
		// is exhausted. The engines have no notion of "no bytes
		// available right now, try again".
		return 0, io.EOF
	}
	return n, nil
}

// position reports the 1-based line and column of the byte at the
// absolute offset off.
func (b *sourceBridge) position(off int64) (int, int) {
	if off < 0 {
		return 0, 0
	}
	n := sort.Search(len(b.newlines), func(i int) bool {
		return b.newlines[i] >= off
	})
	var lineStart int64
	if n > 0 {
		lineStart = b.newlines[n-1] + 1
	}
	return n + 1, int(off-lineStart) + 1
}

// byteAt returns the byte that was delivered at absolute offset off,
// if it is still within the ring.
func (b *sourceBridge) byteAt(off int64) (byte, bool) {
	if off < 0 || off >= b.offset || off < b.offset-tailSize {
		return 0, false
	}
	return b.tail[off%tailSize], true
}

// sinkBridge adapts a caller-owned destination for the writing
// engine, enforcing the full-write contract: a short write without
// an error is reported as io.ErrShortWrite. The bridge never closes
// the underlying stream.
type sinkBridge struct {
	dst io.Writer
}

func newSinkBridge(dst io.Writer) *sinkBridge {
	return &sinkBridge{dst: dst}
}

func (b *sinkBridge) Write(p []byte) (int, error) {
	n, err := b.dst.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}
