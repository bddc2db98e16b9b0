package jwalk

import "os"

// A Sink is a write-only output abstraction with two variants: a bounded
// in-memory buffer with a NUL-terminated tail, and a file handle. Write
// reports n, the number of bytes that would have been written, even when
// the underlying buffer truncates — this lets a caller two-pass a document
// (probe the size, then allocate and render it) the same way the original
// buffer sink does.
type Sink interface {
	Write(p []byte) (n int, err error)
}

// BufSink is a Sink backed by a caller-owned, fixed-capacity buffer. Writes
// past capacity are silently truncated; Buf[min(Len, cap-1)] is always 0
// after a call to Write, so the buffer can be treated as a NUL-terminated
// C string at any point.
type BufSink struct {
	Buf []byte // capacity fixed at construction
	Len int    // logical length, may exceed len(Buf)
}

// NewBufSink constructs a BufSink wrapping buf. The capacity of buf is fixed
// for the life of the sink.
func NewBufSink(buf []byte) *BufSink {
	s := &BufSink{Buf: buf}
	if len(buf) > 0 {
		buf[0] = 0
	}
	return s
}

// Write appends p to the sink, truncating at capacity. It always reports
// len(p), the would-have-been length, regardless of how much was actually
// copied.
func (s *BufSink) Write(p []byte) (int, error) {
	cap := len(s.Buf)
	if cap > 0 {
		avail := cap - 1 - s.Len // leave room for the NUL terminator
		if avail > 0 {
			n := len(p)
			if n > avail {
				n = avail
			}
			copy(s.Buf[s.Len:], p[:n])
		}
		if s.Len < cap {
			term := s.Len + len(p)
			if term > cap-1 {
				term = cap - 1
			}
			if term < 0 {
				term = 0
			}
			s.Buf[term] = 0
		}
	}
	s.Len += len(p)
	return len(p), nil
}

// String returns the NUL-terminated prefix of the buffer as a Go string,
// i.e. the bytes actually retained (as opposed to Len, the would-have-been
// length).
func (s *BufSink) String() string {
	if len(s.Buf) == 0 {
		return ""
	}
	n := s.Len
	if n > len(s.Buf)-1 {
		n = len(s.Buf) - 1
	}
	if n < 0 {
		n = 0
	}
	return string(s.Buf[:n])
}

// FileSink is a Sink backed by an *os.File.
type FileSink struct {
	F *os.File
}

// NewFileSink constructs a FileSink wrapping f.
func NewFileSink(f *os.File) *FileSink {
	return &FileSink{F: f}
}

// Write writes p to the underlying file.
func (s *FileSink) Write(p []byte) (int, error) {
	return s.F.Write(p)
}

// growSink is an unbounded, heap-backed Sink that keeps every byte written
// to it. The emitter's host-formatter fallback does not use it: fmt.Sprintf
// already allocates a result of whatever size the conversion needs.
type growSink struct {
	buf []byte
}

func (s *growSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}
