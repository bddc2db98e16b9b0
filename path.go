package jwalk

// DefaultPathBufferCap is the default capacity, in bytes, of the path
// buffer Walk maintains while tokenizing. It is configurable per spec §3
// ("suggested 256 bytes, configurable"); pass a different capacity to
// WalkCap.
const DefaultPathBufferCap = 256

// pathBuf is the mutable, bounded path buffer described in spec §3. It
// supports pushing and truncating path segments as the walker descends and
// ascends the document tree. Overflow is silently truncated: bytes past
// capacity are dropped, and the logical length never exceeds the capacity.
//
// Keys are inserted verbatim, with no escaping. A key containing '.' or '['
// produces an ambiguous path — this is a documented limitation inherited
// from the original design (see DESIGN.md's Open Question notes), not a
// bug to be fixed with new escape syntax.
type pathBuf struct {
	buf []byte
}

func newPathBuf(capacity int) *pathBuf {
	if capacity <= 0 {
		capacity = DefaultPathBufferCap
	}
	return &pathBuf{buf: make([]byte, 0, capacity)}
}

// len returns the current logical length of the path.
func (p *pathBuf) len() int {
	return len(p.buf)
}

// truncate resets the path to its first n bytes. n must be <= p.len().
func (p *pathBuf) truncate(n int) {
	p.buf = p.buf[:n]
}

// append appends s to the path, silently truncating at capacity.
func (p *pathBuf) append(s []byte) {
	room := cap(p.buf) - len(p.buf)
	if room <= 0 {
		return
	}
	if room < len(s) {
		s = s[:room]
	}
	p.buf = append(p.buf, s...)
}

// appendByte appends a single byte, silently dropping it if the buffer is
// already at capacity.
func (p *pathBuf) appendByte(c byte) {
	if len(p.buf) >= cap(p.buf) {
		return
	}
	p.buf = append(p.buf, c)
}

// appendInt appends the decimal representation of n, silently truncating
// at capacity.
func (p *pathBuf) appendInt(n int) {
	var tmp [20]byte
	i := len(tmp)
	neg := n < 0
	if neg {
		n = -n
	}
	if n == 0 {
		i--
		tmp[i] = '0'
	}
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		tmp[i] = '-'
	}
	p.append(tmp[i:])
}

// String returns the current path as a string. The returned string is a
// snapshot — subsequent mutation of p does not affect it.
func (p *pathBuf) String() string {
	return string(p.buf)
}

// lastDotIndex returns the index of the last '.' in the path, or -1.
func (p *pathBuf) lastDotIndex() int {
	for i := len(p.buf) - 1; i >= 0; i-- {
		if p.buf[i] == '.' {
			return i
		}
	}
	return -1
}

// popToLastDot truncates the path at and including its last '.', the
// behavior scanf's '}' lexeme uses to pop a level off the cursor.
func (p *pathBuf) popToLastDot() {
	if idx := p.lastDotIndex(); idx >= 0 {
		p.buf = p.buf[:idx]
	}
}

// truncateAfterLastDot truncates the path to just past its last '.'
// (dropping any sibling segment that follows), the behavior scanf uses
// before appending a new key so that successive keys at the same depth
// replace one another instead of accumulating.
func (p *pathBuf) truncateAfterLastDot() {
	if idx := p.lastDotIndex(); idx >= 0 {
		p.buf = p.buf[:idx+1]
	} else {
		p.buf = p.buf[:0]
	}
}

// endsInDot reports whether the path currently ends with '.', the guard
// rail spec §4.1 uses to suppress the phantom callback that would otherwise
// fire between pushing '.' for a new object and appending its first key.
func (p *pathBuf) endsInDot() bool {
	return len(p.buf) > 0 && p.buf[len(p.buf)-1] == '.'
}
