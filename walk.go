package jwalk

// WalkFunc is invoked once per token produced by Walk. name is the raw key
// bytes for a value produced as a member of an object (empty for an array
// element or for the root value). path is the current dotted/bracketed
// path (spec §3); it is a snapshot, safe to retain after the call returns.
// tok describes the token itself; tok.Ptr/tok.Len index into the input
// slice passed to Walk and remain valid only for the duration of the call.
type WalkFunc func(name, path string, tok Token)

// Walk tokenizes input as a single lenient-JSON value and invokes cb once
// per token, in document order, carrying the token's type, byte span, the
// current path, and the current key name (spec §4.1). It returns the
// number of bytes consumed on success.
//
// Walk accepts a superset of JSON: object keys may be bare identifiers as
// well as quoted strings, and number magnitude is unbounded. It does not
// perform schema validation and does not build a DOM — every Token merely
// points back into input.
//
// A key containing '.' or '[' produces an ambiguous path; Walk does not
// escape such keys, so downstream path-based lookups (Scanf, Setf) may
// misbehave on such documents. This is a known, documented limitation, not
// a bug.
func Walk(input []byte, cb WalkFunc) (int, error) {
	return WalkCap(input, DefaultPathBufferCap, cb)
}

// WalkCap behaves like Walk but uses pathBufferCap bytes for the internal
// path buffer instead of DefaultPathBufferCap. Paths longer than the
// capacity are silently truncated (spec §4.1); Walk never fails because of
// this, though truncated paths may alias unrelated nodes.
func WalkCap(input []byte, pathBufferCap int, cb WalkFunc) (int, error) {
	w := &walker{input: input, path: newPathBuf(pathBufferCap), cb: cb}
	if err := w.parseValue(nil); err != nil {
		return 0, err
	}
	w.skipWS()
	return w.pos, nil
}

type walker struct {
	input []byte
	pos   int
	path  *pathBuf
	cb    WalkFunc
}

func (w *walker) peek() (byte, bool) {
	if w.pos >= len(w.input) {
		return 0, false
	}
	return w.input[w.pos], true
}

func (w *walker) skipWS() {
	for w.pos < len(w.input) && isSpace(w.input[w.pos]) {
		w.pos++
	}
}

// emit invokes the callback at the walker's current path. The guard rail
// documented in spec §4.1/§9 suppresses the call if the path currently
// ends in '.': that state exists between pushing a container's separator
// and appending a key, and the check is kept as the mechanism spec.md
// describes rather than relying solely on call-site discipline. An empty
// key ("") appends nothing, so the path still ends in '.' and the scalar
// value of an empty key is not reported to cb.
func (w *walker) emit(name []byte, tok Token) {
	if w.path.endsInDot() {
		return
	}
	w.cb(string(name), w.path.String(), tok)
}

// emitAt invokes the callback using the first n bytes of the path buffer,
// used for container start/end tokens whose reported path is the
// container's own path (without the trailing '.' pushed for its body).
func (w *walker) emitAt(name []byte, n int, tok Token) {
	w.cb(string(name), string(w.path.buf[:n]), tok)
}

func (w *walker) parseValue(name []byte) error {
	w.skipWS()
	c, ok := w.peek()
	if !ok {
		return ErrIncomplete
	}
	switch {
	case c == '{':
		return w.parseObject(name)
	case c == '[':
		return w.parseArray(name)
	case c == '"':
		return w.parseString(name)
	case c == 't':
		return w.parseLiteral(name, "true", True)
	case c == 'f':
		return w.parseLiteral(name, "false", False)
	case c == 'n':
		return w.parseLiteral(name, "null", Null)
	case c == '-' || isDigit(c):
		return w.parseNumber(name)
	default:
		return ErrInvalid
	}
}

func hasPrefixOf(s []byte, lit string) bool {
	if len(s) > len(lit) {
		return false
	}
	for i := range s {
		if s[i] != lit[i] {
			return false
		}
	}
	return true
}

func (w *walker) parseLiteral(name []byte, lit string, typ TokenType) error {
	if w.pos+len(lit) > len(w.input) {
		if hasPrefixOf(w.input[w.pos:], lit) {
			return ErrIncomplete
		}
		return ErrInvalid
	}
	if string(w.input[w.pos:w.pos+len(lit)]) != lit {
		return ErrInvalid
	}
	start := w.pos
	w.pos += len(lit)
	w.emit(name, Token{Type: typ, Ptr: start, Len: len(lit)})
	return nil
}

func (w *walker) parseNumber(name []byte) error {
	start := w.pos
	if c, _ := w.peek(); c == '-' {
		w.pos++
	}
	d0 := w.pos
	for w.pos < len(w.input) && isDigit(w.input[w.pos]) {
		w.pos++
	}
	if w.pos == d0 {
		if w.pos >= len(w.input) {
			return ErrIncomplete
		}
		return ErrInvalid
	}
	if w.pos < len(w.input) && w.input[w.pos] == '.' {
		w.pos++
		d1 := w.pos
		for w.pos < len(w.input) && isDigit(w.input[w.pos]) {
			w.pos++
		}
		if w.pos == d1 {
			if w.pos >= len(w.input) {
				return ErrIncomplete
			}
			return ErrInvalid
		}
	}
	if w.pos < len(w.input) && (w.input[w.pos] == 'e' || w.input[w.pos] == 'E') {
		w.pos++
		if w.pos < len(w.input) && (w.input[w.pos] == '+' || w.input[w.pos] == '-') {
			w.pos++
		}
		d2 := w.pos
		for w.pos < len(w.input) && isDigit(w.input[w.pos]) {
			w.pos++
		}
		if w.pos == d2 {
			if w.pos >= len(w.input) {
				return ErrIncomplete
			}
			return ErrInvalid
		}
	}
	w.emit(name, Token{Type: Number, Ptr: start, Len: w.pos - start})
	return nil
}

// consumeStringSpan assumes w.input[w.pos] == '"' and advances past the
// closing quote, returning the offset and length of the content between
// the quotes (escapes left intact, not decoded).
func (w *walker) consumeStringSpan() (contentStart, contentLen int, err error) {
	w.pos++ // opening quote
	contentStart = w.pos
	for {
		if w.pos >= len(w.input) {
			return 0, 0, ErrIncomplete
		}
		c := w.input[w.pos]
		if c == '"' {
			break
		}
		if c == '\\' {
			n := escapeLen(w.input[w.pos:])
			if n == 0 {
				if w.pos+1 >= len(w.input) {
					return 0, 0, ErrIncomplete
				}
				return 0, 0, ErrInvalid
			}
			w.pos += n
			continue
		}
		if c < 0x20 {
			return 0, 0, ErrInvalid
		}
		if c&0x80 != 0 {
			n := utf8Len(c)
			if n == 0 {
				return 0, 0, ErrInvalid
			}
			if w.pos+n > len(w.input) {
				return 0, 0, ErrIncomplete
			}
			for k := 1; k < n; k++ {
				if w.input[w.pos+k]&0xC0 != 0x80 {
					return 0, 0, ErrInvalid
				}
			}
			w.pos += n
			continue
		}
		w.pos++
	}
	contentLen = w.pos - contentStart
	w.pos++ // closing quote
	return contentStart, contentLen, nil
}

func (w *walker) parseString(name []byte) error {
	cs, cl, err := w.consumeStringSpan()
	if err != nil {
		return err
	}
	w.emit(name, Token{Type: String, Ptr: cs, Len: cl})
	return nil
}

// parseKey parses an object key, either a bareword identifier or a quoted
// string, and returns its raw bytes (for strings, the content between the
// quotes with escapes left intact, not decoded; the identifier bytes
// verbatim otherwise).
func (w *walker) parseKey() ([]byte, error) {
	w.skipWS()
	c, ok := w.peek()
	if !ok {
		return nil, ErrIncomplete
	}
	if c == '"' {
		cs, cl, err := w.consumeStringSpan()
		if err != nil {
			return nil, err
		}
		return w.input[cs : cs+cl], nil
	}
	if isIdentStart(c) {
		start := w.pos
		w.pos++
		for w.pos < len(w.input) && isIdentCont(w.input[w.pos]) {
			w.pos++
		}
		return w.input[start:w.pos], nil
	}
	return nil, ErrInvalid
}

func (w *walker) parseObject(name []byte) error {
	startPtr := w.pos
	w.path.appendByte('.')
	preDotLen := w.path.len() - 1
	w.emitAt(name, preDotLen, Token{Type: ObjectStart, Ptr: -1, Len: 0})

	w.pos++ // consume '{'
	w.skipWS()
	c, ok := w.peek()
	if !ok {
		return ErrIncomplete
	}
	if c != '}' {
		for {
			key, err := w.parseKey()
			if err != nil {
				return err
			}
			w.skipWS()
			c2, ok2 := w.peek()
			if !ok2 {
				return ErrIncomplete
			}
			if c2 != ':' {
				return ErrInvalid
			}
			w.pos++
			w.skipWS()

			preKeyLen := w.path.len()
			w.path.append(key)
			if err := w.parseValue(key); err != nil {
				return err
			}
			w.path.truncate(preKeyLen)

			w.skipWS()
			c3, ok3 := w.peek()
			if !ok3 {
				return ErrIncomplete
			}
			if c3 == ',' {
				w.pos++
				w.skipWS()
				continue
			}
			if c3 == '}' {
				break
			}
			return ErrInvalid
		}
	}

	c4, ok4 := w.peek()
	if !ok4 {
		return ErrIncomplete
	}
	if c4 != '}' {
		return ErrInvalid
	}
	w.pos++
	endPtr := w.pos
	w.path.truncate(preDotLen)
	w.emitAt(name, preDotLen, Token{Type: ObjectEnd, Ptr: startPtr, Len: endPtr - startPtr})
	return nil
}

func (w *walker) parseArray(name []byte) error {
	startPtr := w.pos
	preLen0 := w.path.len()
	w.emitAt(name, preLen0, Token{Type: ArrayStart, Ptr: -1, Len: 0})

	w.pos++ // consume '['
	w.skipWS()
	c, ok := w.peek()
	if !ok {
		return ErrIncomplete
	}
	idx := 0
	if c != ']' {
		for {
			preLen := w.path.len()
			w.path.appendByte('[')
			w.path.appendInt(idx)
			w.path.appendByte(']')
			if err := w.parseValue(nil); err != nil {
				return err
			}
			w.path.truncate(preLen)
			idx++

			w.skipWS()
			c2, ok2 := w.peek()
			if !ok2 {
				return ErrIncomplete
			}
			if c2 == ',' {
				w.pos++
				w.skipWS()
				continue
			}
			if c2 == ']' {
				break
			}
			return ErrInvalid
		}
	}

	c3, ok3 := w.peek()
	if !ok3 {
		return ErrIncomplete
	}
	if c3 != ']' {
		return ErrInvalid
	}
	w.pos++
	endPtr := w.pos
	w.emitAt(name, preLen0, Token{Type: ArrayEnd, Ptr: startPtr, Len: endPtr - startPtr})
	return nil
}
