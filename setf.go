package jwalk

import (
	"bytes"
	"fmt"
	"strconv"
)

// Setf produces a modified copy of input, written to out, in which the
// value at jsonPath is inserted, replaced, or deleted (spec §4.4). format
// == nil denotes deletion; otherwise format and args are rendered by
// Printf to produce the replacement value. Per spec §4.4, Setf returns true
// only if a replacement or deletion span already existed at jsonPath —
// false both when a path was synthesized (jsonPath didn't exist, so there
// was no pre-existing span to report as changed) and when a deletion
// target was absent, even though output legitimately differs from input
// in the synthesis case (spec §8 scenario 1: setf("{}", ".bar", "456")
// returns 0, not 1, despite producing {"bar":456}).
//
// jsonPath uses the syntax Walk produces: a leading '.' for a top-level
// object member (".foo.bar"), with '[' n ']' for array indices
// (".a[0].b"). Missing intermediate objects/arrays are synthesized.
func Setf(input []byte, out Sink, jsonPath string, format *string, args ...interface{}) (bool, error) {
	return VSetf(input, out, jsonPath, format, args)
}

// VSetf is Setf taking an explicit argument slice instead of variadic
// arguments, mirroring the original's vsetf.
func VSetf(input []byte, out Sink, jsonPath string, format *string, args []interface{}) (bool, error) {
	accs, err := parseSetfPath(jsonPath)
	if err != nil {
		return false, err
	}
	pos, end, prev, matchedAccessors, found := locatePath(input, accs)

	if format == nil {
		return setfDelete(input, out, pos, end, prev, found)
	}
	return setfReplace(input, out, accs, pos, end, prev, matchedAccessors, found, *format, args)
}

// DeleteAt is a convenience wrapper for VSetf(input, out, jsonPath, nil,
// nil) — deletion without constructing a nil *string by hand.
func DeleteAt(input []byte, out Sink, jsonPath string) (bool, error) {
	return VSetf(input, out, jsonPath, nil, nil)
}

func setfDelete(input []byte, out Sink, pos, end, prev int, found bool) (bool, error) {
	if !found {
		if _, err := out.Write(input); err != nil {
			return false, err
		}
		return false, nil
	}
	delStart := prev
	delEnd := end
	if delStart > 0 && (input[delStart-1] == '{' || input[delStart-1] == '[') {
		j := wsSkip(input, delEnd)
		if j < len(input) && input[j] == ',' {
			j++
		}
		delEnd = j
	}
	if _, err := out.Write(input[:delStart]); err != nil {
		return true, err
	}
	if _, err := out.Write(input[delEnd:]); err != nil {
		return true, err
	}
	return true, nil
}

func setfReplace(input []byte, out Sink, accs []pathAccessor, pos, end, prev, matchedAccessors int, found bool, format string, args []interface{}) (bool, error) {
	if found {
		if _, err := out.Write(input[:pos]); err != nil {
			return true, err
		}
		if _, err := VPrintf(out, format, args); err != nil {
			return true, err
		}
		if _, err := out.Write(input[end:]); err != nil {
			return true, err
		}
		return true, nil
	}

	// Insertion: the splice point is prev (spec §4.4's "pin pos = end =
	// prev" rule); pos and end are not used on this path. Missing
	// containers for every accessor from matchedAccessors onward must be
	// synthesized.
	if _, err := out.Write(input[:prev]); err != nil {
		return false, err
	}
	if prev > 0 && input[prev-1] != '{' && input[prev-1] != '[' {
		if _, err := out.Write([]byte{','}); err != nil {
			return false, err
		}
	}

	pending := accs[matchedAccessors:]
	var closers []byte
	for i, acc := range pending {
		if acc.kind == accKey {
			if _, err := out.Write([]byte{'"'}); err != nil {
				return false, err
			}
			if _, err := out.Write(Escape(nil, []byte(acc.name))); err != nil {
				return false, err
			}
			if _, err := out.Write([]byte{'"', ':'}); err != nil {
				return false, err
			}
		}
		if i == len(pending)-1 {
			if _, err := VPrintf(out, format, args); err != nil {
				return false, err
			}
			break
		}
		switch pending[i+1].kind {
		case accKey:
			if _, err := out.Write([]byte{'{'}); err != nil {
				return false, err
			}
			closers = append(closers, '}')
		case accIndex:
			if _, err := out.Write([]byte{'['}); err != nil {
				return false, err
			}
			closers = append(closers, ']')
		}
	}
	for i := len(closers) - 1; i >= 0; i-- {
		if _, err := out.Write(closers[i : i+1]); err != nil {
			return false, err
		}
	}
	if _, err := out.Write(input[prev:]); err != nil {
		return false, err
	}
	// No pre-existing span: spec §4.4 reports this as unchanged even though
	// the synthesized member does alter out's bytes.
	return false, nil
}

// --- path accessor parsing ---

type accessorKind int

const (
	accKey accessorKind = iota
	accIndex
)

type pathAccessor struct {
	kind accessorKind
	name string // for accKey
	idx  int    // for accIndex
}

func parseSetfPath(path string) ([]pathAccessor, error) {
	var accs []pathAccessor
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			i++
			start := i
			for i < len(path) && path[i] != '.' && path[i] != '[' {
				i++
			}
			if i == start {
				return nil, fmt.Errorf("%w: empty key segment in path %q", ErrInvalid, path)
			}
			accs = append(accs, pathAccessor{kind: accKey, name: path[start:i]})
		case '[':
			i++
			start := i
			for i < len(path) && path[i] != ']' {
				i++
			}
			if i >= len(path) {
				return nil, fmt.Errorf("%w: unterminated index in path %q", ErrInvalid, path)
			}
			n, err := strconv.Atoi(path[start:i])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad array index in path %q", ErrInvalid, path)
			}
			i++ // consume ']'
			accs = append(accs, pathAccessor{kind: accIndex, idx: n})
		default:
			return nil, fmt.Errorf("%w: path %q must start with '.' or '['", ErrInvalid, path)
		}
	}
	return accs, nil
}

// --- window finder, adapted from lukechampine-jj's rewritePath/locateAccessor ---

// locatePath walks down input following accs, generalizing jj's single
// dot-separated-accessor walk into one that also tracks prev (the splice
// point used for both insertion and deletion) and matchedAccessors (how
// many leading accessors were fully resolved), per spec §4.4.
//
// Unlike spec.md's literal byte-level "matched" bookkeeping (tracked by a
// generic walker callback), this implementation tracks matching at
// accessor granularity, driven by its own dedicated container scan
// (findObjectKey / findArrayIndex) rather than the public Walk callback.
// The two produce identical splice points for every case spec §8 names;
// see DESIGN.md for the reasoning.
func locatePath(input []byte, accs []pathAccessor) (pos, end, prev, matchedAccessors int, found bool) {
	if len(accs) == 0 {
		return 0, len(input), 0, 0, true
	}
	offset := wsSkip(input, 0)
	for idx, acc := range accs {
		if offset >= len(input) {
			return 0, 0, offset, idx, false
		}
		var vStart, vEnd, p int
		var ok bool
		switch acc.kind {
		case accKey:
			if input[offset] != '{' {
				return 0, 0, offset, idx, false
			}
			vStart, vEnd, p, ok = findObjectKey(input, offset, acc.name)
		case accIndex:
			if input[offset] != '[' {
				return 0, 0, offset, idx, false
			}
			vStart, vEnd, p, ok = findArrayIndex(input, offset, acc.idx)
		}
		if !ok {
			return 0, 0, p, idx, false
		}
		if idx == len(accs)-1 {
			return vStart, vEnd, p, idx + 1, true
		}
		offset = wsSkip(input, vStart)
	}
	return 0, 0, offset, len(accs), false
}

// findObjectKey scans the object starting at input[objOffset] ('{') for
// key. It returns the matched value's span when found. prev is the offset
// of the byte just past the field preceding the search's stopping point —
// the end of the previous sibling, or objOffset+1 for the first field —
// returned whether or not key was found: it anchors both the insertion
// splice point (not found) and the deletion start point (found, spec §8
// scenarios 3 and 4).
func findObjectKey(input []byte, objOffset int, key string) (valStart, valEnd, prev int, found bool) {
	pos := objOffset + 1 // consume '{'
	prev = pos
	pos = wsSkip(input, pos)
	for pos < len(input) && input[pos] != '}' {
		var k string
		if input[pos] == '"' {
			ve := stringSpanEnd(input, pos)
			if ve <= pos+1 {
				break
			}
			k = string(Unescape(nil, input[pos+1:ve-1]))
			pos = ve
		} else if isIdentStart(input[pos]) {
			start := pos
			for pos < len(input) && isIdentCont(input[pos]) {
				pos++
			}
			k = string(input[start:pos])
		} else {
			break
		}
		pos = wsSkip(input, pos)
		if pos >= len(input) || input[pos] != ':' {
			break
		}
		pos++
		pos = wsSkip(input, pos)
		vStart := pos
		vEnd := valueEnd(input, pos)
		if k == key {
			return vStart, vEnd, prev, true
		}
		pos = vEnd
		prev = vEnd
		pos = wsSkip(input, pos)
		if pos < len(input) && input[pos] == ',' {
			pos++
			pos = wsSkip(input, pos)
		}
	}
	return 0, 0, prev, false
}

// findArrayIndex scans the array starting at input[arrOffset] ('[') for
// its idx'th element, with the same prev contract as findObjectKey.
func findArrayIndex(input []byte, arrOffset int, idx int) (valStart, valEnd, prev int, found bool) {
	pos := arrOffset + 1 // consume '['
	prev = pos
	pos = wsSkip(input, pos)
	n := 0
	for pos < len(input) && input[pos] != ']' {
		vStart := pos
		vEnd := valueEnd(input, pos)
		if n == idx {
			return vStart, vEnd, prev, true
		}
		pos = vEnd
		prev = vEnd
		n++
		pos = wsSkip(input, pos)
		if pos < len(input) && input[pos] == ',' {
			pos++
			pos = wsSkip(input, pos)
		}
	}
	return 0, 0, prev, false
}

func wsSkip(input []byte, pos int) int {
	for pos < len(input) && isSpace(input[pos]) {
		pos++
	}
	return pos
}

func stringSpanEnd(input []byte, pos int) int {
	rem := swString(input[pos:])
	return len(input) - len(rem)
}

func valueEnd(input []byte, pos int) int {
	rem := swValue(input[pos:])
	return len(input) - len(rem)
}

// --- byte-slice value-skipping helpers, adapted from lukechampine-jj's
// consumeValue/consumeObject/consumeArray/consumeString/consumeNumber ---

func swValue(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	switch b[0] {
	case '{':
		return swObject(b)
	case '[':
		return swArray(b)
	case '"':
		return swString(b)
	case 't', 'n':
		if len(b) >= 4 {
			return b[4:]
		}
		return b[len(b):]
	case 'f':
		if len(b) >= 5 {
			return b[5:]
		}
		return b[len(b):]
	default:
		return swNumber(b)
	}
}

func swObject(b []byte) []byte {
	b = b[1:] // consume '{'
	n := 1
	for n > 0 && len(b) > 0 {
		idx := bytes.IndexAny(b, `{}"`)
		if idx == -1 {
			return b[len(b):]
		}
		b = b[idx:]
		switch b[0] {
		case '{':
			n++
			b = b[1:]
		case '}':
			n--
			b = b[1:]
		case '"':
			b = swString(b)
		}
	}
	return b
}

func swArray(b []byte) []byte {
	b = b[1:] // consume '['
	n := 1
	for n > 0 && len(b) > 0 {
		idx := bytes.IndexAny(b, `[]"`)
		if idx == -1 {
			return b[len(b):]
		}
		b = b[idx:]
		switch b[0] {
		case '[':
			n++
			b = b[1:]
		case ']':
			n--
			b = b[1:]
		case '"':
			b = swString(b)
		}
	}
	return b
}

// swString skips a quoted string, accounting for escaped backslashes so
// that a sequence like \\" (an escaped backslash followed by the closing
// quote) isn't mistaken for an escaped quote.
func swString(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	i := 1
	for {
		rel := bytes.IndexByte(b[i:], '"')
		if rel == -1 {
			return b[len(b):]
		}
		i += rel
		backslashes := 0
		for k := i - 1; k >= 0 && b[k] == '\\'; k-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			break
		}
		i++
	}
	return b[i+1:]
}

func swNumber(b []byte) []byte {
	i := 0
	if i < len(b) && b[i] == '-' {
		i++
	}
	for i < len(b) && isDigit(b[i]) {
		i++
	}
	if i < len(b) && b[i] == '.' {
		i++
		for i < len(b) && isDigit(b[i]) {
			i++
		}
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		for i < len(b) && isDigit(b[i]) {
			i++
		}
	}
	return b[i:]
}
