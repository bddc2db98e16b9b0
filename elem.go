package jwalk

import "strconv"

// NextKey returns the key immediately following afterKey in the object at
// path (or the first key, if afterKey == ""), layered on top of Walk per
// spec §4.5. Each call is an independent O(N) pass over input — it does
// not retain a cursor between calls, matching the original's stateless
// "find the next sibling by name" contract.
func NextKey(input []byte, path string, afterKey string) (string, bool, error) {
	var prevWasTarget bool
	var result string
	var found bool
	wantAfter := afterKey != ""

	_, err := Walk(input, func(name, p string, tok Token) {
		if found {
			return
		}
		if tok.Type == ObjectEnd || tok.Type == ArrayEnd {
			return
		}
		if !isDirectChildOf(p, path) {
			return
		}
		key := lastPathSegment(p)
		if !wantAfter {
			result, found = key, true
			return
		}
		if prevWasTarget {
			result, found = key, true
			return
		}
		if key == afterKey {
			prevWasTarget = true
		}
	})
	if found {
		return result, true, nil
	}
	return "", false, err
}

// NextElem returns the index immediately following afterIdx in the array
// at path (or 0, if afterIdx < 0), the array-analogue of NextKey from spec
// §4.5. It reports ok == false once the array is exhausted.
func NextElem(input []byte, path string, afterIdx int) (int, bool, error) {
	var found bool
	var result int
	want := afterIdx + 1
	if afterIdx < 0 {
		want = 0
	}

	_, err := Walk(input, func(name, p string, tok Token) {
		if found {
			return
		}
		if tok.Type == ObjectEnd || tok.Type == ArrayEnd {
			return
		}
		if !isDirectChildOf(p, path) {
			return
		}
		idx, ok := lastPathIndex(p)
		if !ok {
			return
		}
		if idx == want {
			result, found = idx, true
		}
	})
	if found {
		return result, true, nil
	}
	return 0, false, err
}

// isDirectChildOf reports whether p is a direct .key or [idx] child of
// parent (which may be "" for the document root) — i.e. rest has exactly
// one segment, with no further '.' or '[' nesting inside it.
func isDirectChildOf(p, parent string) bool {
	if len(p) <= len(parent) || p[:len(parent)] != parent {
		return false
	}
	rest := p[len(parent):]
	switch rest[0] {
	case '.':
		key := rest[1:]
		if key == "" {
			return false
		}
		for i := 0; i < len(key); i++ {
			if key[i] == '.' || key[i] == '[' {
				return false
			}
		}
		return true
	case '[':
		if rest[len(rest)-1] != ']' {
			return false
		}
		body := rest[1 : len(rest)-1]
		if body == "" {
			return false
		}
		for i := 0; i < len(body); i++ {
			if body[i] == '.' || body[i] == '[' || body[i] == ']' {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func lastPathSegment(p string) string {
	i := len(p) - 1
	for i >= 0 && p[i] != '.' {
		i--
	}
	return p[i+1:]
}

func lastPathIndex(p string) (int, bool) {
	if len(p) == 0 || p[len(p)-1] != ']' {
		return 0, false
	}
	i := len(p) - 2
	for i >= 0 && p[i] != '[' {
		i--
	}
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(p[i+1 : len(p)-1])
	if err != nil {
		return 0, false
	}
	return n, true
}
