package jwalk

import (
	"fmt"
	"strconv"
	"strings"
)

// ScanFunc is the %M scanf placeholder's argument type: a callback invoked
// with the matched token, the original input buffer (so the callback can
// slice tok's span itself), and an opaque user value carried alongside it.
type ScanFunc func(tok Token, input []byte, user interface{}) error

// Scanf extracts typed values from input by walking it once per
// placeholder in format, matching each placeholder against the path built
// from format's `{`/`}`/key lexemes (spec §4.2). It returns the number of
// successful conversions.
func Scanf(input []byte, format string, args ...interface{}) (int, error) {
	return VScanf(input, format, args)
}

// VScanf is Scanf taking an explicit argument slice instead of variadic
// arguments, mirroring the original's vscanf.
func VScanf(input []byte, format string, args []interface{}) (int, error) {
	st := &scanState{input: input, format: format, args: &Args{vals: args}, cursor: newPathBuf(DefaultPathBufferCap)}
	err := st.run()
	return st.count, err
}

// ScanfArrayElem fetches the token at path + "[" + idx + "]" directly,
// without a format string — the single-element convenience entry point
// named in spec §6. Unlike NextKey/NextElem (where running out of
// siblings is a normal iteration outcome), a caller asking for one
// specific index is asking for a specific path, so an absent one is
// reported as ErrPathNotFound, the same way minio-simdjson-go's FindPath
// does for its own single-path lookup.
func ScanfArrayElem(input []byte, path string, idx int, tok *Token) (bool, error) {
	full := path + "[" + strconv.Itoa(idx) + "]"
	var found Token
	var ok bool
	_, err := Walk(input, func(name, p string, t Token) {
		if ok {
			return
		}
		if p == full {
			found = t
			ok = true
		}
	})
	if ok {
		*tok = found
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, fmt.Errorf("%w: %s", ErrPathNotFound, full)
}

type scanState struct {
	input  []byte
	format string
	i      int
	args   *Args
	cursor *pathBuf
	count  int
}

func (st *scanState) run() error {
	for st.i < len(st.format) {
		c := st.format[st.i]
		switch {
		case c == '{':
			st.cursor.appendByte('.')
			st.i++
		case c == '}':
			st.cursor.popToLastDot()
			st.i++
		case c == '%':
			st.i++
			if err := st.placeholder(); err != nil {
				return err
			}
		case c == ':' || c == ',' || isSpace(c) || c == '[' || c == ']':
			st.i++
		case isIdentStart(c):
			start := st.i
			st.i++
			for st.i < len(st.format) && isIdentCont(st.format[st.i]) {
				st.i++
			}
			st.cursor.truncateAfterLastDot()
			st.cursor.append([]byte(st.format[start:st.i]))
		default:
			st.i++
		}
	}
	return nil
}

// findToken drives one Walk pass over the input, looking for the token
// whose path exactly matches the current cursor (spec §4.2: "matches on
// exact strcmp(token.path, cursor) == 0"). Container-start tokens carry no
// span and are skipped, so a container value matches its end token. A
// malformed document further along does not invalidate a match found
// before the error.
func (st *scanState) findToken(path string) (Token, bool) {
	var found Token
	var ok bool
	Walk(st.input, func(name, p string, tok Token) {
		if ok || tok.Ptr == -1 {
			return
		}
		if p == path {
			found = tok
			ok = true
		}
	})
	return found, ok
}

func (st *scanState) placeholder() error {
	if st.i >= len(st.format) {
		return fmt.Errorf("%w: dangling %% at end of scanf format", ErrInvalid)
	}
	verb := st.format[st.i]
	switch verb {
	case 'B':
		st.i++
		return st.convertBool()
	case 'Q':
		st.i++
		return st.convertQ()
	case 'T':
		st.i++
		return st.convertToken()
	case 'M':
		st.i++
		return st.convertM()
	case 'H':
		st.i++
		return st.convertH()
	case 'V':
		st.i++
		return st.convertV()
	default:
		return st.convertFallback()
	}
}

func (st *scanState) convertBool() error {
	v, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing target for %%B", ErrInvalid)
	}
	tok, found := st.findToken(st.cursor.String())
	if !found || (tok.Type != True && tok.Type != False) {
		return nil
	}
	truth := tok.Type == True
	switch target := v.(type) {
	case *bool:
		*target = truth
	case *int:
		if truth {
			*target = 1
		} else {
			*target = 0
		}
	default:
		return fmt.Errorf("%w: %%B target must be *bool or *int", ErrInvalid)
	}
	st.count++
	return nil
}

func (st *scanState) convertQ() error {
	v, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing target for %%Q", ErrInvalid)
	}
	target, ok := v.(**string)
	if !ok {
		return fmt.Errorf("%w: %%Q target must be **string", ErrInvalid)
	}
	tok, found := st.findToken(st.cursor.String())
	if !found {
		return nil
	}
	if tok.Type == Null {
		*target = nil
		st.count++
		return nil
	}
	if tok.Type != String {
		return nil
	}
	raw := tok.Raw(st.input)
	s := string(Unescape(make([]byte, 0, len(raw)), raw))
	*target = &s
	st.count++
	return nil
}

func (st *scanState) convertToken() error {
	v, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing target for %%T", ErrInvalid)
	}
	target, ok := v.(*Token)
	if !ok {
		return fmt.Errorf("%w: %%T target must be *Token", ErrInvalid)
	}
	tok, found := st.findToken(st.cursor.String())
	if !found {
		return nil
	}
	*target = tok
	st.count++
	return nil
}

func (st *scanState) convertM() error {
	fv, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing function for %%M", ErrInvalid)
	}
	fn, ok := fv.(ScanFunc)
	if !ok {
		return fmt.Errorf("%w: %%M target must be a ScanFunc", ErrInvalid)
	}
	uv, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing user argument for %%M", ErrInvalid)
	}
	tok, found := st.findToken(st.cursor.String())
	if !found {
		return nil
	}
	if err := fn(tok, st.input, uv); err != nil {
		return nil
	}
	st.count++
	return nil
}

func (st *scanState) convertH() error {
	lv, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing length target for %%H", ErrInvalid)
	}
	lenTarget, ok := lv.(*int)
	if !ok {
		return fmt.Errorf("%w: %%H length target must be *int", ErrInvalid)
	}
	bv, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing bytes target for %%H", ErrInvalid)
	}
	bytesTarget, ok := bv.(*[]byte)
	if !ok {
		return fmt.Errorf("%w: %%H bytes target must be *[]byte", ErrInvalid)
	}
	tok, found := st.findToken(st.cursor.String())
	if !found || tok.Type != String {
		return nil
	}
	decoded, err := decodeHexString(tok.Raw(st.input))
	if err != nil {
		*bytesTarget = nil
		return nil
	}
	*bytesTarget = decoded
	*lenTarget = len(decoded)
	st.count++
	return nil
}

func (st *scanState) convertV() error {
	bv, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing bytes target for %%V", ErrInvalid)
	}
	bytesTarget, ok := bv.(*[]byte)
	if !ok {
		return fmt.Errorf("%w: %%V bytes target must be *[]byte", ErrInvalid)
	}
	lv, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing length target for %%V", ErrInvalid)
	}
	lenTarget, ok := lv.(*int)
	if !ok {
		return fmt.Errorf("%w: %%V length target must be *int", ErrInvalid)
	}
	tok, found := st.findToken(st.cursor.String())
	if !found || tok.Type != String {
		return nil
	}
	decoded, err := decodeBase64(tok.Raw(st.input))
	if err != nil {
		*bytesTarget = nil
		return nil
	}
	*bytesTarget = decoded
	*lenTarget = len(decoded)
	st.count++
	return nil
}

// parseScanSpec scans past a conversion spec's flags, width, precision,
// and length modifier, returning the specifier byte. Unlike printf's
// fallback, scanf has no use for '*' width/precision indirection — the
// value to scan is already isolated to the matched token's span — so only
// the final specifier letter matters.
func (st *scanState) parseScanSpec() (byte, error) {
	i := st.i
	for i < len(st.format) && isFlagByte(st.format[i]) {
		i++
	}
	for i < len(st.format) && isDigit(st.format[i]) {
		i++
	}
	if i < len(st.format) && st.format[i] == '.' {
		i++
		for i < len(st.format) && isDigit(st.format[i]) {
			i++
		}
	}
	for _, lm := range printfLengthMods {
		if strings.HasPrefix(st.format[i:], lm) {
			i += len(lm)
			break
		}
	}
	if i >= len(st.format) {
		return 0, fmt.Errorf("%w: truncated scanf conversion spec", ErrInvalid)
	}
	verb := st.format[i]
	i++
	st.i = i
	return verb, nil
}

// convertFallback handles every verb besides B/Q/T/M/H/V: it copies the
// matched token's raw bytes and delegates to the host string/numeric
// parser (here, fmt.Sscanf) using the captured specifier, per spec §4.2's
// "other" row.
func (st *scanState) convertFallback() error {
	verb, err := st.parseScanSpec()
	if err != nil {
		return err
	}
	v, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing argument for %%%c", ErrInvalid, verb)
	}
	tok, found := st.findToken(st.cursor.String())
	if !found {
		return nil
	}
	raw := string(tok.Raw(st.input))

	if verb == 's' {
		if sp, ok := v.(*string); ok {
			*sp = raw
			st.count++
			return nil
		}
	}

	goVerb := verb
	if verb == 'u' || verb == 'i' {
		goVerb = 'd'
	}
	n, serr := fmt.Sscanf(raw, "%"+string(goVerb), v)
	if serr != nil || n == 0 {
		return nil
	}
	st.count++
	return nil
}
