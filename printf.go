package jwalk

import (
	"fmt"
	"os"
	"strings"
)

// Args is a cursor over a Printf/Scanf-style variadic argument list. It is
// handed to an %M (emitter/converter) placeholder so that placeholder can
// consume additional arguments itself, mirroring the C original's
// "function pointer consumes further varargs" contract.
type Args struct {
	vals []interface{}
	i    int
}

// Next returns the next unconsumed argument, or ok == false if the list is
// exhausted.
func (a *Args) Next() (interface{}, bool) {
	if a == nil || a.i >= len(a.vals) {
		return nil, false
	}
	v := a.vals[a.i]
	a.i++
	return v, true
}

// Emitter is the %M placeholder's argument type: a function that emits
// directly to out, optionally consuming further arguments from args.
type Emitter func(out Sink, args *Args) (int, error)

// Printf renders format to out, interleaving literal JSON punctuation,
// quoted barewords, and placeholder-directed argument consumption (spec
// §4.3). It returns the number of bytes written.
func Printf(out Sink, format string, args ...interface{}) (int, error) {
	return VPrintf(out, format, args)
}

// VPrintf is Printf taking an explicit argument slice instead of variadic
// arguments, mirroring the original's vprintf.
func VPrintf(out Sink, format string, args []interface{}) (int, error) {
	st := &printfState{out: out, format: format, args: &Args{vals: args}}
	err := st.run()
	return st.total, err
}

// Fprintf renders format to the file at path, appends a trailing newline,
// and closes the file. It returns the number of bytes written, including
// the newline.
func Fprintf(path string, format string, args ...interface{}) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := VPrintf(NewFileSink(f), format, args)
	if err != nil {
		return n, err
	}
	if _, err := f.Write([]byte{'\n'}); err != nil {
		return n, err
	}
	return n + 1, nil
}

// PrintfArray emits values as a JSON array to out, rendering each element
// with Printf(out, elemFmt, element). This is the idiomatic re-expression
// of the C signature (char* arr, size_t arr_size, size_t elem_size, char*
// elem_fmt) described in spec §6 — a Go slice already carries its own
// element count and stride, so only the per-element format remains.
func PrintfArray(out Sink, values []interface{}, elemFmt string) (int, error) {
	total := 0
	n, err := out.Write([]byte{'['})
	total += n
	if err != nil {
		return total, err
	}
	for idx, v := range values {
		if idx > 0 {
			n, err = out.Write([]byte{','})
			total += n
			if err != nil {
				return total, err
			}
		}
		n, err = Printf(out, elemFmt, v)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = out.Write([]byte{']'})
	total += n
	return total, err
}

type printfState struct {
	out    Sink
	format string
	i      int
	args   *Args
	total  int
}

func (st *printfState) write(p []byte) error {
	n, err := st.out.Write(p)
	st.total += n
	return err
}

func (st *printfState) run() error {
	for st.i < len(st.format) {
		c := st.format[st.i]
		if c == '%' {
			st.i++
			if err := st.placeholder(); err != nil {
				return err
			}
			continue
		}
		if isIdentStart(c) {
			start := st.i
			st.i++
			for st.i < len(st.format) && isIdentCont(st.format[st.i]) {
				st.i++
			}
			if err := st.write([]byte{'"'}); err != nil {
				return err
			}
			if err := st.write([]byte(st.format[start:st.i])); err != nil {
				return err
			}
			if err := st.write([]byte{'"'}); err != nil {
				return err
			}
			continue
		}
		// Punctuation (": , \s \t \r \n [ ] { } \"") and anything else not
		// otherwise classified is copied through verbatim: the format
		// string is author-controlled, so we don't reject bytes spec.md's
		// punctuation set happens not to enumerate.
		if err := st.write([]byte{c}); err != nil {
			return err
		}
		st.i++
	}
	return nil
}

func (st *printfState) placeholder() error {
	if st.i >= len(st.format) {
		return fmt.Errorf("%w: dangling %% at end of format", ErrInvalid)
	}
	if strings.HasPrefix(st.format[st.i:], ".*Q") {
		st.i += 3
		nv, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing length for %%.*Q", ErrInvalid)
		}
		n, _ := nv.(int)
		pv, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing string for %%.*Q", ErrInvalid)
		}
		var b []byte
		switch p := pv.(type) {
		case string:
			b = []byte(p)
		case []byte:
			b = p
		}
		if n < 0 || n > len(b) {
			n = len(b)
		}
		return st.emitQString(b[:n])
	}

	verb := st.format[st.i]
	switch verb {
	case 'M':
		st.i++
		fv, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing function for %%M", ErrInvalid)
		}
		fn, ok := fv.(Emitter)
		if !ok {
			return fmt.Errorf("%w: %%M argument is not an Emitter", ErrInvalid)
		}
		n, err := fn(st.out, st.args)
		st.total += n
		return err
	case 'B':
		st.i++
		v, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing value for %%B", ErrInvalid)
		}
		if truthy(v) {
			return st.write([]byte("true"))
		}
		return st.write([]byte("false"))
	case 'H':
		st.i++
		nv, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing length for %%H", ErrInvalid)
		}
		n, _ := nv.(int)
		pv, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing bytes for %%H", ErrInvalid)
		}
		p, _ := pv.([]byte)
		if n < 0 || n > len(p) {
			n = len(p)
		}
		if err := st.write([]byte{'"'}); err != nil {
			return err
		}
		if err := st.write([]byte(encodeHex(p[:n]))); err != nil {
			return err
		}
		return st.write([]byte{'"'})
	case 'V':
		st.i++
		pv, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing bytes for %%V", ErrInvalid)
		}
		p, _ := pv.([]byte)
		nv, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing length for %%V", ErrInvalid)
		}
		n, _ := nv.(int)
		if n < 0 || n > len(p) {
			n = len(p)
		}
		if err := st.write([]byte{'"'}); err != nil {
			return err
		}
		if err := st.write([]byte(encodeBase64(p[:n]))); err != nil {
			return err
		}
		return st.write([]byte{'"'})
	case 'Q':
		st.i++
		v, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing value for %%Q", ErrInvalid)
		}
		switch s := v.(type) {
		case nil:
			return st.write([]byte("null"))
		case string:
			return st.emitQString([]byte(s))
		case []byte:
			if s == nil {
				return st.write([]byte("null"))
			}
			return st.emitQString(s)
		case *string:
			if s == nil {
				return st.write([]byte("null"))
			}
			return st.emitQString([]byte(*s))
		default:
			return fmt.Errorf("%w: unsupported %%Q argument type", ErrInvalid)
		}
	default:
		return st.fallback()
	}
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	default:
		return false
	}
}

func (st *printfState) emitQString(b []byte) error {
	if err := st.write([]byte{'"'}); err != nil {
		return err
	}
	esc := Escape(make([]byte, 0, len(b)+4), b)
	if err := st.write(esc); err != nil {
		return err
	}
	return st.write([]byte{'"'})
}

func isFlagByte(c byte) bool {
	return c == '-' || c == '+' || c == '0' || c == ' ' || c == '#'
}

var printfLengthMods = []string{"I64", "I32", "hh", "ll", "h", "l", "L", "z", "j", "t"}

// fallback parses a full host-formatter conversion spec (flags, width,
// precision including '*', length modifier, specifier) and delegates to
// fmt.Sprintf, which — like the C host formatter this stands in for —
// natively supports '*' width/precision indirection (spec §4.3). Length
// modifiers (hh, ll, I32, I64, ...) exist in C to size a vararg read; Go's
// interface{} args are already typed, so the modifier is parsed only to be
// skipped.
func (st *printfState) fallback() error {
	i := st.i
	for i < len(st.format) && isFlagByte(st.format[i]) {
		i++
	}
	flags := st.format[st.i:i]

	widthStar := false
	var widthDigits string
	if i < len(st.format) && st.format[i] == '*' {
		widthStar = true
		i++
	} else {
		j := i
		for i < len(st.format) && isDigit(st.format[i]) {
			i++
		}
		widthDigits = st.format[j:i]
	}

	hasPrec := false
	precStar := false
	var precDigits string
	if i < len(st.format) && st.format[i] == '.' {
		hasPrec = true
		i++
		if i < len(st.format) && st.format[i] == '*' {
			precStar = true
			i++
		} else {
			j := i
			for i < len(st.format) && isDigit(st.format[i]) {
				i++
			}
			precDigits = st.format[j:i]
		}
	}

	for _, lm := range printfLengthMods {
		if strings.HasPrefix(st.format[i:], lm) {
			i += len(lm)
			break
		}
	}

	if i >= len(st.format) {
		return fmt.Errorf("%w: truncated conversion spec", ErrInvalid)
	}
	verb := st.format[i]
	i++
	st.i = i

	if verb == '%' {
		return st.write([]byte{'%'})
	}

	var callArgs []interface{}
	if widthStar {
		v, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing width argument", ErrInvalid)
		}
		callArgs = append(callArgs, v)
	}
	if hasPrec && precStar {
		v, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing precision argument", ErrInvalid)
		}
		callArgs = append(callArgs, v)
	}

	if verb == 'n' {
		v, ok := st.args.Next()
		if !ok {
			return fmt.Errorf("%w: missing target for %%n", ErrInvalid)
		}
		switch p := v.(type) {
		case *int:
			*p = st.total
		case *int32:
			*p = int32(st.total)
		case *int64:
			*p = int64(st.total)
		}
		return nil
	}

	val, ok := st.args.Next()
	if !ok {
		return fmt.Errorf("%w: missing argument for %%%c", ErrInvalid, verb)
	}
	callArgs = append(callArgs, val)

	goVerb := verb
	if verb == 'u' || verb == 'i' {
		goVerb = 'd'
	}

	var b strings.Builder
	b.WriteByte('%')
	b.WriteString(flags)
	if widthStar {
		b.WriteByte('*')
	} else {
		b.WriteString(widthDigits)
	}
	if hasPrec {
		b.WriteByte('.')
		if precStar {
			b.WriteByte('*')
		} else {
			b.WriteString(precDigits)
		}
	}
	b.WriteByte(goVerb)

	return st.write([]byte(fmt.Sprintf(b.String(), callArgs...)))
}
