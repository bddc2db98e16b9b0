package jwalk


// Prettify writes input to out, reformatted with two-space indentation:
// one level per nested container, "name": value for object members, commas
// between siblings with none trailing, and a newline before each closing
// bracket that has at least one member (spec §6). It is driven by Walk, so
// it inherits Walk's lenient-dialect acceptance and its path-buffer cap has
// no bearing on the output (Prettify never inspects paths).
func Prettify(input []byte, out Sink) (int, error) {
	p := &prettyPrinter{out: out, input: input}
	if _, err := Walk(input, p.visit); err != nil {
		return p.total, err
	}
	return p.total, nil
}

// PrettifyFile reformats the file at path in place: input is read with
// Slurp, reformatted to a temporary file in the same directory, and the
// temporary file is renamed over the original only on success — on any
// error the original file is left untouched, the same all-or-nothing
// contract jj.go's journal checkpoint uses for its own file rewrites.
func PrettifyFile(path string) error {
	input, err := Slurp(path)
	if err != nil {
		return err
	}
	return rewriteFile(path, func(out Sink) error {
		_, err := Prettify(input, out)
		return err
	})
}

type prettyPrinter struct {
	out   Sink
	input []byte
	total int
	depth int
	// pendingComma[d] tracks whether the container currently open at depth
	// d already has a member that needs a trailing comma before the next
	// one.
	pendingComma []bool
}

func (p *prettyPrinter) write(b []byte) {
	n, _ := p.out.Write(b)
	p.total += n
}

func (p *prettyPrinter) indent(depth int) {
	p.write([]byte("\n"))
	for i := 0; i < depth; i++ {
		p.write([]byte("  "))
	}
}

func (p *prettyPrinter) beforeMember() {
	if p.depth == 0 {
		return
	}
	for len(p.pendingComma) <= p.depth {
		p.pendingComma = append(p.pendingComma, false)
	}
	if p.pendingComma[p.depth] {
		p.write([]byte(","))
	}
	p.pendingComma[p.depth] = true
	p.indent(p.depth)
}

func (p *prettyPrinter) visit(name, path string, tok Token) {
	switch tok.Type {
	case ObjectStart, ArrayStart:
		p.beforeMember()
		if name != "" {
			p.write([]byte{'"'})
			p.write([]byte(name))
			p.write([]byte(`": `))
		}
		if tok.Type == ObjectStart {
			p.write([]byte("{"))
		} else {
			p.write([]byte("["))
		}
		p.depth++
		for len(p.pendingComma) <= p.depth {
			p.pendingComma = append(p.pendingComma, false)
		}
		p.pendingComma[p.depth] = false
	case ObjectEnd, ArrayEnd:
		hadMembers := p.depth < len(p.pendingComma) && p.pendingComma[p.depth]
		p.depth--
		if hadMembers {
			p.indent(p.depth)
		}
		if tok.Type == ObjectEnd {
			p.write([]byte("}"))
		} else {
			p.write([]byte("]"))
		}
	default:
		p.beforeMember()
		if name != "" {
			// name is the raw key span Walk handed us (escapes intact, not
			// decoded) — the same convention writeScalar relies on for
			// String tokens, so it's re-emitted verbatim rather than
			// through Escape, which would double-escape it.
			p.write([]byte{'"'})
			p.write([]byte(name))
			p.write([]byte(`": `))
		}
		p.writeScalar(tok)
	}
}

// writeScalar re-emits tok's own raw bytes: Prettify only reindents
// structure, it never reformats scalar literals (a number keeps its
// original digit string, a string keeps its original escaping and quotes).
func (p *prettyPrinter) writeScalar(tok Token) {
	switch tok.Type {
	case Null:
		p.write([]byte("null"))
	case True:
		p.write([]byte("true"))
	case False:
		p.write([]byte("false"))
	case Number:
		p.write(tok.Raw(p.input))
	case String:
		p.write([]byte{'"'})
		p.write(tok.Raw(p.input))
		p.write([]byte{'"'})
	}
}
