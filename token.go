package jwalk

// TokenType classifies a Token produced by Walk.
type TokenType int8

// Possible token types.
const (
	Invalid TokenType = iota
	Null
	True
	False
	Number
	String
	ObjectStart
	ObjectEnd
	ArrayStart
	ArrayEnd
	numTokenTypes
)

var tokenTypeStrings = [numTokenTypes]string{
	"<invalid>",
	"null",
	"true",
	"false",
	"<number>",
	"<string>",
	"<object-start>",
	"<object-end>",
	"<array-start>",
	"<array-end>",
}

// String returns a human-readable name for t, or "<unknown>" if t is out of
// range.
func (t TokenType) String() string {
	if t < 0 || t >= numTokenTypes {
		return "<unknown>"
	}
	return tokenTypeStrings[t]
}

// Token is one element of the walker's output stream: a byte span plus a
// type tag. Ptr is an offset into the caller's input buffer; it is never
// copied. For the five scalar kinds, Ptr/Len span the raw source bytes of
// the value (strings include the surrounding quotes' inner content,
// excluding the quotes themselves; numbers include sign/exponent). For a
// container start token, Ptr is -1 and Len is 0. For a container end token,
// Ptr/Len span the full container text including its delimiters.
type Token struct {
	Type TokenType
	Ptr  int
	Len  int
}

// Raw returns the raw source bytes of tok within input. It panics if tok is
// a container-start token (Ptr == -1); callers should not call Raw on those.
func (tok Token) Raw(input []byte) []byte {
	return input[tok.Ptr : tok.Ptr+tok.Len]
}

// character classifier: predicates over single input bytes.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || isAlpha(c)
}

func isIdentCont(c byte) bool {
	return c == '_' || isAlpha(c) || isDigit(c)
}

// utf8Len returns the length in bytes of the UTF-8 sequence starting with
// leading byte c, or 0 if c cannot start a valid sequence.
func utf8Len(c byte) int {
	switch {
	case c&0x80 == 0x00:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// escapeLen returns the total length, including the leading backslash, of
// the JSON escape sequence beginning at s[0] == '\\', or 0 if s does not
// hold a complete, valid escape.
func escapeLen(s []byte) int {
	if len(s) < 2 || s[0] != '\\' {
		return 0
	}
	switch s[1] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return 2
	case 'u':
		if len(s) < 6 {
			return 0
		}
		for i := 2; i < 6; i++ {
			if !isHexDigit(s[i]) {
				return 0
			}
		}
		return 6
	default:
		return 0
	}
}
