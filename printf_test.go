package jwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printfString(t *testing.T, format string, args ...interface{}) string {
	t.Helper()
	buf := make([]byte, 256)
	s := NewBufSink(buf)
	_, err := Printf(s, format, args...)
	require.NoError(t, err)
	return s.String()
}

func TestPrintfLiteralPunctuation(t *testing.T) {
	assert.Equal(t, `{}`, printfString(t, "{}"))
	assert.Equal(t, `[1,2]`, printfString(t, "[%d,%d]", 1, 2))
}

func TestPrintfBareword(t *testing.T) {
	assert.Equal(t, `{"key":1}`, printfString(t, "{key:%d}", 1))
}

func TestPrintfQ(t *testing.T) {
	assert.Equal(t, `"hi"`, printfString(t, "%Q", "hi"))
	assert.Equal(t, `"a\nb"`, printfString(t, "%Q", "a\nb"))
	assert.Equal(t, `null`, printfString(t, "%Q", nil))
}

func TestPrintfBool(t *testing.T) {
	assert.Equal(t, `true`, printfString(t, "%B", true))
	assert.Equal(t, `false`, printfString(t, "%B", 0))
	assert.Equal(t, `true`, printfString(t, "%B", 5))
}

func TestPrintfHexAndBase64(t *testing.T) {
	assert.Equal(t, `"deadbeef"`, printfString(t, "%H", 4, []byte{0xde, 0xad, 0xbe, 0xef}))
	assert.Equal(t, `"aGVsbG8="`, printfString(t, "%V", []byte("hello"), 5))
}

func TestPrintfPrecisionQ(t *testing.T) {
	assert.Equal(t, `"hel"`, printfString(t, "%.*Q", 3, "hello"))
}

func TestPrintfHostFallback(t *testing.T) {
	assert.Equal(t, "42", printfString(t, "%d", 42))
	assert.Equal(t, "2a", printfString(t, "%x", 42))
	assert.Equal(t, "  42", printfString(t, "%4d", 42))
	assert.Equal(t, "3.14", printfString(t, "%.2f", 3.14159))
}

func TestPrintfWidthStarIndirection(t *testing.T) {
	assert.Equal(t, "   42", printfString(t, "%*d", 5, 42))
}

func TestPrintfEmitter(t *testing.T) {
	emit := Emitter(func(out Sink, args *Args) (int, error) {
		v, _ := args.Next()
		return out.Write([]byte(v.(string)))
	})
	assert.Equal(t, `[custom]`, printfString(t, "[%M]", emit, "custom"))
}

func TestPrintfArray(t *testing.T) {
	buf := make([]byte, 64)
	s := NewBufSink(buf)
	_, err := PrintfArray(s, []interface{}{1, 2, 3}, "%d")
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", s.String())
}

func TestFprintf(t *testing.T) {
	path := t.TempDir() + "/out.json"
	n, err := Fprintf(path, "{a:%d}", 7)
	require.NoError(t, err)
	assert.Equal(t, 8, n) // 7 bytes of JSON + trailing newline

	data, err := Slurp(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":7}\n", string(data))
}
