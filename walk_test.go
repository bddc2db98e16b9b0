package jwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walkEvent struct {
	name string
	path string
	typ  TokenType
	raw  string
}

func collectWalk(t *testing.T, input string) ([]walkEvent, int, error) {
	t.Helper()
	var events []walkEvent
	n, err := Walk([]byte(input), func(name, path string, tok Token) {
		raw := ""
		if tok.Ptr != -1 {
			raw = string(tok.Raw([]byte(input)))
		}
		events = append(events, walkEvent{name: name, path: path, typ: tok.Type, raw: raw})
	})
	return events, n, err
}

func TestWalkScalarRoot(t *testing.T) {
	events, n, err := collectWalk(t, `42`)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, events, 1)
	assert.Equal(t, walkEvent{path: "", typ: Number, raw: "42"}, events[0])
}

func TestWalkObject(t *testing.T) {
	events, _, err := collectWalk(t, `{"a":1,"b":"x"}`)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, ObjectStart, events[0].typ)
	assert.Equal(t, "", events[0].path)
	assert.Equal(t, Number, events[1].typ)
	assert.Equal(t, ".a", events[1].path)
	assert.Equal(t, "a", events[1].name)
	assert.Equal(t, String, events[2].typ)
	assert.Equal(t, ".b", events[2].path)
	assert.Equal(t, ObjectEnd, events[3].typ)
	assert.Equal(t, "", events[3].path)
	assert.Equal(t, `{"a":1,"b":"x"}`, events[3].raw)
}

// Spec §8 scenario 7: walk("[1,[2,3],4]") produces this exact token/path
// sequence.
func TestWalkNestedArrays(t *testing.T) {
	events, _, err := collectWalk(t, `[1,[2,3],4]`)
	require.NoError(t, err)

	want := []struct {
		path string
		typ  TokenType
	}{
		{"", ArrayStart},
		{"[0]", Number},
		{"[1]", ArrayStart},
		{"[1][0]", Number},
		{"[1][1]", Number},
		{"[1]", ArrayEnd},
		{"[2]", Number},
		{"", ArrayEnd},
	}
	require.Len(t, events, len(want))
	for i, w := range want {
		assert.Equal(t, w.path, events[i].path, "event %d path", i)
		assert.Equal(t, w.typ, events[i].typ, "event %d type", i)
	}
}

func TestWalkLenientBarewordKey(t *testing.T) {
	events, _, err := collectWalk(t, `{foo:1}`)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "foo", events[1].name)
	assert.Equal(t, ".foo", events[1].path)
}

func TestWalkLiterals(t *testing.T) {
	events, _, err := collectWalk(t, `{"a":true,"b":false,"c":null}`)
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, True, events[1].typ)
	assert.Equal(t, False, events[2].typ)
	assert.Equal(t, Null, events[3].typ)
}

func TestWalkStringEscapes(t *testing.T) {
	events, _, err := collectWalk(t, `"a\nb"`)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, String, events[0].typ)
	assert.Equal(t, `a\nb`, events[0].raw)
}

func TestWalkIncomplete(t *testing.T) {
	_, _, err := collectWalk(t, `{"a":`)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestWalkInvalid(t *testing.T) {
	_, _, err := collectWalk(t, `{"a" 1}`)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWalkTruncatedPathBuffer(t *testing.T) {
	var paths []string
	_, err := WalkCap([]byte(`{"longkeyname":1}`), 5, func(name, path string, tok Token) {
		paths = append(paths, path)
	})
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.LessOrEqual(t, len(paths[1]), 5)
}

func TestWalkNumberForms(t *testing.T) {
	for _, in := range []string{"0", "-1", "3.14", "-2.5e10", "1E+5", "0.0"} {
		events, n, err := collectWalk(t, in)
		require.NoError(t, err, in)
		assert.Equal(t, len(in), n, in)
		require.Len(t, events, 1)
		assert.Equal(t, in, events[0].raw, in)
	}
}
