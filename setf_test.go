package jwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setfString(t *testing.T, input, path string, format *string, args ...interface{}) (string, bool) {
	t.Helper()
	buf := make([]byte, 512)
	s := NewBufSink(buf)
	changed, err := Setf([]byte(input), s, path, format, args...)
	require.NoError(t, err)
	return s.String(), changed
}

func fmtPtr(s string) *string { return &s }

// Spec §8 scenario: inserting into an empty object synthesizes the member
// with no leading comma. Per spec §4.4 this reports changed == false:
// there was no pre-existing span at the path, even though the output
// bytes differ from the input.
func TestSetfInsertIntoEmptyObject(t *testing.T) {
	out, changed := setfString(t, `{}`, ".bar", fmtPtr("%d"), 456)
	assert.False(t, changed)
	assert.Equal(t, `{"bar":456}`, out)
}

// Spec §8 scenario: inserting a new key whose value is itself missing
// synthesizes the intermediate array too. No pre-existing span existed,
// so changed is false.
func TestSetfInsertSynthesizesArray(t *testing.T) {
	out, changed := setfString(t, `{"a":1}`, ".b[0]", fmtPtr("%d"), 2)
	assert.False(t, changed)
	assert.Equal(t, `{"a":1,"b":[2]}`, out)
}

// Spec §8 scenario: deleting a nested member collapses its parent to an
// empty object, not leaving a dangling comma or quote.
func TestSetfDeleteNested(t *testing.T) {
	out, changed := setfString(t, `{"a":{"b":1}}`, ".a.b", nil)
	assert.True(t, changed)
	assert.Equal(t, `{"a":{}}`, out)
}

// Spec §8 scenario: deleting the first of two members consumes the
// following comma rather than leaving a leading one.
func TestSetfDeleteFirstMember(t *testing.T) {
	out, changed := setfString(t, `{"a":1,"b":2}`, ".a", nil)
	assert.True(t, changed)
	assert.Equal(t, `{"b":2}`, out)
}

func TestSetfDeleteLastMember(t *testing.T) {
	out, changed := setfString(t, `{"a":1,"b":2}`, ".b", nil)
	assert.True(t, changed)
	assert.Equal(t, `{"a":1}`, out)
}

func TestSetfReplaceExistingScalar(t *testing.T) {
	out, changed := setfString(t, `{"a":1,"b":2}`, ".a", fmtPtr("%d"), 99)
	assert.True(t, changed)
	assert.Equal(t, `{"a":99,"b":2}`, out)
}

func TestSetfReplaceWithString(t *testing.T) {
	out, changed := setfString(t, `{"a":"old"}`, ".a", fmtPtr("%Q"), "new")
	assert.True(t, changed)
	assert.Equal(t, `{"a":"new"}`, out)
}

func TestSetfDeleteAbsentPathIsNoop(t *testing.T) {
	out, changed := setfString(t, `{"a":1}`, ".missing", nil)
	assert.False(t, changed)
	assert.Equal(t, `{"a":1}`, out)
}

// Inserting a new array element is a synthesis, not a replacement: no
// pre-existing span at ".arr[2]" existed, so changed is false.
func TestSetfInsertIntoArrayIndex(t *testing.T) {
	out, changed := setfString(t, `{"arr":[1,2]}`, ".arr[2]", fmtPtr("%d"), 3)
	assert.False(t, changed)
	assert.Equal(t, `{"arr":[1,2,3]}`, out)
}

func TestSetfWholeDocumentReplace(t *testing.T) {
	out, changed := setfString(t, `{"a":1}`, "", fmtPtr("%d"), 5)
	assert.True(t, changed)
	assert.Equal(t, `5`, out)
}

func TestDeleteAtConvenience(t *testing.T) {
	out, changed := setfString(t, `{"a":1,"b":2}`, ".a", nil)
	assert.True(t, changed)
	assert.Equal(t, `{"b":2}`, out)

	buf := make([]byte, 64)
	s := NewBufSink(buf)
	changed2, err := DeleteAt([]byte(`{"a":1,"b":2}`), s, ".a")
	require.NoError(t, err)
	assert.True(t, changed2)
	assert.Equal(t, `{"b":2}`, s.String())
}

func TestSetfRejectsMalformedPath(t *testing.T) {
	buf := make([]byte, 64)
	s := NewBufSink(buf)
	_, err := Setf([]byte(`{}`), s, "bar", fmtPtr("%d"), 1)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSetfIdempotentReplace(t *testing.T) {
	input := `{"a":1}`
	out1, _ := setfString(t, input, ".a", fmtPtr("%d"), 1)
	out2, _ := setfString(t, out1, ".a", fmtPtr("%d"), 1)
	assert.Equal(t, out1, out2)
}
