package systemid

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endlessReader never reports EOF and counts the bytes it hands out.
type endlessReader struct {
	served int
}

func (r *endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'a'
	}
	r.served += len(p)

	return len(p), nil
}

// stallingReader returns (0, nil) forever.
type stallingReader struct{}

func (stallingReader) Read([]byte) (int, error) { return 0, nil }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestReadBoundedTextNeverExceedsBuffer(t *testing.T) {
	r := &endlessReader{}
	var buf [maxTextValueSize]byte

	text, err := readBoundedText(r, buf[:])
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", maxTextValueSize), text)
	assert.Equal(t, maxTextValueSize, r.served)
}

func TestReadBoundedTextToleratesShortReads(t *testing.T) {
	var buf [maxTextValueSize]byte

	text, err := readBoundedText(iotest.OneByteReader(strings.NewReader("d41d8cd98f00b204e9800998ecf8427e\n")), buf[:])
	require.NoError(t, err)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e\n", text)
}

func TestReadBoundedTextTerminatesOnStall(t *testing.T) {
	var buf [maxTextValueSize]byte

	text, err := readBoundedText(stallingReader{}, buf[:])
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestReadBoundedTextReplacesInvalidUTF8(t *testing.T) {
	var buf [maxTextValueSize]byte

	text, err := readBoundedText(strings.NewReader("ab\xffcd"), buf[:])
	require.NoError(t, err)
	assert.Equal(t, "ab\uFFFDcd", text)
}

func TestReadBoundedTextPropagatesReadErrors(t *testing.T) {
	var buf [maxTextValueSize]byte
	boom := errors.New("boom")

	_, err := readBoundedText(iotest.ErrReader(boom), buf[:])
	assert.ErrorIs(t, err, boom)
}

func TestReadTextValue(t *testing.T) {
	t.Run("truncates long files", func(t *testing.T) {
		path := writeFile(t, "big", strings.Repeat("0123456789", 1000))

		text, err := readTextValue(path)
		require.NoError(t, err)
		assert.Len(t, text, maxTextValueSize)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readTextValue(filepath.Join(t.TempDir(), "absent"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
