package systemid

import (
	"io"
	"os"
	"strings"
)

// maxTextValueSize is the length of the longest textual value read from a
// file: a hyphenated UUID.
const maxTextValueSize = 36

// readTextValue reads at most maxTextValueSize bytes from the file at path.
// Invalid UTF-8 is replaced rather than rejected because callers only
// attempt a loose parse of the result.
func readTextValue(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf [maxTextValueSize]byte

	return readBoundedText(f, buf[:])
}

// readBoundedText fills buf from r until it is full or r reports EOF,
// tolerating short reads. It never reads more than len(buf) bytes.
func readBoundedText(r io.Reader, buf []byte) (string, error) {
	n := 0
	for n < len(buf) {
		read, err := r.Read(buf[n:])
		n += read

		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		// Some readers return (0, nil); treat it as EOF to guarantee termination.
		if read == 0 {
			break
		}
	}

	return strings.ToValidUTF8(string(buf[:n]), "\uFFFD"), nil
}
