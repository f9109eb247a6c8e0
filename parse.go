package systemid

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// machineIDHexLength is the length of a D-Bus/systemd machine id: 128 bits
// written as lower-case hex without hyphens.
const machineIDHexLength = 32

// kenvUUIDWrittenLengths are the byte counts kenv reports for a 32 or 36
// character UUID plus its NUL terminator.
var kenvUUIDWrittenLengths = [...]int{32 + 1, 36 + 1}

// parseMachineIDHex parses a trimmed D-Bus machine id into its 128-bit
// big-endian representation.
func parseMachineIDHex(source, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if len(text) != machineIDHexLength {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("%w: want %d hex digits, got %d bytes", ErrMalformed, machineIDHexLength, len(text))}
	}

	raw, err := hex.DecodeString(text)
	if err != nil {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	return raw, nil
}

// parseUUIDText parses trimmed UUID text. The all-zero UUID is what unset
// firmware fields report, so it is rejected.
func parseUUIDText(source, text string) (uuid.UUID, error) {
	u, err := uuid.Parse(strings.TrimSpace(text))
	if err != nil {
		return uuid.Nil, &ParseError{Source: source, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	if u == uuid.Nil {
		return uuid.Nil, &ParseError{Source: source, Err: fmt.Errorf("%w: nil UUID", ErrMalformed)}
	}

	return u, nil
}

// cString decodes a NUL-terminated native buffer. A buffer without a
// terminator, or whose content is not valid UTF-8, is malformed.
func cString(source string, buf []byte) (string, error) {
	end := bytes.IndexByte(buf, 0)
	if end < 0 {
		return "", &ParseError{Source: source, Err: fmt.Errorf("%w: missing NUL terminator", ErrMalformed)}
	}

	if !utf8.Valid(buf[:end]) {
		return "", &ParseError{Source: source, Err: fmt.Errorf("%w: invalid UTF-8", ErrMalformed)}
	}

	return string(buf[:end]), nil
}

// parseKenvUUID validates the byte count a kenv query reported writing into
// buf and parses the UUID it holds. Only 32 or 36 character values are
// accepted, whatever else the call wrote.
func parseKenvUUID(source string, buf []byte, written int) (uuid.UUID, error) {
	if !slices.Contains(kenvUUIDWrittenLengths[:], written) || written > len(buf) {
		return uuid.Nil, &ParseError{Source: source, Err: fmt.Errorf("%w: %d bytes written", ErrUnexpectedLength, written)}
	}

	text, err := cString(source, buf[:written])
	if err != nil {
		return uuid.Nil, err
	}

	return parseUUIDText(source, text)
}

// parseSysctlUUID parses the value of a string sysctl that is expected to
// fit a buffer sized for a hyphenated UUID plus terminator.
func parseSysctlUUID(source string, raw []byte) (uuid.UUID, error) {
	if len(raw) > maxTextValueSize+1 {
		return uuid.Nil, &ParseError{Source: source, Err: fmt.Errorf("%w: %d bytes", ErrUnexpectedLength, len(raw))}
	}

	text, err := cString(source, append(bytes.Clone(raw), 0))
	if err != nil {
		return uuid.Nil, err
	}

	return parseUUIDText(source, text)
}
