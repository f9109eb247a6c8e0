package systemid

import (
	"encoding/binary"
	"io"
	"os"
)

// hostIDFromFile reads a hostid(5) record: one 32-bit integer in native byte
// order, as written by sethostid(3).
func hostIDFromFile(path string) (ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return ID{}, err
	}
	defer f.Close()

	var buf [4]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return ID{}, &ParseError{Source: path, Err: err}
	}

	return idFromHostID(int32(binary.NativeEndian.Uint32(buf[:]))), nil
}

// idFromHostID widens a 32-bit host id to the machine word gethostid(3)
// returns it in, sign extension included.
func idFromHostID(v int32) ID {
	return idFromUint64(uint64(int64(v)), ConfidenceLow)
}
