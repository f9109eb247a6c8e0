package systemid

import (
	"bufio"
	"container/heap"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	// maxSerialDatabaseSize bounds how much of a udev database file is read,
	// which also bounds the number of lines considered.
	maxSerialDatabaseSize = 16384

	// udevPropertyEntry is the record type of device property entries in
	// the udev database (see udevadm(8)).
	udevPropertyEntry = "E"

	serialNumberSuffix = "_SERIAL_NUMBER"
)

// serialHeap is a max-heap of serial numbers.
type serialHeap []string

func (h serialHeap) Len() int           { return len(h) }
func (h serialHeap) Less(i, j int) bool { return h[i] > h[j] }
func (h serialHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *serialHeap) Push(x any) {
	*h = append(*h, x.(string))
}

func (h *serialHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

// serialNumbersIDFromFile aggregates the serial numbers recorded in the
// udev database file at path.
func serialNumbersIDFromFile(path string) (ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return ID{}, err
	}
	defer f.Close()

	return aggregateSerialNumbers(path, f)
}

// aggregateSerialNumbers fingerprints the set of *_SERIAL_NUMBER property
// values found in a udev database. Values are hashed in descending order so
// the digest depends on the set of serials, not on their enumeration order.
// Any read failure discards the whole aggregation.
func aggregateSerialNumbers(source string, r io.Reader) (ID, error) {
	serials := &serialHeap{}

	scanner := bufio.NewScanner(io.LimitReader(r, maxSerialDatabaseSize))
	scanner.Buffer(make([]byte, 0, 4096), maxSerialDatabaseSize+1)

	for scanner.Scan() {
		line := scanner.Bytes()
		if !utf8.Valid(line) {
			return ID{}, &ParseError{Source: source, Err: fmt.Errorf("%w: invalid UTF-8 line", ErrMalformed)}
		}

		if value, ok := serialNumberValue(string(line)); ok {
			heap.Push(serials, value)
		}
	}

	if err := scanner.Err(); err != nil {
		return ID{}, &ParseError{Source: source, Err: err}
	}

	if serials.Len() == 0 {
		return ID{}, ErrNoSerialNumbers
	}

	digest := sha256.New224()
	for serials.Len() > 0 {
		digest.Write([]byte(heap.Pop(serials).(string)))
	}

	return idFromBytes(digest.Sum(nil), ConfidenceHigh), nil
}

// serialNumberValue extracts VALUE from an "E:KEY=VALUE" line whose KEY ends
// in _SERIAL_NUMBER.
func serialNumberValue(line string) (string, bool) {
	entryType, property, ok := strings.Cut(line, ":")
	if !ok || entryType != udevPropertyEntry {
		return "", false
	}

	key, value, ok := strings.Cut(property, "=")
	if !ok || !strings.HasSuffix(key, serialNumberSuffix) {
		return "", false
	}

	return value, true
}
