//go:build unix || windows

package systemid

import (
	"errors"
	"syscall"
)

// errnoCode extracts the raw errno carried by err, or -1 if there is none.
func errnoCode(err error) int64 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int64(errno)
	}

	return -1
}
