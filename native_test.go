//go:build unix || windows

package systemid

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrnoCode(t *testing.T) {
	assert.Equal(t, int64(syscall.ENOENT), errnoCode(fmt.Errorf("open: %w", syscall.ENOENT)))
	assert.Equal(t, int64(-1), errnoCode(errors.New("plain")))
}
