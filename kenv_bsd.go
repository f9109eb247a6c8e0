//go:build freebsd || dragonfly

package systemid

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// From <kenv.h>.
const (
	kenvGet            = 0
	kenvMaxValueLength = 128
)

const smbiosSystemUUIDKey = "smbios.system.uuid"

func kenvSMBIOSUUIDStrategy() strategy {
	return strategy{
		name:       StrategyKenvSMBIOSUUID,
		confidence: ConfidenceHigh,
		acquire:    kenvSMBIOSUUID,
	}
}

// kenvSMBIOSUUID reads the BIOS-provided product UUID from the kernel
// environment. It may be unset or a dummy value on some boards.
func kenvSMBIOSUUID() (ID, error) {
	key, err := unix.BytePtrFromString(smbiosSystemUUIDKey)
	if err != nil {
		return ID{}, err
	}

	var buf [kenvMaxValueLength + 1]byte

	written, _, errno := unix.Syscall6(
		unix.SYS_KENV,
		kenvGet,
		uintptr(unsafe.Pointer(key)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		0, 0,
	)
	if errno != 0 {
		return ID{}, &NativeCallError{Call: "kenv " + smbiosSystemUUIDKey, Code: int64(errno), Err: errno}
	}

	u, err := parseKenvUUID(smbiosSystemUUIDKey, buf[:], int(written))
	if err != nil {
		return ID{}, err
	}

	return idFromUUID(u, ConfidenceHigh), nil
}
