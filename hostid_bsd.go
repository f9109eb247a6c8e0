//go:build darwin || freebsd || dragonfly || openbsd || netbsd

package systemid

import "golang.org/x/sys/unix"

// hostIDStrategy reads kern.hostid, the value gethostid(3) returns on BSD
// derivatives. How it is generated is system-dependent.
func hostIDStrategy() strategy {
	return strategy{
		name:       StrategyPOSIXHostID,
		confidence: ConfidenceLow,
		acquire: func() (ID, error) {
			v, err := unix.SysctlUint32("kern.hostid")
			if err != nil {
				return ID{}, &NativeCallError{Call: "sysctl kern.hostid", Code: errnoCode(err), Err: err}
			}

			return idFromHostID(int32(v)), nil
		},
	}
}
