//go:build freebsd || dragonfly

package systemid

import "golang.org/x/sys/unix"

const kernelHostUUIDKey = "kern.hostuuid"

// platformStrategies returns the FreeBSD and DragonFly chain. D-Bus can run on
// BSD derivatives, so its machine id is still tried first.
func platformStrategies() []strategy {
	return []strategy{
		dbusMachineIDStrategy(dbusMachineIDPaths),
		kernelHostUUIDStrategy(),
		kenvSMBIOSUUIDStrategy(),
		hostIDStrategy(),
	}
}

// kernelHostUUIDStrategy reads the host UUID the kernel keeps in
// kern.hostuuid, usually a D-Bus-like machine id.
func kernelHostUUIDStrategy() strategy {
	return strategy{
		name:       StrategyBSDKernelHostUUID,
		confidence: ConfidenceHigh,
		acquire: func() (ID, error) {
			// SysctlRaw sizes its buffer from the kernel; parseSysctlUUID caps it at 37 bytes.
			raw, err := unix.SysctlRaw(kernelHostUUIDKey)
			if err != nil {
				return ID{}, &NativeCallError{Call: "sysctl " + kernelHostUUIDKey, Code: errnoCode(err), Err: err}
			}

			u, err := parseSysctlUUID(kernelHostUUIDKey, raw)
			if err != nil {
				return ID{}, err
			}

			return idFromUUID(u, ConfidenceHigh), nil
		},
	}
}
