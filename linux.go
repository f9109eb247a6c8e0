//go:build linux

package systemid

const (
	bootIDPath          = "/proc/sys/kernel/random/boot_id"
	dmiProductUUIDPath  = "/sys/class/dmi/id/product_uuid"
	udevDMIDatabasePath = "/run/udev/data/+dmi:id"
	hostIDPath          = "/etc/hostid"
)

// platformStrategies returns the Linux chain. The boot id changes on every
// boot and the host id is often a constant, so both come last.
func platformStrategies() []strategy {
	return []strategy{
		dbusMachineIDStrategy(dbusMachineIDPaths),
		// Reading product_uuid usually requires root.
		uuidFileStrategy(StrategyDMIProductUUID, dmiProductUUIDPath, ConfidenceHigh),
		udevSerialsStrategy(udevDMIDatabasePath),
		uuidFileStrategy(StrategyLinuxBootID, bootIDPath, ConfidenceLow),
		hostIDStrategy(),
	}
}

// hostIDStrategy reads the file glibc's gethostid consults first. The
// hostname-based fallback is not attempted because it may query DNS.
func hostIDStrategy() strategy {
	return strategy{
		name:       StrategyPOSIXHostID,
		confidence: ConfidenceLow,
		acquire: func() (ID, error) {
			return hostIDFromFile(hostIDPath)
		},
	}
}
