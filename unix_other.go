//go:build unix && !linux && !darwin && !freebsd && !dragonfly

package systemid

// platformStrategies returns the chain for the remaining Unix-like systems,
// where D-Bus may be installed.
func platformStrategies() []strategy {
	return []strategy{
		dbusMachineIDStrategy(dbusMachineIDPaths),
		hostIDStrategy(),
	}
}
