//go:build !unix && !windows

package systemid

// platformStrategies returns an empty chain: no identity source is known.
func platformStrategies() []strategy {
	return nil
}
