//go:build unix && !linux && !darwin && !freebsd && !dragonfly && !openbsd && !netbsd

package systemid

func hostIDStrategy() strategy {
	return strategy{
		name:       StrategyPOSIXHostID,
		confidence: ConfidenceLow,
		acquire: func() (ID, error) {
			return ID{}, ErrNotSupported
		},
	}
}
