//go:build darwin

package systemid

const (
	platformExpertService    = "IOPlatformExpertDevice"
	platformSerialNumberProp = "IOPlatformSerialNumber"
)

// platformStrategies returns the macOS chain.
func platformStrategies() []strategy {
	return []strategy{
		platformSerialStrategy(),
		hostIDStrategy(),
	}
}

// platformSerialStrategy reads the IOPlatformSerialNumber property of the
// platform expert device. Its format is not specified, so the value is
// hashed rather than parsed.
func platformSerialStrategy() strategy {
	return strategy{
		name:       StrategyIOKitPlatformSerial,
		confidence: ConfidenceHigh,
		acquire: func() (ID, error) {
			serial, err := ioRegistryStringProperty(platformExpertService, platformSerialNumberProp)
			if err != nil {
				return ID{}, err
			}

			if serial == "" {
				return ID{}, &ParseError{Source: platformSerialNumberProp, Err: ErrMalformed}
			}

			return idFromDigestOf(serial, ConfidenceHigh), nil
		},
	}
}
