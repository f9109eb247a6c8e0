package systemid

// StrategyName identifies one acquisition strategy.
type StrategyName string

// Strategy names used in [StrategyInfo], [Diagnostics] and [StrategyError].
const (
	StrategyDBusMachineID       StrategyName = "dbus-machine-id"
	StrategyLinuxBootID         StrategyName = "linux-boot-id"
	StrategyDMIProductUUID      StrategyName = "dmi-product-uuid"
	StrategyUdevDMISerials      StrategyName = "udev-dmi-serials"
	StrategyBSDKernelHostUUID   StrategyName = "bsd-kernel-hostuuid"
	StrategyKenvSMBIOSUUID      StrategyName = "kenv-smbios-uuid"
	StrategyIOKitPlatformSerial StrategyName = "iokit-platform-serial"
	StrategyPOSIXHostID         StrategyName = "posix-hostid"
	StrategyWindowsMachineGUID  StrategyName = "windows-machine-guid"
	StrategyWMIProductUUID      StrategyName = "wmi-product-uuid"
	StrategyWindowsVolumeSerial StrategyName = "windows-system-volume-serial"
	StrategyWindowsInstallDate  StrategyName = "windows-install-date"
)

// StrategyInfo describes one entry of a resolver chain.
type StrategyInfo struct {
	Name       StrategyName `json:"name"`
	Confidence Confidence   `json:"confidence"`
}

// strategy is one compiled-in acquisition mechanism. acquire returns an
// error only for diagnostics; the resolver treats any error as no result.
type strategy struct {
	name       StrategyName
	confidence Confidence
	acquire    func() (ID, error)
}

func (s strategy) info() StrategyInfo {
	return StrategyInfo{Name: s.name, Confidence: s.confidence}
}

// dbusMachineIDPaths are tried in order; the first readable, well-formed
// file wins.
var dbusMachineIDPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
	"/var/db/dbus/machine-id",
	"/usr/local/etc/machine-id",
	"/run/machine-id",
}

// dbusMachineIDStrategy reads the D-Bus/systemd machine id, which stays the
// same for the lifetime of the OS install.
func dbusMachineIDStrategy(paths []string) strategy {
	return strategy{
		name:       StrategyDBusMachineID,
		confidence: ConfidenceHigh,
		acquire: func() (ID, error) {
			return machineIDFromFiles(paths)
		},
	}
}

// machineIDFromFiles returns the machine id of the first path that can be
// read and parsed. The error of the last candidate is returned otherwise.
func machineIDFromFiles(paths []string) (ID, error) {
	var lastErr error = ErrUnavailable

	for _, path := range paths {
		text, err := readTextValue(path)
		if err != nil {
			lastErr = err

			continue
		}

		raw, err := parseMachineIDHex(path, text)
		if err != nil {
			lastErr = err

			continue
		}

		return idFromBytes(raw, ConfidenceHigh), nil
	}

	return ID{}, lastErr
}

// uuidFileStrategy reads a file holding a single UUID in text form.
func uuidFileStrategy(name StrategyName, path string, c Confidence) strategy {
	return strategy{
		name:       name,
		confidence: c,
		acquire: func() (ID, error) {
			text, err := readTextValue(path)
			if err != nil {
				return ID{}, err
			}

			u, err := parseUUIDText(path, text)
			if err != nil {
				return ID{}, err
			}

			return idFromUUID(u, c), nil
		},
	}
}

// udevSerialsStrategy aggregates the DMI serial numbers collected by udev.
// Unlike reading sysfs directly, it needs no privileges.
func udevSerialsStrategy(path string) strategy {
	return strategy{
		name:       StrategyUdevDMISerials,
		confidence: ConfidenceHigh,
		acquire: func() (ID, error) {
			return serialNumbersIDFromFile(path)
		},
	}
}
