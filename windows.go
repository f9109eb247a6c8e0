//go:build windows

package systemid

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	cryptographyKeyPath   = `SOFTWARE\Microsoft\Cryptography`
	machineGUIDValue      = "MachineGuid"
	currentVersionKeyPath = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`
	installDateValue      = "InstallDate"

	// systemRootPath selects the SystemRoot object of the Object Manager root
	// namespace, a link to the real system root directory on its volume.
	systemRootPath = `\\?\GLOBALROOT\SystemRoot`

	productUUIDQuery = "SELECT UUID FROM Win32_ComputerSystemProduct"
)

// platformStrategies returns the Windows chain.
func platformStrategies() []strategy {
	return []strategy{
		{name: StrategyWindowsMachineGUID, confidence: ConfidenceHigh, acquire: windowsMachineGUID},
		{name: StrategyWMIProductUUID, confidence: ConfidenceHigh, acquire: wmiProductUUID},
		{name: StrategyWindowsVolumeSerial, confidence: ConfidenceHigh, acquire: systemRootVolumeSerial},
		// InstallDate may be rewritten by feature updates.
		{name: StrategyWindowsInstallDate, confidence: ConfidenceLow, acquire: windowsInstallDate},
	}
}

// openLocalMachineKey opens a key of HKEY_LOCAL_MACHINE through the 64-bit
// registry view, so 32-bit builds read the same values.
func openLocalMachineKey(path string) (registry.Key, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return 0, &NativeCallError{Call: "RegOpenKeyEx " + path, Code: errnoCode(err), Err: err}
	}

	return k, nil
}

// windowsMachineGUID reads the machine GUID generated at install time. It is
// not officially documented, but is widely relied on and even set by Wine.
func windowsMachineGUID() (ID, error) {
	k, err := openLocalMachineKey(cryptographyKeyPath)
	if err != nil {
		return ID{}, err
	}
	defer k.Close()

	guid, _, err := k.GetStringValue(machineGUIDValue)
	if err != nil {
		return ID{}, &NativeCallError{Call: "RegQueryValueEx " + machineGUIDValue, Code: errnoCode(err), Err: err}
	}

	u, err := parseUUIDText(machineGUIDValue, guid)
	if err != nil {
		return ID{}, err
	}

	return idFromUUID(u, ConfidenceHigh), nil
}

type win32ComputerSystemProduct struct {
	UUID *string
}

// wmiProductUUID queries the SMBIOS product UUID through WMI. Boards without
// one report all zeros, which parseUUIDText rejects.
func wmiProductUUID() (ID, error) {
	var products []win32ComputerSystemProduct
	if err := wmi.Query(productUUIDQuery, &products); err != nil {
		return ID{}, &NativeCallError{Call: "WMI " + productUUIDQuery, Code: -1, Err: err}
	}

	if len(products) != 1 || products[0].UUID == nil {
		return ID{}, &ParseError{Source: "Win32_ComputerSystemProduct", Err: fmt.Errorf("%w: %d products", ErrMalformed, len(products))}
	}

	u, err := parseUUIDText("Win32_ComputerSystemProduct.UUID", *products[0].UUID)
	if err != nil {
		return ID{}, err
	}

	return idFromUUID(u, ConfidenceHigh), nil
}

// systemRootVolumeSerial returns the serial number of the volume holding the
// Windows system root, usually the one mounted at C:.
func systemRootVolumeSerial() (ID, error) {
	path, err := windows.UTF16PtrFromString(systemRootPath)
	if err != nil {
		return ID{}, err
	}

	h, err := windows.CreateFile(
		path,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return ID{}, &NativeCallError{Call: "CreateFile " + systemRootPath, Code: errnoCode(err), Err: err}
	}
	defer windows.CloseHandle(h)

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &info); err != nil {
		return ID{}, &NativeCallError{Call: "GetFileInformationByHandle", Code: errnoCode(err), Err: err}
	}

	return idFromUint32(info.VolumeSerialNumber, ConfidenceHigh), nil
}

// windowsInstallDate reads the install timestamp, a 32-bit value. It is weak
// as seed material and can change after some updates.
func windowsInstallDate() (ID, error) {
	k, err := openLocalMachineKey(currentVersionKeyPath)
	if err != nil {
		return ID{}, err
	}
	defer k.Close()

	v, valType, err := k.GetIntegerValue(installDateValue)
	if err != nil {
		return ID{}, &NativeCallError{Call: "RegQueryValueEx " + installDateValue, Code: errnoCode(err), Err: err}
	}

	if valType != registry.DWORD {
		return ID{}, &ParseError{Source: installDateValue, Err: fmt.Errorf("%w: registry type %d", ErrMalformed, valType)}
	}

	return idFromUint32(uint32(v), ConfidenceLow), nil
}
