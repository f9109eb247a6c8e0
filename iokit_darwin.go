//go:build darwin

package systemid

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

const (
	ioKitPath          = "/System/Library/Frameworks/IOKit.framework/IOKit"
	coreFoundationPath = "/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation"

	// kIOMainPortDefault is MACH_PORT_NULL; kCFAllocatorDefault is NULL.
	ioMainPortDefault    = 0
	cfAllocatorDefault   = 0
	cfStringEncodingUTF8 = 0x08000100
)

// ioKit holds the IOKit and CoreFoundation entry points used to read
// registry properties. Every function is bound once per process.
type ioKit struct {
	IOServiceMatching               func(name *byte) uintptr
	IOServiceGetMatchingService     func(mainPort uint32, matching uintptr) uint32
	IORegistryEntryCreateCFProperty func(entry uint32, key uintptr, allocator uintptr, options uint32) uintptr
	IOObjectRelease                 func(object uint32) int32

	CFStringCreateWithCString         func(allocator uintptr, cstr *byte, encoding uint32) uintptr
	CFStringGetTypeID                 func() uint64
	CFGetTypeID                       func(cf uintptr) uint64
	CFStringGetLength                 func(str uintptr) int64
	CFStringGetMaximumSizeForEncoding func(length int64, encoding uint32) int64
	CFStringGetCString                func(str uintptr, buf *byte, size int64, encoding uint32) bool
	CFRelease                         func(cf uintptr)
}

var loadIOKit = sync.OnceValues(func() (*ioKit, error) {
	iokit, err := purego.Dlopen(ioKitPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, &NativeCallError{Call: "dlopen IOKit", Code: -1, Err: err}
	}

	cf, err := purego.Dlopen(coreFoundationPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, &NativeCallError{Call: "dlopen CoreFoundation", Code: -1, Err: err}
	}

	k := &ioKit{}
	purego.RegisterLibFunc(&k.IOServiceMatching, iokit, "IOServiceMatching")
	purego.RegisterLibFunc(&k.IOServiceGetMatchingService, iokit, "IOServiceGetMatchingService")
	purego.RegisterLibFunc(&k.IORegistryEntryCreateCFProperty, iokit, "IORegistryEntryCreateCFProperty")
	purego.RegisterLibFunc(&k.IOObjectRelease, iokit, "IOObjectRelease")

	purego.RegisterLibFunc(&k.CFStringCreateWithCString, cf, "CFStringCreateWithCString")
	purego.RegisterLibFunc(&k.CFStringGetTypeID, cf, "CFStringGetTypeID")
	purego.RegisterLibFunc(&k.CFGetTypeID, cf, "CFGetTypeID")
	purego.RegisterLibFunc(&k.CFStringGetLength, cf, "CFStringGetLength")
	purego.RegisterLibFunc(&k.CFStringGetMaximumSizeForEncoding, cf, "CFStringGetMaximumSizeForEncoding")
	purego.RegisterLibFunc(&k.CFStringGetCString, cf, "CFStringGetCString")
	purego.RegisterLibFunc(&k.CFRelease, cf, "CFRelease")

	return k, nil
})

// ioRegistryStringProperty looks up the first service matching serviceName
// and returns its string property key. All acquired references are released
// before returning, on every path.
func ioRegistryStringProperty(serviceName, key string) (string, error) {
	k, err := loadIOKit()
	if err != nil {
		return "", err
	}

	name := cStringBytes(serviceName)
	// The matching dictionary is consumed by IOServiceGetMatchingService.
	matching := k.IOServiceMatching(&name[0])
	if matching == 0 {
		return "", &NativeCallError{Call: "IOServiceMatching", Code: 0}
	}

	service := k.IOServiceGetMatchingService(ioMainPortDefault, matching)
	if service == 0 {
		return "", &NativeCallError{Call: "IOServiceGetMatchingService", Code: 0}
	}
	defer k.IOObjectRelease(service)

	keyBytes := cStringBytes(key)
	keyRef := k.CFStringCreateWithCString(cfAllocatorDefault, &keyBytes[0], cfStringEncodingUTF8)
	if keyRef == 0 {
		return "", &NativeCallError{Call: "CFStringCreateWithCString", Code: 0}
	}
	defer k.CFRelease(keyRef)

	property := k.IORegistryEntryCreateCFProperty(service, keyRef, cfAllocatorDefault, 0)
	if property == 0 {
		return "", &NativeCallError{Call: "IORegistryEntryCreateCFProperty", Code: 0}
	}
	defer k.CFRelease(property)

	if k.CFGetTypeID(property) != k.CFStringGetTypeID() {
		return "", &ParseError{Source: key, Err: fmt.Errorf("%w: property is not a string", ErrMalformed)}
	}

	size := k.CFStringGetMaximumSizeForEncoding(k.CFStringGetLength(property), cfStringEncodingUTF8) + 1
	if size <= 1 {
		return "", &ParseError{Source: key, Err: fmt.Errorf("%w: empty string", ErrMalformed)}
	}

	buf := make([]byte, size)
	if !k.CFStringGetCString(property, &buf[0], size, cfStringEncodingUTF8) {
		return "", &NativeCallError{Call: "CFStringGetCString", Code: 0}
	}

	return cString(key, buf)
}

// cStringBytes returns s as a NUL-terminated byte slice. Callers must not
// pass strings with embedded NULs.
func cStringBytes(s string) []byte {
	return append(bytes.TrimRight([]byte(s), "\x00"), 0)
}
