// Package systemid derives a best-effort identifier for the current machine,
// reasonably unique and reasonably stable, meant to be used as opaque seed
// material (for example to make a transformation deterministic per machine
// without it being predictable across machines).
//
// # Overview
//
// No operating system exposes a single reliable identity value, so a
// [Resolver] walks a fixed, platform-specific chain of strategies, each
// reading one native source, and returns the first [ID] any of them
// produces. Values from different strategies are never combined.
//
// An [ID] is an opaque byte string plus a [Confidence]. High-confidence
// values are expected to last as long as the OS installation; low-confidence
// values may change across boots, updates or hardware swaps. Typical lengths
// are 4 or 8 bytes (integers), 16 bytes (UUIDs) and 28 bytes (SHA-224 digests
// of values without a specified format). No length is guaranteed across
// platforms.
//
// # Quick Start
//
//	id, err := systemid.Resolve()
//	if errors.Is(err, systemid.ErrUnavailable) {
//		// proceed without a machine-specific seed
//	}
//	seed := id.Bytes()
//
// # Priority Tables
//
// Strategies are tried in this order; high confidence always comes first.
//
//   - linux: dbus-machine-id, dmi-product-uuid, udev-dmi-serials,
//     linux-boot-id (low), posix-hostid (low)
//   - freebsd: dbus-machine-id, bsd-kernel-hostuuid, kenv-smbios-uuid,
//     posix-hostid (low)
//   - dragonfly: same as freebsd
//   - darwin: iokit-platform-serial, posix-hostid (low)
//   - other Unix: dbus-machine-id, posix-hostid (low)
//   - windows: windows-machine-guid, wmi-product-uuid,
//     windows-system-volume-serial, windows-install-date (low)
//
// [Resolver.Chain] returns the effective table at run time.
//
// # Configuration
//
//   - [Resolver.WithMinConfidence] drops strategies below a confidence.
//   - [Resolver.WithoutStrategies] drops strategies by name.
//   - [Resolver.WithLogger] enables structured logging through log/slog.
//
// # Serial Number Aggregation
//
// On Linux the udev-dmi-serials strategy reads the udev property database for
// the DMI device, keeps every *_SERIAL_NUMBER value, sorts them in descending
// order and hashes them into one SHA-224 digest, so the result depends on the
// set of serial numbers rather than on the order they are listed in. Any
// read error discards the whole aggregation, and a database without serial
// numbers yields no result.
//
// # Errors and Diagnostics
//
// Strategy failures never escape [Resolver.Resolve]; they are recorded as
// [*StrategyError] values in [Resolver.Diagnostics]. When every strategy
// fails, Resolve returns [ErrUnavailable] and the caller decides the
// fallback.
//
// # Resource Bounds
//
// File-based strategies read at most 36 bytes, or 16 KiB for the udev
// database. Native handles (IOKit services, CoreFoundation objects, registry
// keys, file handles) are released on every return path. Nothing performs
// network I/O.
//
// # Thread Safety
//
// A [Resolver] is safe for concurrent use. A successful resolution is cached
// until [Resolver.WithMinConfidence] or [Resolver.WithoutStrategies] changes
// the chain; a failed one is retried on the next call.
package systemid
