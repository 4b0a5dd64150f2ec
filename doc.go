// Package cl provides safe, typed access to the system OpenCL library.
//
// The native library is located and loaded at process runtime (see the
// raw subpackage), so binaries built with this package run unchanged on
// machines without an OpenCL driver; [Init] simply returns an error
// there. Cross-compiling requires no OpenCL headers or import
// libraries.
//
// On top of the raw bindings, this package adds three guarantees that
// the C API leaves to programmer discipline:
//
//   - Buffer host-access modes are type parameters. A
//     Buffer[float32, HostNone] has no compilable way to move bytes to
//     or from the host; [Read] requires [HostReadable] and [Write]
//     requires [HostWritable].
//   - Buffer elements and kernel scalar arguments are constrained to
//     [Pod] types, whose every bit pattern is a valid value, so
//     device-side writes cannot corrupt host invariants.
//   - Kernel arguments are checked against the kernel's declared
//     parameter types before any native call is issued; a mismatch is a
//     typed error, not undefined behavior.
//
// Applications that want only the one-to-one C mirror can import
// github.com/gogpu/cl/raw directly and skip this layer entirely.
//
// # Getting started
//
//	rt, err := cl.Init()
//	if err != nil {
//		// no OpenCL on this machine
//	}
//	platforms, err := rt.Platforms()
//	devices, err := platforms[0].Devices(cl.DeviceGPU)
//	ctx, err := platforms[0].CreateContext(devices[0])
//	defer ctx.Release()
//
// Package cl produces no log output by default; call [SetLogger] to
// enable diagnostics.
package cl
