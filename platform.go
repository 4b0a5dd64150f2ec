package cl

import (
	"unsafe"

	"github.com/gogpu/cl/raw"
)

// Platform identifies one OpenCL platform (a vendor implementation).
// Platforms are not reference counted by the native API; the value is
// freely copyable.
type Platform struct {
	rt *Runtime
	id raw.PlatformID
}

// ID returns the native platform handle.
func (p Platform) ID() raw.PlatformID { return p.id }

func (p Platform) info(param raw.PlatformInfo) (string, error) {
	key := infoKey{handle: uintptr(p.id), param: param, kind: kindPlatform}
	return p.rt.cachedString(key, func() (string, error) {
		return getInfoString("clGetPlatformInfo", func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
			return p.rt.api.GetPlatformInfo(p.id, param, size, value, sizeRet)
		})
	})
}

// Name returns the platform name, e.g. "NVIDIA CUDA".
func (p Platform) Name() (string, error) { return p.info(raw.PlatformName) }

// Vendor returns the platform vendor string.
func (p Platform) Vendor() (string, error) { return p.info(raw.PlatformVendor) }

// Version returns the platform version string, e.g. "OpenCL 3.0 CUDA".
func (p Platform) Version() (string, error) { return p.info(raw.PlatformVersion) }

// Profile returns "FULL_PROFILE" or "EMBEDDED_PROFILE".
func (p Platform) Profile() (string, error) { return p.info(raw.PlatformProfile) }

// Extensions returns the space-separated platform extension list.
func (p Platform) Extensions() (string, error) { return p.info(raw.PlatformExtensions) }

// DeviceType selects device classes for enumeration.
type DeviceType = raw.DeviceTypeFlags

// Device classes accepted by Platform.Devices.
const (
	DeviceDefault     DeviceType = raw.DeviceTypeDefault
	DeviceCPU         DeviceType = raw.DeviceTypeCPU
	DeviceGPU         DeviceType = raw.DeviceTypeGPU
	DeviceAccelerator DeviceType = raw.DeviceTypeAccelerator
	DeviceAll         DeviceType = raw.DeviceTypeAll
)

// Devices returns the platform's devices of the given type. A platform
// with no matching devices yields an empty slice, not an error.
func (p Platform) Devices(typ DeviceType) ([]Device, error) {
	var count raw.Uint
	status, err := p.rt.api.GetDeviceIDs(p.id, typ, 0, nil, &count)
	if err != nil {
		return nil, err
	}
	if status == raw.ErrDeviceNotFound {
		return nil, nil
	}
	if err := apiErr("clGetDeviceIDs", status); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	ids := make([]raw.DeviceID, count)
	status, err = p.rt.api.GetDeviceIDs(p.id, typ, count, &ids[0], &count)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clGetDeviceIDs", status); err != nil {
		return nil, err
	}

	devices := make([]Device, count)
	for i, id := range ids[:count] {
		devices[i] = Device{rt: p.rt, id: id}
	}
	return devices, nil
}

// CreateContext creates a context spanning the given devices, which
// must all belong to this platform. The caller owns the returned
// context and must Release it.
func (p Platform) CreateContext(devices ...Device) (*Context, error) {
	if len(devices) == 0 {
		return nil, apiErr("clCreateContext", raw.ErrInvalidValue)
	}

	props := []raw.ContextProperty{raw.ContextPlatform, raw.ContextProperty(p.id), 0}
	ids := make([]raw.DeviceID, len(devices))
	for i, d := range devices {
		ids[i] = d.id
	}

	var status raw.Int
	handle, err := p.rt.api.CreateContext(&props[0], raw.Uint(len(ids)), &ids[0], 0, nil, &status)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clCreateContext", status); err != nil {
		return nil, err
	}
	return &Context{rt: p.rt, handle: handle}, nil
}
