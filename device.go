package cl

import (
	"unsafe"

	"github.com/gogpu/cl/raw"
)

// Device identifies one OpenCL device. Root devices are not reference
// counted by the native API; the value is freely copyable.
type Device struct {
	rt *Runtime
	id raw.DeviceID
}

// ID returns the native device handle.
func (d Device) ID() raw.DeviceID { return d.id }

func (d Device) query(param raw.DeviceInfo) infoQuery {
	return func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
		return d.rt.api.GetDeviceInfo(d.id, param, size, value, sizeRet)
	}
}

func (d Device) infoString(param raw.DeviceInfo) (string, error) {
	key := infoKey{handle: uintptr(d.id), param: param, kind: kindDevice}
	return d.rt.cachedString(key, func() (string, error) {
		return getInfoString("clGetDeviceInfo", d.query(param))
	})
}

// Name returns the device name, e.g. "gfx1100".
func (d Device) Name() (string, error) { return d.infoString(raw.DeviceName) }

// Vendor returns the device vendor string.
func (d Device) Vendor() (string, error) { return d.infoString(raw.DeviceVendor) }

// Version returns the device's OpenCL version string.
func (d Device) Version() (string, error) { return d.infoString(raw.DeviceVersionInfo) }

// DriverVersion returns the driver version string.
func (d Device) DriverVersion() (string, error) { return d.infoString(raw.DeviceDriverVersion) }

// Extensions returns the space-separated device extension list.
func (d Device) Extensions() (string, error) { return d.infoString(raw.DeviceExtensions) }

// Type returns the device class bits (GPU, CPU, accelerator).
func (d Device) Type() (DeviceType, error) {
	return getInfoScalar[DeviceType]("clGetDeviceInfo", d.query(raw.DeviceTypeInfo))
}

// Available reports whether the device is currently usable.
func (d Device) Available() (bool, error) {
	v, err := getInfoScalar[raw.Bool]("clGetDeviceInfo", d.query(raw.DeviceAvailable))
	return v == raw.True, err
}

// MaxComputeUnits returns the number of parallel compute units.
func (d Device) MaxComputeUnits() (uint32, error) {
	return getInfoScalar[uint32]("clGetDeviceInfo", d.query(raw.DeviceMaxComputeUnits))
}

// MaxWorkGroupSize returns the maximum work-group size for kernels on
// this device.
func (d Device) MaxWorkGroupSize() (uintptr, error) {
	return getInfoScalar[uintptr]("clGetDeviceInfo", d.query(raw.DeviceMaxWorkGroupSize))
}

// MaxWorkItemDimensions returns the number of work-item dimensions.
func (d Device) MaxWorkItemDimensions() (uint32, error) {
	return getInfoScalar[uint32]("clGetDeviceInfo", d.query(raw.DeviceMaxWorkItemDims))
}

// MaxWorkItemSizes returns the maximum work-item count per dimension.
func (d Device) MaxWorkItemSizes() ([]uintptr, error) {
	return getInfoSlice[uintptr]("clGetDeviceInfo", d.query(raw.DeviceMaxWorkItemSizes))
}

// GlobalMemSize returns the device's global memory size in bytes.
func (d Device) GlobalMemSize() (uint64, error) {
	return getInfoScalar[uint64]("clGetDeviceInfo", d.query(raw.DeviceGlobalMemSize))
}

// LocalMemSize returns the device's local memory size in bytes.
func (d Device) LocalMemSize() (uint64, error) {
	return getInfoScalar[uint64]("clGetDeviceInfo", d.query(raw.DeviceLocalMemSize))
}

// MaxMemAllocSize returns the largest single allocation in bytes.
func (d Device) MaxMemAllocSize() (uint64, error) {
	return getInfoScalar[uint64]("clGetDeviceInfo", d.query(raw.DeviceMaxMemAllocSize))
}

// MaxClockFrequency returns the maximum clock frequency in MHz.
func (d Device) MaxClockFrequency() (uint32, error) {
	return getInfoScalar[uint32]("clGetDeviceInfo", d.query(raw.DeviceMaxClockFrequency))
}

// AddressBits returns the device address space width.
func (d Device) AddressBits() (uint32, error) {
	return getInfoScalar[uint32]("clGetDeviceInfo", d.query(raw.DeviceAddressBits))
}

// Info is a snapshot of the commonly displayed device properties.
type Info struct {
	Name              string
	Vendor            string
	Version           string
	DriverVersion     string
	Type              DeviceType
	MaxComputeUnits   uint32
	MaxWorkGroupSize  uintptr
	MaxClockFrequency uint32
	GlobalMemSize     uint64
	LocalMemSize      uint64
}

// Info collects the commonly displayed properties in one call. Fields
// whose queries fail are left zero; the first error is returned
// alongside the partial snapshot.
func (d Device) Info() (Info, error) {
	var info Info
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	var err error
	info.Name, err = d.Name()
	keep(err)
	info.Vendor, err = d.Vendor()
	keep(err)
	info.Version, err = d.Version()
	keep(err)
	info.DriverVersion, err = d.DriverVersion()
	keep(err)
	info.Type, err = d.Type()
	keep(err)
	info.MaxComputeUnits, err = d.MaxComputeUnits()
	keep(err)
	info.MaxWorkGroupSize, err = d.MaxWorkGroupSize()
	keep(err)
	info.MaxClockFrequency, err = d.MaxClockFrequency()
	keep(err)
	info.GlobalMemSize, err = d.GlobalMemSize()
	keep(err)
	info.LocalMemSize, err = d.LocalMemSize()
	keep(err)
	return info, firstErr
}
