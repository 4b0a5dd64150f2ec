package raw

import (
	"fmt"
	"sort"
	"unsafe"
)

// UnsupportedError is returned when an entry point was not exported by
// the loaded library. Older drivers legitimately lack newer entry
// points, so this is a per-call condition, not a load failure.
type UnsupportedError struct {
	// Name is the native symbol name, e.g. "clGetKernelArgInfo".
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("raw: %s is not supported by the loaded OpenCL library", e.Name)
}

// API is the resolved entry-point table of a loaded OpenCL library.
//
// Every method mirrors one native entry point with its exact parameter
// and return shape. Methods additionally return an error, which is
// non-nil only when the entry point is absent; the native status code
// is always passed through untranslated. An API is immutable after
// construction and safe for concurrent use from any number of
// goroutines.
type API struct {
	fn      functions
	present map[string]bool
	version Version

	// symbol address per resolved name, for identity checks.
	addrs map[string]uintptr
}

// Version reports the OpenCL version the loaded library implements,
// detected from which symbols it exports.
func (a *API) Version() Version { return a.version }

// Supported reports whether the named entry point resolved.
func (a *API) Supported(name string) bool { return a.present[name] }

// Missing returns the sorted names of known entry points that did not
// resolve.
func (a *API) Missing() []string {
	var names []string
	for _, hf := range hookFields {
		if !a.present[hf.name] {
			names = append(names, hf.name)
		}
	}
	sort.Strings(names)
	return names
}

// SymbolAddr returns the resolved address of the named entry point, or
// zero if it is missing. Resolution happens once at load time, so the
// address is stable for the life of the process.
func (a *API) SymbolAddr(name string) uintptr { return a.addrs[name] }

func (a *API) unsupported(name string) error {
	return &UnsupportedError{Name: name}
}

// Platform and device queries.

func (a *API) GetPlatformIDs(numEntries Uint, platforms *PlatformID, numPlatforms *Uint) (Int, error) {
	if a.fn.getPlatformIDs == nil {
		return 0, a.unsupported("clGetPlatformIDs")
	}
	return a.fn.getPlatformIDs(numEntries, platforms, numPlatforms), nil
}

func (a *API) GetPlatformInfo(platform PlatformID, param PlatformInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getPlatformInfo == nil {
		return 0, a.unsupported("clGetPlatformInfo")
	}
	return a.fn.getPlatformInfo(platform, param, size, value, sizeRet), nil
}

func (a *API) GetDeviceIDs(platform PlatformID, deviceType DeviceTypeFlags, numEntries Uint, devices *DeviceID, numDevices *Uint) (Int, error) {
	if a.fn.getDeviceIDs == nil {
		return 0, a.unsupported("clGetDeviceIDs")
	}
	return a.fn.getDeviceIDs(platform, deviceType, numEntries, devices, numDevices), nil
}

func (a *API) GetDeviceInfo(device DeviceID, param DeviceInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getDeviceInfo == nil {
		return 0, a.unsupported("clGetDeviceInfo")
	}
	return a.fn.getDeviceInfo(device, param, size, value, sizeRet), nil
}

// Context lifecycle.

func (a *API) CreateContext(properties *ContextProperty, numDevices Uint, devices *DeviceID, notify uintptr, userData unsafe.Pointer, errcodeRet *Int) (Context, error) {
	if a.fn.createContext == nil {
		return 0, a.unsupported("clCreateContext")
	}
	return a.fn.createContext(properties, numDevices, devices, notify, userData, errcodeRet), nil
}

func (a *API) RetainContext(ctx Context) (Int, error) {
	if a.fn.retainContext == nil {
		return 0, a.unsupported("clRetainContext")
	}
	return a.fn.retainContext(ctx), nil
}

func (a *API) ReleaseContext(ctx Context) (Int, error) {
	if a.fn.releaseContext == nil {
		return 0, a.unsupported("clReleaseContext")
	}
	return a.fn.releaseContext(ctx), nil
}

func (a *API) GetContextInfo(ctx Context, param ContextInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getContextInfo == nil {
		return 0, a.unsupported("clGetContextInfo")
	}
	return a.fn.getContextInfo(ctx, param, size, value, sizeRet), nil
}

// Command queue lifecycle.

func (a *API) CreateCommandQueue(ctx Context, device DeviceID, properties QueueProperties, errcodeRet *Int) (CommandQueue, error) {
	if a.fn.createCommandQueue == nil {
		return 0, a.unsupported("clCreateCommandQueue")
	}
	return a.fn.createCommandQueue(ctx, device, properties, errcodeRet), nil
}

func (a *API) CreateCommandQueueWithProperties(ctx Context, device DeviceID, properties *Ulong, errcodeRet *Int) (CommandQueue, error) {
	if a.fn.createCommandQueueWithProperties == nil {
		return 0, a.unsupported("clCreateCommandQueueWithProperties")
	}
	return a.fn.createCommandQueueWithProperties(ctx, device, properties, errcodeRet), nil
}

func (a *API) RetainCommandQueue(queue CommandQueue) (Int, error) {
	if a.fn.retainCommandQueue == nil {
		return 0, a.unsupported("clRetainCommandQueue")
	}
	return a.fn.retainCommandQueue(queue), nil
}

func (a *API) ReleaseCommandQueue(queue CommandQueue) (Int, error) {
	if a.fn.releaseCommandQueue == nil {
		return 0, a.unsupported("clReleaseCommandQueue")
	}
	return a.fn.releaseCommandQueue(queue), nil
}

func (a *API) GetCommandQueueInfo(queue CommandQueue, param QueueInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getCommandQueueInfo == nil {
		return 0, a.unsupported("clGetCommandQueueInfo")
	}
	return a.fn.getCommandQueueInfo(queue, param, size, value, sizeRet), nil
}

func (a *API) Flush(queue CommandQueue) (Int, error) {
	if a.fn.flush == nil {
		return 0, a.unsupported("clFlush")
	}
	return a.fn.flush(queue), nil
}

func (a *API) Finish(queue CommandQueue) (Int, error) {
	if a.fn.finish == nil {
		return 0, a.unsupported("clFinish")
	}
	return a.fn.finish(queue), nil
}

// Program lifecycle.

func (a *API) CreateProgramWithSource(ctx Context, count Uint, strings **byte, lengths *Size, errcodeRet *Int) (Program, error) {
	if a.fn.createProgramWithSource == nil {
		return 0, a.unsupported("clCreateProgramWithSource")
	}
	return a.fn.createProgramWithSource(ctx, count, strings, lengths, errcodeRet), nil
}

func (a *API) BuildProgram(program Program, numDevices Uint, devices *DeviceID, options *byte, notify uintptr, userData unsafe.Pointer) (Int, error) {
	if a.fn.buildProgram == nil {
		return 0, a.unsupported("clBuildProgram")
	}
	return a.fn.buildProgram(program, numDevices, devices, options, notify, userData), nil
}

func (a *API) RetainProgram(program Program) (Int, error) {
	if a.fn.retainProgram == nil {
		return 0, a.unsupported("clRetainProgram")
	}
	return a.fn.retainProgram(program), nil
}

func (a *API) ReleaseProgram(program Program) (Int, error) {
	if a.fn.releaseProgram == nil {
		return 0, a.unsupported("clReleaseProgram")
	}
	return a.fn.releaseProgram(program), nil
}

func (a *API) GetProgramInfo(program Program, param ProgramInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getProgramInfo == nil {
		return 0, a.unsupported("clGetProgramInfo")
	}
	return a.fn.getProgramInfo(program, param, size, value, sizeRet), nil
}

func (a *API) GetProgramBuildInfo(program Program, device DeviceID, param ProgramBuildInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getProgramBuildInfo == nil {
		return 0, a.unsupported("clGetProgramBuildInfo")
	}
	return a.fn.getProgramBuildInfo(program, device, param, size, value, sizeRet), nil
}

// Kernel lifecycle.

func (a *API) CreateKernel(program Program, name *byte, errcodeRet *Int) (Kernel, error) {
	if a.fn.createKernel == nil {
		return 0, a.unsupported("clCreateKernel")
	}
	return a.fn.createKernel(program, name, errcodeRet), nil
}

func (a *API) RetainKernel(kernel Kernel) (Int, error) {
	if a.fn.retainKernel == nil {
		return 0, a.unsupported("clRetainKernel")
	}
	return a.fn.retainKernel(kernel), nil
}

func (a *API) ReleaseKernel(kernel Kernel) (Int, error) {
	if a.fn.releaseKernel == nil {
		return 0, a.unsupported("clReleaseKernel")
	}
	return a.fn.releaseKernel(kernel), nil
}

func (a *API) SetKernelArg(kernel Kernel, argIndex Uint, argSize Size, argValue unsafe.Pointer) (Int, error) {
	if a.fn.setKernelArg == nil {
		return 0, a.unsupported("clSetKernelArg")
	}
	return a.fn.setKernelArg(kernel, argIndex, argSize, argValue), nil
}

func (a *API) GetKernelInfo(kernel Kernel, param KernelInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getKernelInfo == nil {
		return 0, a.unsupported("clGetKernelInfo")
	}
	return a.fn.getKernelInfo(kernel, param, size, value, sizeRet), nil
}

func (a *API) GetKernelArgInfo(kernel Kernel, argIndex Uint, param KernelArgInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getKernelArgInfo == nil {
		return 0, a.unsupported("clGetKernelArgInfo")
	}
	return a.fn.getKernelArgInfo(kernel, argIndex, param, size, value, sizeRet), nil
}

// Memory objects.

func (a *API) CreateBuffer(ctx Context, flags MemFlags, size Size, hostPtr unsafe.Pointer, errcodeRet *Int) (Mem, error) {
	if a.fn.createBuffer == nil {
		return 0, a.unsupported("clCreateBuffer")
	}
	return a.fn.createBuffer(ctx, flags, size, hostPtr, errcodeRet), nil
}

func (a *API) RetainMemObject(mem Mem) (Int, error) {
	if a.fn.retainMemObject == nil {
		return 0, a.unsupported("clRetainMemObject")
	}
	return a.fn.retainMemObject(mem), nil
}

func (a *API) ReleaseMemObject(mem Mem) (Int, error) {
	if a.fn.releaseMemObject == nil {
		return 0, a.unsupported("clReleaseMemObject")
	}
	return a.fn.releaseMemObject(mem), nil
}

func (a *API) GetMemObjectInfo(mem Mem, param MemInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getMemObjectInfo == nil {
		return 0, a.unsupported("clGetMemObjectInfo")
	}
	return a.fn.getMemObjectInfo(mem, param, size, value, sizeRet), nil
}

// Enqueue operations.

func (a *API) EnqueueReadBuffer(queue CommandQueue, mem Mem, blocking Bool, offset, size Size, ptr unsafe.Pointer, numWait Uint, waitList, event *Event) (Int, error) {
	if a.fn.enqueueReadBuffer == nil {
		return 0, a.unsupported("clEnqueueReadBuffer")
	}
	return a.fn.enqueueReadBuffer(queue, mem, blocking, offset, size, ptr, numWait, waitList, event), nil
}

func (a *API) EnqueueWriteBuffer(queue CommandQueue, mem Mem, blocking Bool, offset, size Size, ptr unsafe.Pointer, numWait Uint, waitList, event *Event) (Int, error) {
	if a.fn.enqueueWriteBuffer == nil {
		return 0, a.unsupported("clEnqueueWriteBuffer")
	}
	return a.fn.enqueueWriteBuffer(queue, mem, blocking, offset, size, ptr, numWait, waitList, event), nil
}

func (a *API) EnqueueCopyBuffer(queue CommandQueue, src, dst Mem, srcOffset, dstOffset, size Size, numWait Uint, waitList, event *Event) (Int, error) {
	if a.fn.enqueueCopyBuffer == nil {
		return 0, a.unsupported("clEnqueueCopyBuffer")
	}
	return a.fn.enqueueCopyBuffer(queue, src, dst, srcOffset, dstOffset, size, numWait, waitList, event), nil
}

func (a *API) EnqueueFillBuffer(queue CommandQueue, mem Mem, pattern unsafe.Pointer, patternSize, offset, size Size, numWait Uint, waitList, event *Event) (Int, error) {
	if a.fn.enqueueFillBuffer == nil {
		return 0, a.unsupported("clEnqueueFillBuffer")
	}
	return a.fn.enqueueFillBuffer(queue, mem, pattern, patternSize, offset, size, numWait, waitList, event), nil
}

func (a *API) EnqueueNDRangeKernel(queue CommandQueue, kernel Kernel, workDim Uint, globalOffset, globalSize, localSize *Size, numWait Uint, waitList, event *Event) (Int, error) {
	if a.fn.enqueueNDRangeKernel == nil {
		return 0, a.unsupported("clEnqueueNDRangeKernel")
	}
	return a.fn.enqueueNDRangeKernel(queue, kernel, workDim, globalOffset, globalSize, localSize, numWait, waitList, event), nil
}

// Events.

func (a *API) WaitForEvents(numEvents Uint, events *Event) (Int, error) {
	if a.fn.waitForEvents == nil {
		return 0, a.unsupported("clWaitForEvents")
	}
	return a.fn.waitForEvents(numEvents, events), nil
}

func (a *API) GetEventInfo(event Event, param EventInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getEventInfo == nil {
		return 0, a.unsupported("clGetEventInfo")
	}
	return a.fn.getEventInfo(event, param, size, value, sizeRet), nil
}

func (a *API) RetainEvent(event Event) (Int, error) {
	if a.fn.retainEvent == nil {
		return 0, a.unsupported("clRetainEvent")
	}
	return a.fn.retainEvent(event), nil
}

func (a *API) ReleaseEvent(event Event) (Int, error) {
	if a.fn.releaseEvent == nil {
		return 0, a.unsupported("clReleaseEvent")
	}
	return a.fn.releaseEvent(event), nil
}

func (a *API) GetEventProfilingInfo(event Event, param ProfilingInfo, size Size, value unsafe.Pointer, sizeRet *Size) (Int, error) {
	if a.fn.getEventProfilingInfo == nil {
		return 0, a.unsupported("clGetEventProfilingInfo")
	}
	return a.fn.getEventProfilingInfo(event, param, size, value, sizeRet), nil
}
