package raw

import "unsafe"

// Version identifies an OpenCL specification version, detected from
// which symbols the loaded library exports.
type Version int

const (
	CL10 Version = iota + 1
	CL11
	CL12
	CL20
	CL21
	CL22
	CL30
)

func (v Version) String() string {
	switch v {
	case CL10:
		return "OpenCL 1.0"
	case CL11:
		return "OpenCL 1.1"
	case CL12:
		return "OpenCL 1.2"
	case CL20:
		return "OpenCL 2.0"
	case CL21:
		return "OpenCL 2.1"
	case CL22:
		return "OpenCL 2.2"
	case CL30:
		return "OpenCL 3.0"
	default:
		return "OpenCL (unknown version)"
	}
}

// functions holds one function pointer per entry point. A nil field
// means the symbol did not resolve; the guarded methods on API turn
// that into an UnsupportedError instead of a crash.
type functions struct {
	getPlatformIDs func(numEntries Uint, platforms *PlatformID, numPlatforms *Uint) Int
	getPlatformInfo func(platform PlatformID, param PlatformInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	getDeviceIDs    func(platform PlatformID, deviceType DeviceTypeFlags, numEntries Uint, devices *DeviceID, numDevices *Uint) Int
	getDeviceInfo   func(device DeviceID, param DeviceInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	createContext  func(properties *ContextProperty, numDevices Uint, devices *DeviceID, notify uintptr, userData unsafe.Pointer, errcodeRet *Int) Context
	retainContext  func(ctx Context) Int
	releaseContext func(ctx Context) Int
	getContextInfo func(ctx Context, param ContextInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	createCommandQueue               func(ctx Context, device DeviceID, properties QueueProperties, errcodeRet *Int) CommandQueue
	createCommandQueueWithProperties func(ctx Context, device DeviceID, properties *Ulong, errcodeRet *Int) CommandQueue
	retainCommandQueue               func(queue CommandQueue) Int
	releaseCommandQueue              func(queue CommandQueue) Int
	getCommandQueueInfo              func(queue CommandQueue, param QueueInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	flush                            func(queue CommandQueue) Int
	finish                           func(queue CommandQueue) Int

	createProgramWithSource func(ctx Context, count Uint, strings **byte, lengths *Size, errcodeRet *Int) Program
	buildProgram            func(program Program, numDevices Uint, devices *DeviceID, options *byte, notify uintptr, userData unsafe.Pointer) Int
	retainProgram           func(program Program) Int
	releaseProgram          func(program Program) Int
	getProgramInfo          func(program Program, param ProgramInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	getProgramBuildInfo     func(program Program, device DeviceID, param ProgramBuildInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	createKernel     func(program Program, name *byte, errcodeRet *Int) Kernel
	retainKernel     func(kernel Kernel) Int
	releaseKernel    func(kernel Kernel) Int
	setKernelArg     func(kernel Kernel, argIndex Uint, argSize Size, argValue unsafe.Pointer) Int
	getKernelInfo    func(kernel Kernel, param KernelInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	getKernelArgInfo func(kernel Kernel, argIndex Uint, param KernelArgInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	createBuffer     func(ctx Context, flags MemFlags, size Size, hostPtr unsafe.Pointer, errcodeRet *Int) Mem
	retainMemObject  func(mem Mem) Int
	releaseMemObject func(mem Mem) Int
	getMemObjectInfo func(mem Mem, param MemInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	enqueueReadBuffer    func(queue CommandQueue, mem Mem, blocking Bool, offset, size Size, ptr unsafe.Pointer, numWait Uint, waitList, event *Event) Int
	enqueueWriteBuffer   func(queue CommandQueue, mem Mem, blocking Bool, offset, size Size, ptr unsafe.Pointer, numWait Uint, waitList, event *Event) Int
	enqueueCopyBuffer    func(queue CommandQueue, src, dst Mem, srcOffset, dstOffset, size Size, numWait Uint, waitList, event *Event) Int
	enqueueFillBuffer    func(queue CommandQueue, mem Mem, pattern unsafe.Pointer, patternSize, offset, size Size, numWait Uint, waitList, event *Event) Int
	enqueueNDRangeKernel func(queue CommandQueue, kernel Kernel, workDim Uint, globalOffset, globalSize, localSize *Size, numWait Uint, waitList, event *Event) Int

	waitForEvents         func(numEvents Uint, events *Event) Int
	getEventInfo          func(event Event, param EventInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	retainEvent           func(event Event) Int
	releaseEvent          func(event Event) Int
	getEventProfilingInfo func(event Event, param ProfilingInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
}

// Hooks carries one optional implementation per entry point. It is the
// single construction seam for an API: the loader fills it from
// resolved symbols, and test fakes fill it with Go functions. Nil
// fields become missing entry points.
type Hooks struct {
	GetPlatformIDs  func(numEntries Uint, platforms *PlatformID, numPlatforms *Uint) Int
	GetPlatformInfo func(platform PlatformID, param PlatformInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	GetDeviceIDs    func(platform PlatformID, deviceType DeviceTypeFlags, numEntries Uint, devices *DeviceID, numDevices *Uint) Int
	GetDeviceInfo   func(device DeviceID, param DeviceInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	CreateContext  func(properties *ContextProperty, numDevices Uint, devices *DeviceID, notify uintptr, userData unsafe.Pointer, errcodeRet *Int) Context
	RetainContext  func(ctx Context) Int
	ReleaseContext func(ctx Context) Int
	GetContextInfo func(ctx Context, param ContextInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	CreateCommandQueue               func(ctx Context, device DeviceID, properties QueueProperties, errcodeRet *Int) CommandQueue
	CreateCommandQueueWithProperties func(ctx Context, device DeviceID, properties *Ulong, errcodeRet *Int) CommandQueue
	RetainCommandQueue               func(queue CommandQueue) Int
	ReleaseCommandQueue              func(queue CommandQueue) Int
	GetCommandQueueInfo              func(queue CommandQueue, param QueueInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	Flush                            func(queue CommandQueue) Int
	Finish                           func(queue CommandQueue) Int

	CreateProgramWithSource func(ctx Context, count Uint, strings **byte, lengths *Size, errcodeRet *Int) Program
	BuildProgram            func(program Program, numDevices Uint, devices *DeviceID, options *byte, notify uintptr, userData unsafe.Pointer) Int
	RetainProgram           func(program Program) Int
	ReleaseProgram          func(program Program) Int
	GetProgramInfo          func(program Program, param ProgramInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	GetProgramBuildInfo     func(program Program, device DeviceID, param ProgramBuildInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	CreateKernel     func(program Program, name *byte, errcodeRet *Int) Kernel
	RetainKernel     func(kernel Kernel) Int
	ReleaseKernel    func(kernel Kernel) Int
	SetKernelArg     func(kernel Kernel, argIndex Uint, argSize Size, argValue unsafe.Pointer) Int
	GetKernelInfo    func(kernel Kernel, param KernelInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	GetKernelArgInfo func(kernel Kernel, argIndex Uint, param KernelArgInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	CreateBuffer     func(ctx Context, flags MemFlags, size Size, hostPtr unsafe.Pointer, errcodeRet *Int) Mem
	RetainMemObject  func(mem Mem) Int
	ReleaseMemObject func(mem Mem) Int
	GetMemObjectInfo func(mem Mem, param MemInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int

	EnqueueReadBuffer    func(queue CommandQueue, mem Mem, blocking Bool, offset, size Size, ptr unsafe.Pointer, numWait Uint, waitList, event *Event) Int
	EnqueueWriteBuffer   func(queue CommandQueue, mem Mem, blocking Bool, offset, size Size, ptr unsafe.Pointer, numWait Uint, waitList, event *Event) Int
	EnqueueCopyBuffer    func(queue CommandQueue, src, dst Mem, srcOffset, dstOffset, size Size, numWait Uint, waitList, event *Event) Int
	EnqueueFillBuffer    func(queue CommandQueue, mem Mem, pattern unsafe.Pointer, patternSize, offset, size Size, numWait Uint, waitList, event *Event) Int
	EnqueueNDRangeKernel func(queue CommandQueue, kernel Kernel, workDim Uint, globalOffset, globalSize, localSize *Size, numWait Uint, waitList, event *Event) Int

	WaitForEvents         func(numEvents Uint, events *Event) Int
	GetEventInfo          func(event Event, param EventInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
	RetainEvent           func(event Event) Int
	ReleaseEvent          func(event Event) Int
	GetEventProfilingInfo func(event Event, param ProfilingInfo, size Size, value unsafe.Pointer, sizeRet *Size) Int
}

// hookFields maps symbol names to accessors over a Hooks value. The
// assign closure copies a hook into the matching functions field and
// reports whether the hook was non-nil.
var hookFields = []struct {
	name   string
	assign func(*functions, *Hooks) bool
}{
	{"clGetPlatformIDs", func(f *functions, h *Hooks) bool { f.getPlatformIDs = h.GetPlatformIDs; return h.GetPlatformIDs != nil }},
	{"clGetPlatformInfo", func(f *functions, h *Hooks) bool { f.getPlatformInfo = h.GetPlatformInfo; return h.GetPlatformInfo != nil }},
	{"clGetDeviceIDs", func(f *functions, h *Hooks) bool { f.getDeviceIDs = h.GetDeviceIDs; return h.GetDeviceIDs != nil }},
	{"clGetDeviceInfo", func(f *functions, h *Hooks) bool { f.getDeviceInfo = h.GetDeviceInfo; return h.GetDeviceInfo != nil }},
	{"clCreateContext", func(f *functions, h *Hooks) bool { f.createContext = h.CreateContext; return h.CreateContext != nil }},
	{"clRetainContext", func(f *functions, h *Hooks) bool { f.retainContext = h.RetainContext; return h.RetainContext != nil }},
	{"clReleaseContext", func(f *functions, h *Hooks) bool { f.releaseContext = h.ReleaseContext; return h.ReleaseContext != nil }},
	{"clGetContextInfo", func(f *functions, h *Hooks) bool { f.getContextInfo = h.GetContextInfo; return h.GetContextInfo != nil }},
	{"clCreateCommandQueue", func(f *functions, h *Hooks) bool { f.createCommandQueue = h.CreateCommandQueue; return h.CreateCommandQueue != nil }},
	{"clCreateCommandQueueWithProperties", func(f *functions, h *Hooks) bool {
		f.createCommandQueueWithProperties = h.CreateCommandQueueWithProperties
		return h.CreateCommandQueueWithProperties != nil
	}},
	{"clRetainCommandQueue", func(f *functions, h *Hooks) bool { f.retainCommandQueue = h.RetainCommandQueue; return h.RetainCommandQueue != nil }},
	{"clReleaseCommandQueue", func(f *functions, h *Hooks) bool { f.releaseCommandQueue = h.ReleaseCommandQueue; return h.ReleaseCommandQueue != nil }},
	{"clGetCommandQueueInfo", func(f *functions, h *Hooks) bool { f.getCommandQueueInfo = h.GetCommandQueueInfo; return h.GetCommandQueueInfo != nil }},
	{"clFlush", func(f *functions, h *Hooks) bool { f.flush = h.Flush; return h.Flush != nil }},
	{"clFinish", func(f *functions, h *Hooks) bool { f.finish = h.Finish; return h.Finish != nil }},
	{"clCreateProgramWithSource", func(f *functions, h *Hooks) bool {
		f.createProgramWithSource = h.CreateProgramWithSource
		return h.CreateProgramWithSource != nil
	}},
	{"clBuildProgram", func(f *functions, h *Hooks) bool { f.buildProgram = h.BuildProgram; return h.BuildProgram != nil }},
	{"clRetainProgram", func(f *functions, h *Hooks) bool { f.retainProgram = h.RetainProgram; return h.RetainProgram != nil }},
	{"clReleaseProgram", func(f *functions, h *Hooks) bool { f.releaseProgram = h.ReleaseProgram; return h.ReleaseProgram != nil }},
	{"clGetProgramInfo", func(f *functions, h *Hooks) bool { f.getProgramInfo = h.GetProgramInfo; return h.GetProgramInfo != nil }},
	{"clGetProgramBuildInfo", func(f *functions, h *Hooks) bool { f.getProgramBuildInfo = h.GetProgramBuildInfo; return h.GetProgramBuildInfo != nil }},
	{"clCreateKernel", func(f *functions, h *Hooks) bool { f.createKernel = h.CreateKernel; return h.CreateKernel != nil }},
	{"clRetainKernel", func(f *functions, h *Hooks) bool { f.retainKernel = h.RetainKernel; return h.RetainKernel != nil }},
	{"clReleaseKernel", func(f *functions, h *Hooks) bool { f.releaseKernel = h.ReleaseKernel; return h.ReleaseKernel != nil }},
	{"clSetKernelArg", func(f *functions, h *Hooks) bool { f.setKernelArg = h.SetKernelArg; return h.SetKernelArg != nil }},
	{"clGetKernelInfo", func(f *functions, h *Hooks) bool { f.getKernelInfo = h.GetKernelInfo; return h.GetKernelInfo != nil }},
	{"clGetKernelArgInfo", func(f *functions, h *Hooks) bool { f.getKernelArgInfo = h.GetKernelArgInfo; return h.GetKernelArgInfo != nil }},
	{"clCreateBuffer", func(f *functions, h *Hooks) bool { f.createBuffer = h.CreateBuffer; return h.CreateBuffer != nil }},
	{"clRetainMemObject", func(f *functions, h *Hooks) bool { f.retainMemObject = h.RetainMemObject; return h.RetainMemObject != nil }},
	{"clReleaseMemObject", func(f *functions, h *Hooks) bool { f.releaseMemObject = h.ReleaseMemObject; return h.ReleaseMemObject != nil }},
	{"clGetMemObjectInfo", func(f *functions, h *Hooks) bool { f.getMemObjectInfo = h.GetMemObjectInfo; return h.GetMemObjectInfo != nil }},
	{"clEnqueueReadBuffer", func(f *functions, h *Hooks) bool { f.enqueueReadBuffer = h.EnqueueReadBuffer; return h.EnqueueReadBuffer != nil }},
	{"clEnqueueWriteBuffer", func(f *functions, h *Hooks) bool { f.enqueueWriteBuffer = h.EnqueueWriteBuffer; return h.EnqueueWriteBuffer != nil }},
	{"clEnqueueCopyBuffer", func(f *functions, h *Hooks) bool { f.enqueueCopyBuffer = h.EnqueueCopyBuffer; return h.EnqueueCopyBuffer != nil }},
	{"clEnqueueFillBuffer", func(f *functions, h *Hooks) bool { f.enqueueFillBuffer = h.EnqueueFillBuffer; return h.EnqueueFillBuffer != nil }},
	{"clEnqueueNDRangeKernel", func(f *functions, h *Hooks) bool { f.enqueueNDRangeKernel = h.EnqueueNDRangeKernel; return h.EnqueueNDRangeKernel != nil }},
	{"clWaitForEvents", func(f *functions, h *Hooks) bool { f.waitForEvents = h.WaitForEvents; return h.WaitForEvents != nil }},
	{"clGetEventInfo", func(f *functions, h *Hooks) bool { f.getEventInfo = h.GetEventInfo; return h.GetEventInfo != nil }},
	{"clRetainEvent", func(f *functions, h *Hooks) bool { f.retainEvent = h.RetainEvent; return h.RetainEvent != nil }},
	{"clReleaseEvent", func(f *functions, h *Hooks) bool { f.releaseEvent = h.ReleaseEvent; return h.ReleaseEvent != nil }},
	{"clGetEventProfilingInfo", func(f *functions, h *Hooks) bool {
		f.getEventProfilingInfo = h.GetEventProfilingInfo
		return h.GetEventProfilingInfo != nil
	}},
}

// NewAPI builds an entry-point table from the given hooks. Nil hooks
// become missing entry points whose guarded wrappers return
// UnsupportedError. The loader and test fakes share this constructor.
func NewAPI(hooks Hooks, version Version) *API {
	a := &API{
		present: make(map[string]bool, len(hookFields)),
		addrs:   make(map[string]uintptr),
		version: version,
	}
	for _, hf := range hookFields {
		a.present[hf.name] = hf.assign(&a.fn, &hooks)
	}
	return a
}

// SymbolNames returns the names of all entry points this package knows,
// in table order.
func SymbolNames() []string {
	names := make([]string, len(hookFields))
	for i, hf := range hookFields {
		names[i] = hf.name
	}
	return names
}
