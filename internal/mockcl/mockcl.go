// Package mockcl provides an in-memory stand-in for a native OpenCL
// library. A Fake produces raw.Hooks backed by Go maps instead of a
// driver, so the packages above the raw layer can be tested without
// any GPU or shared library present.
//
// The fake models one platform with one GPU device, byte-backed
// buffers, refcounted objects, and kernels whose parameter types are
// declared up front with DefineKernel. Per-entry-point call counts and
// one-shot failure injection support behavioral assertions.
package mockcl

import (
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/gogpu/cl/raw"
)

// Fixed handles for the fake's single platform and device.
const (
	PlatformHandle raw.PlatformID = 0x10
	DeviceHandle   raw.DeviceID   = 0x20
)

type kind uint8

const (
	kindContext kind = iota + 1
	kindQueue
	kindProgram
	kindKernel
	kindMem
	kindEvent
)

type object struct {
	kind kind
	refs int

	data  []byte // buffers
	flags raw.MemFlags

	source string // programs
	built  bool

	name     string // kernels
	argTypes []string
	argsSet  map[int][]byte

	status raw.Int // events
	props  raw.QueueProperties
}

// Fake is one simulated OpenCL library instance. The zero value is not
// usable; construct with New. All methods and produced hooks are safe
// for concurrent use.
type Fake struct {
	mu sync.Mutex

	next    uintptr
	objects map[uintptr]*object

	kernels map[string][]string

	calls    map[string]int
	failNext map[string]raw.Int

	// ArgInfo controls whether clGetKernelArgInfo reports declared
	// parameter types. When false it fails with
	// CL_KERNEL_ARG_INFO_NOT_AVAILABLE, as pre-1.2 drivers do.
	ArgInfo bool

	// HoldEvents keeps enqueued kernel events in the submitted state
	// until CompleteAll or a wait; by default commands complete
	// immediately.
	HoldEvents bool

	// BuildFailureLog, when non-empty, makes clBuildProgram fail and
	// surfaces this text as the build log.
	BuildFailureLog string

	PlatformName    string
	PlatformVendor  string
	PlatformVersion string
	DeviceName      string
}

// New returns a fake with one platform, one device, and no kernels
// defined.
func New() *Fake {
	return &Fake{
		next:            0x1000,
		objects:         make(map[uintptr]*object),
		kernels:         make(map[string][]string),
		calls:           make(map[string]int),
		failNext:        make(map[string]raw.Int),
		ArgInfo:         true,
		PlatformName:    "MockCL",
		PlatformVendor:  "mockcl",
		PlatformVersion: "OpenCL 3.0 Mock",
		DeviceName:      "Mock GPU",
	}
}

// DefineKernel declares a kernel and its parameter types, e.g.
// DefineKernel("saxpy", "float", "float*", "float*"). Programs built by
// the fake export all defined kernels.
func (f *Fake) DefineKernel(name string, argTypes ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kernels[name] = argTypes
}

// FailNext makes the next invocation of the named entry point fail with
// the given status code. One shot: later invocations succeed again.
func (f *Fake) FailNext(name string, code raw.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext[name] = code
}

// Calls returns how many times the named entry point has been invoked.
func (f *Fake) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// Live returns the number of objects with a positive reference count.
func (f *Fake) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, o := range f.objects {
		if o.refs > 0 {
			n++
		}
	}
	return n
}

// Refs returns the reference count of the given handle, or 0 for
// unknown handles.
func (f *Fake) Refs(handle uintptr) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.objects[handle]; ok {
		return o.refs
	}
	return 0
}

// BufferBytes returns a copy of a buffer's device-side contents.
func (f *Fake) BufferBytes(mem raw.Mem) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.objects[uintptr(mem)]
	if o == nil || o.kind != kindMem {
		return nil
	}
	out := make([]byte, len(o.data))
	copy(out, o.data)
	return out
}

// ArgBytes returns the raw bytes last bound to a kernel argument slot,
// or nil if the slot has not been set.
func (f *Fake) ArgBytes(kernel raw.Kernel, index int) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.objects[uintptr(kernel)]
	if o == nil || o.kind != kindKernel {
		return nil
	}
	return o.argsSet[index]
}

// CompleteAll marks every live event complete.
func (f *Fake) CompleteAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.objects {
		if o.kind == kindEvent && o.status > raw.Complete {
			o.status = raw.Complete
		}
	}
}

func (f *Fake) alloc(o *object) uintptr {
	h := f.next
	f.next += 0x10
	o.refs = 1
	f.objects[h] = o
	return h
}

// enter records the call and consumes any injected failure. Callers
// must hold f.mu.
func (f *Fake) enter(name string) (raw.Int, bool) {
	f.calls[name]++
	if code, ok := f.failNext[name]; ok {
		delete(f.failNext, name)
		return code, true
	}
	return raw.Success, false
}

func (f *Fake) get(h uintptr, k kind) *object {
	o := f.objects[h]
	if o == nil || o.kind != k || o.refs <= 0 {
		return nil
	}
	return o
}

func (f *Fake) retain(h uintptr, k kind) raw.Int {
	o := f.get(h, k)
	if o == nil {
		return invalidHandleCode(k)
	}
	o.refs++
	return raw.Success
}

func (f *Fake) release(h uintptr, k kind) raw.Int {
	o := f.get(h, k)
	if o == nil {
		return invalidHandleCode(k)
	}
	o.refs--
	if o.refs == 0 {
		delete(f.objects, h)
	}
	return raw.Success
}

func invalidHandleCode(k kind) raw.Int {
	switch k {
	case kindContext:
		return raw.ErrInvalidContext
	case kindQueue:
		return raw.ErrInvalidCommandQueue
	case kindProgram:
		return raw.ErrInvalidProgram
	case kindKernel:
		return raw.ErrInvalidKernel
	case kindMem:
		return raw.ErrInvalidMemObject
	case kindEvent:
		return raw.ErrInvalidEvent
	}
	return raw.ErrInvalidValue
}

// putBytes implements the provider side of the two-call clGet*Info
// protocol.
func putBytes(src []byte, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	if sizeRet != nil {
		*sizeRet = raw.Size(len(src))
	}
	if value == nil {
		return raw.Success
	}
	if size < raw.Size(len(src)) {
		return raw.ErrInvalidValue
	}
	copy(unsafe.Slice((*byte)(value), len(src)), src)
	return raw.Success
}

func putString(s string, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	return putBytes(append([]byte(s), 0), size, value, sizeRet)
}

func putScalar[T any](v T, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	n := raw.Size(unsafe.Sizeof(v))
	if sizeRet != nil {
		*sizeRet = n
	}
	if value == nil {
		return raw.Success
	}
	if size < n {
		return raw.ErrInvalidValue
	}
	*(*T)(value) = v
	return raw.Success
}

func putSlice[T any](vs []T, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	var elem T
	n := raw.Size(len(vs)) * raw.Size(unsafe.Sizeof(elem))
	if sizeRet != nil {
		*sizeRet = n
	}
	if value == nil {
		return raw.Success
	}
	if size < n {
		return raw.ErrInvalidValue
	}
	copy(unsafe.Slice((*T)(value), len(vs)), vs)
	return raw.Success
}

// API builds a ready-to-use entry-point table over the fake.
func (f *Fake) API() *raw.API {
	return raw.NewAPI(f.Hooks(), raw.CL30)
}

// Hooks returns a fully populated hook set over the fake. Tests that
// model partial libraries can nil out fields before calling raw.NewAPI.
func (f *Fake) Hooks() raw.Hooks {
	return raw.Hooks{
		GetPlatformIDs:  f.getPlatformIDs,
		GetPlatformInfo: f.getPlatformInfo,
		GetDeviceIDs:    f.getDeviceIDs,
		GetDeviceInfo:   f.getDeviceInfo,

		CreateContext:  f.createContext,
		RetainContext:  retainHook[raw.Context](f, "clRetainContext", kindContext),
		ReleaseContext: releaseHook[raw.Context](f, "clReleaseContext", kindContext),
		GetContextInfo: f.getContextInfo,

		CreateCommandQueue:               f.createCommandQueue,
		CreateCommandQueueWithProperties: f.createCommandQueueWithProperties,
		RetainCommandQueue:               retainHook[raw.CommandQueue](f, "clRetainCommandQueue", kindQueue),
		ReleaseCommandQueue:              releaseHook[raw.CommandQueue](f, "clReleaseCommandQueue", kindQueue),
		GetCommandQueueInfo:              f.getCommandQueueInfo,
		Flush:                            f.queueNoop("clFlush"),
		Finish:                           f.finish,

		CreateProgramWithSource: f.createProgramWithSource,
		BuildProgram:            f.buildProgram,
		RetainProgram:           retainHook[raw.Program](f, "clRetainProgram", kindProgram),
		ReleaseProgram:          releaseHook[raw.Program](f, "clReleaseProgram", kindProgram),
		GetProgramInfo:          f.getProgramInfo,
		GetProgramBuildInfo:     f.getProgramBuildInfo,

		CreateKernel:     f.createKernel,
		RetainKernel:     retainHook[raw.Kernel](f, "clRetainKernel", kindKernel),
		ReleaseKernel:    releaseHook[raw.Kernel](f, "clReleaseKernel", kindKernel),
		SetKernelArg:     f.setKernelArg,
		GetKernelInfo:    f.getKernelInfo,
		GetKernelArgInfo: f.getKernelArgInfo,

		CreateBuffer:     f.createBuffer,
		RetainMemObject:  retainHook[raw.Mem](f, "clRetainMemObject", kindMem),
		ReleaseMemObject: releaseHook[raw.Mem](f, "clReleaseMemObject", kindMem),
		GetMemObjectInfo: f.getMemObjectInfo,

		EnqueueReadBuffer:    f.enqueueReadBuffer,
		EnqueueWriteBuffer:   f.enqueueWriteBuffer,
		EnqueueCopyBuffer:    f.enqueueCopyBuffer,
		EnqueueFillBuffer:    f.enqueueFillBuffer,
		EnqueueNDRangeKernel: f.enqueueNDRangeKernel,

		WaitForEvents:         f.waitForEvents,
		GetEventInfo:          f.getEventInfo,
		RetainEvent:           retainHook[raw.Event](f, "clRetainEvent", kindEvent),
		ReleaseEvent:          releaseHook[raw.Event](f, "clReleaseEvent", kindEvent),
		GetEventProfilingInfo: f.getEventProfilingInfo,
	}
}

func retainHook[H ~uintptr](f *Fake, name string, k kind) func(H) raw.Int {
	return func(h H) raw.Int {
		f.mu.Lock()
		defer f.mu.Unlock()
		if code, fail := f.enter(name); fail {
			return code
		}
		return f.retain(uintptr(h), k)
	}
}

func releaseHook[H ~uintptr](f *Fake, name string, k kind) func(H) raw.Int {
	return func(h H) raw.Int {
		f.mu.Lock()
		defer f.mu.Unlock()
		if code, fail := f.enter(name); fail {
			return code
		}
		return f.release(uintptr(h), k)
	}
}

func (f *Fake) queueNoop(name string) func(raw.CommandQueue) raw.Int {
	return func(q raw.CommandQueue) raw.Int {
		f.mu.Lock()
		defer f.mu.Unlock()
		if code, fail := f.enter(name); fail {
			return code
		}
		if f.get(uintptr(q), kindQueue) == nil {
			return raw.ErrInvalidCommandQueue
		}
		return raw.Success
	}
}

func (f *Fake) getPlatformIDs(numEntries raw.Uint, platforms *raw.PlatformID, numPlatforms *raw.Uint) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetPlatformIDs"); fail {
		return code
	}
	if numPlatforms != nil {
		*numPlatforms = 1
	}
	if platforms != nil {
		if numEntries < 1 {
			return raw.ErrInvalidValue
		}
		*platforms = PlatformHandle
	}
	return raw.Success
}

func (f *Fake) getPlatformInfo(platform raw.PlatformID, param raw.PlatformInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetPlatformInfo"); fail {
		return code
	}
	if platform != PlatformHandle {
		return raw.ErrInvalidPlatform
	}
	switch param {
	case raw.PlatformName:
		return putString(f.PlatformName, size, value, sizeRet)
	case raw.PlatformVendor:
		return putString(f.PlatformVendor, size, value, sizeRet)
	case raw.PlatformVersion:
		return putString(f.PlatformVersion, size, value, sizeRet)
	case raw.PlatformProfile:
		return putString("FULL_PROFILE", size, value, sizeRet)
	case raw.PlatformExtensions:
		return putString("", size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}

func (f *Fake) getDeviceIDs(platform raw.PlatformID, deviceType raw.DeviceTypeFlags, numEntries raw.Uint, devices *raw.DeviceID, numDevices *raw.Uint) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetDeviceIDs"); fail {
		return code
	}
	if platform != PlatformHandle {
		return raw.ErrInvalidPlatform
	}
	// The all mask is all-ones, so masking with it matches every query;
	// it has to be compared for equality instead.
	if deviceType != raw.DeviceTypeAll && deviceType&(raw.DeviceTypeGPU|raw.DeviceTypeDefault) == 0 {
		return raw.ErrDeviceNotFound
	}
	if numDevices != nil {
		*numDevices = 1
	}
	if devices != nil {
		if numEntries < 1 {
			return raw.ErrInvalidValue
		}
		*devices = DeviceHandle
	}
	return raw.Success
}

func (f *Fake) getDeviceInfo(device raw.DeviceID, param raw.DeviceInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetDeviceInfo"); fail {
		return code
	}
	if device != DeviceHandle {
		return raw.ErrInvalidDevice
	}
	switch param {
	case raw.DeviceName:
		return putString(f.DeviceName, size, value, sizeRet)
	case raw.DeviceVendor:
		return putString(f.PlatformVendor, size, value, sizeRet)
	case raw.DeviceVersionInfo:
		return putString(f.PlatformVersion, size, value, sizeRet)
	case raw.DeviceDriverVersion:
		return putString("1.0-mock", size, value, sizeRet)
	case raw.DeviceExtensions:
		return putString("", size, value, sizeRet)
	case raw.DeviceTypeInfo:
		return putScalar(raw.DeviceTypeGPU, size, value, sizeRet)
	case raw.DeviceAvailable:
		return putScalar(raw.Bool(1), size, value, sizeRet)
	case raw.DeviceMaxComputeUnits:
		return putScalar(raw.Uint(8), size, value, sizeRet)
	case raw.DeviceMaxWorkGroupSize:
		return putScalar(raw.Size(256), size, value, sizeRet)
	case raw.DeviceMaxWorkItemDims:
		return putScalar(raw.Uint(3), size, value, sizeRet)
	case raw.DeviceMaxWorkItemSizes:
		return putSlice([]raw.Size{256, 256, 64}, size, value, sizeRet)
	case raw.DeviceGlobalMemSize:
		return putScalar(raw.Ulong(1<<30), size, value, sizeRet)
	case raw.DeviceLocalMemSize:
		return putScalar(raw.Ulong(48<<10), size, value, sizeRet)
	case raw.DeviceMaxMemAllocSize:
		return putScalar(raw.Ulong(256<<20), size, value, sizeRet)
	case raw.DeviceMaxClockFrequency:
		return putScalar(raw.Uint(1200), size, value, sizeRet)
	case raw.DeviceAddressBits:
		return putScalar(raw.Uint(64), size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}

func (f *Fake) createContext(properties *raw.ContextProperty, numDevices raw.Uint, devices *raw.DeviceID, notify uintptr, userData unsafe.Pointer, errcodeRet *raw.Int) raw.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clCreateContext"); fail {
		setErrcode(errcodeRet, code)
		return 0
	}
	if numDevices == 0 || devices == nil {
		setErrcode(errcodeRet, raw.ErrInvalidValue)
		return 0
	}
	for _, d := range unsafe.Slice(devices, numDevices) {
		if d != DeviceHandle {
			setErrcode(errcodeRet, raw.ErrInvalidDevice)
			return 0
		}
	}
	setErrcode(errcodeRet, raw.Success)
	return raw.Context(f.alloc(&object{kind: kindContext}))
}

func setErrcode(p *raw.Int, code raw.Int) {
	if p != nil {
		*p = code
	}
}

func (f *Fake) getContextInfo(ctx raw.Context, param raw.ContextInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetContextInfo"); fail {
		return code
	}
	o := f.get(uintptr(ctx), kindContext)
	if o == nil {
		return raw.ErrInvalidContext
	}
	switch param {
	case raw.ContextNumDevices:
		return putScalar(raw.Uint(1), size, value, sizeRet)
	case raw.ContextDevices:
		return putSlice([]raw.DeviceID{DeviceHandle}, size, value, sizeRet)
	case raw.ContextReferenceCount:
		return putScalar(raw.Uint(o.refs), size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}

func (f *Fake) createCommandQueue(ctx raw.Context, device raw.DeviceID, properties raw.QueueProperties, errcodeRet *raw.Int) raw.CommandQueue {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clCreateCommandQueue"); fail {
		setErrcode(errcodeRet, code)
		return 0
	}
	return f.newQueue(ctx, device, properties, errcodeRet)
}

func (f *Fake) createCommandQueueWithProperties(ctx raw.Context, device raw.DeviceID, properties *raw.Ulong, errcodeRet *raw.Int) raw.CommandQueue {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clCreateCommandQueueWithProperties"); fail {
		setErrcode(errcodeRet, code)
		return 0
	}
	var props raw.QueueProperties
	if properties != nil {
		// Zero-terminated (key, value) pair list.
		for i := 0; ; i += 2 {
			key := *(*raw.Ulong)(unsafe.Add(unsafe.Pointer(properties), uintptr(i)*unsafe.Sizeof(raw.Ulong(0))))
			if key == 0 {
				break
			}
			val := *(*raw.Ulong)(unsafe.Add(unsafe.Pointer(properties), uintptr(i+1)*unsafe.Sizeof(raw.Ulong(0))))
			if key == raw.Ulong(raw.QueuePropertiesInfo) {
				props = raw.QueueProperties(val)
			}
		}
	}
	return f.newQueue(ctx, device, props, errcodeRet)
}

func (f *Fake) newQueue(ctx raw.Context, device raw.DeviceID, props raw.QueueProperties, errcodeRet *raw.Int) raw.CommandQueue {
	if f.get(uintptr(ctx), kindContext) == nil {
		setErrcode(errcodeRet, raw.ErrInvalidContext)
		return 0
	}
	if device != DeviceHandle {
		setErrcode(errcodeRet, raw.ErrInvalidDevice)
		return 0
	}
	setErrcode(errcodeRet, raw.Success)
	return raw.CommandQueue(f.alloc(&object{kind: kindQueue, props: props}))
}

func (f *Fake) getCommandQueueInfo(q raw.CommandQueue, param raw.QueueInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetCommandQueueInfo"); fail {
		return code
	}
	o := f.get(uintptr(q), kindQueue)
	if o == nil {
		return raw.ErrInvalidCommandQueue
	}
	switch param {
	case raw.QueuePropertiesInfo:
		return putScalar(o.props, size, value, sizeRet)
	case raw.QueueReferenceCount:
		return putScalar(raw.Uint(o.refs), size, value, sizeRet)
	case raw.QueueDeviceInfo:
		return putScalar(DeviceHandle, size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}

func (f *Fake) finish(q raw.CommandQueue) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clFinish"); fail {
		return code
	}
	if f.get(uintptr(q), kindQueue) == nil {
		return raw.ErrInvalidCommandQueue
	}
	for _, o := range f.objects {
		if o.kind == kindEvent && o.status > raw.Complete {
			o.status = raw.Complete
		}
	}
	return raw.Success
}

func (f *Fake) createProgramWithSource(ctx raw.Context, count raw.Uint, strs **byte, lengths *raw.Size, errcodeRet *raw.Int) raw.Program {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clCreateProgramWithSource"); fail {
		setErrcode(errcodeRet, code)
		return 0
	}
	if f.get(uintptr(ctx), kindContext) == nil {
		setErrcode(errcodeRet, raw.ErrInvalidContext)
		return 0
	}
	if count == 0 || strs == nil {
		setErrcode(errcodeRet, raw.ErrInvalidValue)
		return 0
	}
	var src strings.Builder
	ptrs := unsafe.Slice(strs, count)
	var lens []raw.Size
	if lengths != nil {
		lens = unsafe.Slice(lengths, count)
	}
	for i, p := range ptrs {
		if p == nil {
			setErrcode(errcodeRet, raw.ErrInvalidValue)
			return 0
		}
		if lens != nil && lens[i] > 0 {
			src.Write(unsafe.Slice(p, lens[i]))
			continue
		}
		// NUL-terminated
		for b := p; *b != 0; b = (*byte)(unsafe.Add(unsafe.Pointer(b), 1)) {
			src.WriteByte(*b)
		}
	}
	setErrcode(errcodeRet, raw.Success)
	return raw.Program(f.alloc(&object{kind: kindProgram, source: src.String()}))
}

func (f *Fake) buildProgram(program raw.Program, numDevices raw.Uint, devices *raw.DeviceID, options *byte, notify uintptr, userData unsafe.Pointer) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clBuildProgram"); fail {
		return code
	}
	o := f.get(uintptr(program), kindProgram)
	if o == nil {
		return raw.ErrInvalidProgram
	}
	if f.BuildFailureLog != "" {
		o.built = false
		return raw.ErrBuildProgramFailure
	}
	o.built = true
	return raw.Success
}

func (f *Fake) getProgramInfo(program raw.Program, param raw.ProgramInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetProgramInfo"); fail {
		return code
	}
	o := f.get(uintptr(program), kindProgram)
	if o == nil {
		return raw.ErrInvalidProgram
	}
	switch param {
	case raw.ProgramSource:
		return putString(o.source, size, value, sizeRet)
	case raw.ProgramNumDevices:
		return putScalar(raw.Uint(1), size, value, sizeRet)
	case raw.ProgramDevices:
		return putSlice([]raw.DeviceID{DeviceHandle}, size, value, sizeRet)
	case raw.ProgramReferenceCount:
		return putScalar(raw.Uint(o.refs), size, value, sizeRet)
	case raw.ProgramNumKernels:
		return putScalar(raw.Size(len(f.kernels)), size, value, sizeRet)
	case raw.ProgramKernelNames:
		names := make([]string, 0, len(f.kernels))
		for name := range f.kernels {
			names = append(names, name)
		}
		sort.Strings(names)
		return putString(strings.Join(names, ";"), size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}

func (f *Fake) getProgramBuildInfo(program raw.Program, device raw.DeviceID, param raw.ProgramBuildInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetProgramBuildInfo"); fail {
		return code
	}
	o := f.get(uintptr(program), kindProgram)
	if o == nil {
		return raw.ErrInvalidProgram
	}
	if device != DeviceHandle {
		return raw.ErrInvalidDevice
	}
	switch param {
	case raw.ProgramBuildLog:
		if o.built {
			return putString("", size, value, sizeRet)
		}
		return putString(f.BuildFailureLog, size, value, sizeRet)
	case raw.ProgramBuildStatus:
		status := raw.BuildError
		if o.built {
			status = raw.BuildSuccess
		}
		return putScalar(status, size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}

func (f *Fake) createKernel(program raw.Program, name *byte, errcodeRet *raw.Int) raw.Kernel {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clCreateKernel"); fail {
		setErrcode(errcodeRet, code)
		return 0
	}
	o := f.get(uintptr(program), kindProgram)
	if o == nil {
		setErrcode(errcodeRet, raw.ErrInvalidProgram)
		return 0
	}
	if !o.built {
		setErrcode(errcodeRet, raw.ErrInvalidProgramExecutable)
		return 0
	}
	var sb strings.Builder
	for b := name; b != nil && *b != 0; b = (*byte)(unsafe.Add(unsafe.Pointer(b), 1)) {
		sb.WriteByte(*b)
	}
	argTypes, ok := f.kernels[sb.String()]
	if !ok {
		setErrcode(errcodeRet, raw.ErrInvalidKernelName)
		return 0
	}
	setErrcode(errcodeRet, raw.Success)
	return raw.Kernel(f.alloc(&object{
		kind:     kindKernel,
		name:     sb.String(),
		argTypes: argTypes,
		argsSet:  make(map[int][]byte),
	}))
}

func (f *Fake) setKernelArg(kernel raw.Kernel, argIndex raw.Uint, argSize raw.Size, argValue unsafe.Pointer) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clSetKernelArg"); fail {
		return code
	}
	o := f.get(uintptr(kernel), kindKernel)
	if o == nil {
		return raw.ErrInvalidKernel
	}
	if int(argIndex) >= len(o.argTypes) {
		return raw.ErrInvalidArgIndex
	}
	buf := make([]byte, argSize)
	if argValue != nil {
		copy(buf, unsafe.Slice((*byte)(argValue), argSize))
	}
	o.argsSet[int(argIndex)] = buf
	return raw.Success
}

func (f *Fake) getKernelInfo(kernel raw.Kernel, param raw.KernelInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetKernelInfo"); fail {
		return code
	}
	o := f.get(uintptr(kernel), kindKernel)
	if o == nil {
		return raw.ErrInvalidKernel
	}
	switch param {
	case raw.KernelFunctionName:
		return putString(o.name, size, value, sizeRet)
	case raw.KernelNumArgs:
		return putScalar(raw.Uint(len(o.argTypes)), size, value, sizeRet)
	case raw.KernelReferenceCount:
		return putScalar(raw.Uint(o.refs), size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}

func (f *Fake) getKernelArgInfo(kernel raw.Kernel, argIndex raw.Uint, param raw.KernelArgInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetKernelArgInfo"); fail {
		return code
	}
	o := f.get(uintptr(kernel), kindKernel)
	if o == nil {
		return raw.ErrInvalidKernel
	}
	if !f.ArgInfo {
		return raw.ErrKernelArgInfoNotAvailable
	}
	if int(argIndex) >= len(o.argTypes) {
		return raw.ErrInvalidArgIndex
	}
	if param != raw.KernelArgTypeName {
		return raw.ErrInvalidValue
	}
	return putString(o.argTypes[argIndex], size, value, sizeRet)
}

func (f *Fake) createBuffer(ctx raw.Context, flags raw.MemFlags, size raw.Size, hostPtr unsafe.Pointer, errcodeRet *raw.Int) raw.Mem {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clCreateBuffer"); fail {
		setErrcode(errcodeRet, code)
		return 0
	}
	if f.get(uintptr(ctx), kindContext) == nil {
		setErrcode(errcodeRet, raw.ErrInvalidContext)
		return 0
	}
	if size == 0 {
		setErrcode(errcodeRet, raw.ErrInvalidBufferSize)
		return 0
	}
	if flags&(raw.MemCopyHostPtr|raw.MemUseHostPtr) != 0 && hostPtr == nil {
		setErrcode(errcodeRet, raw.ErrInvalidHostPtr)
		return 0
	}
	data := make([]byte, size)
	if flags&(raw.MemCopyHostPtr|raw.MemUseHostPtr) != 0 {
		copy(data, unsafe.Slice((*byte)(hostPtr), size))
	}
	setErrcode(errcodeRet, raw.Success)
	return raw.Mem(f.alloc(&object{kind: kindMem, data: data, flags: flags}))
}

func (f *Fake) getMemObjectInfo(mem raw.Mem, param raw.MemInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetMemObjectInfo"); fail {
		return code
	}
	o := f.get(uintptr(mem), kindMem)
	if o == nil {
		return raw.ErrInvalidMemObject
	}
	switch param {
	case raw.MemFlagsInfo:
		return putScalar(o.flags, size, value, sizeRet)
	case raw.MemSizeInfo:
		return putScalar(raw.Size(len(o.data)), size, value, sizeRet)
	case raw.MemReferenceCount:
		return putScalar(raw.Uint(o.refs), size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}

// newEvent allocates a completed or held event depending on HoldEvents,
// and stores its handle through event if non-nil. Callers hold f.mu.
func (f *Fake) newEvent(event *raw.Event) {
	status := raw.Complete
	if f.HoldEvents {
		status = raw.Submitted
	}
	h := f.alloc(&object{kind: kindEvent, status: status})
	if event != nil {
		*event = raw.Event(h)
	} else {
		// Caller declined the event; drop the reference immediately.
		f.release(h, kindEvent)
	}
}

func (f *Fake) checkWaitList(numWait raw.Uint, waitList *raw.Event) raw.Int {
	if numWait == 0 {
		return raw.Success
	}
	if waitList == nil {
		return raw.ErrInvalidEventWaitList
	}
	for _, e := range unsafe.Slice(waitList, numWait) {
		if f.get(uintptr(e), kindEvent) == nil {
			return raw.ErrInvalidEventWaitList
		}
	}
	return raw.Success
}

func (f *Fake) enqueueReadBuffer(q raw.CommandQueue, mem raw.Mem, blocking raw.Bool, offset, size raw.Size, ptr unsafe.Pointer, numWait raw.Uint, waitList, event *raw.Event) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clEnqueueReadBuffer"); fail {
		return code
	}
	if f.get(uintptr(q), kindQueue) == nil {
		return raw.ErrInvalidCommandQueue
	}
	o := f.get(uintptr(mem), kindMem)
	if o == nil {
		return raw.ErrInvalidMemObject
	}
	if code := f.checkWaitList(numWait, waitList); code != raw.Success {
		return code
	}
	if offset+size > raw.Size(len(o.data)) {
		return raw.ErrInvalidValue
	}
	copy(unsafe.Slice((*byte)(ptr), size), o.data[offset:offset+size])
	if event != nil {
		f.newEvent(event)
	}
	return raw.Success
}

func (f *Fake) enqueueWriteBuffer(q raw.CommandQueue, mem raw.Mem, blocking raw.Bool, offset, size raw.Size, ptr unsafe.Pointer, numWait raw.Uint, waitList, event *raw.Event) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clEnqueueWriteBuffer"); fail {
		return code
	}
	if f.get(uintptr(q), kindQueue) == nil {
		return raw.ErrInvalidCommandQueue
	}
	o := f.get(uintptr(mem), kindMem)
	if o == nil {
		return raw.ErrInvalidMemObject
	}
	if code := f.checkWaitList(numWait, waitList); code != raw.Success {
		return code
	}
	if offset+size > raw.Size(len(o.data)) {
		return raw.ErrInvalidValue
	}
	copy(o.data[offset:offset+size], unsafe.Slice((*byte)(ptr), size))
	if event != nil {
		f.newEvent(event)
	}
	return raw.Success
}

func (f *Fake) enqueueCopyBuffer(q raw.CommandQueue, src, dst raw.Mem, srcOffset, dstOffset, size raw.Size, numWait raw.Uint, waitList, event *raw.Event) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clEnqueueCopyBuffer"); fail {
		return code
	}
	if f.get(uintptr(q), kindQueue) == nil {
		return raw.ErrInvalidCommandQueue
	}
	so := f.get(uintptr(src), kindMem)
	do := f.get(uintptr(dst), kindMem)
	if so == nil || do == nil {
		return raw.ErrInvalidMemObject
	}
	if code := f.checkWaitList(numWait, waitList); code != raw.Success {
		return code
	}
	if srcOffset+size > raw.Size(len(so.data)) || dstOffset+size > raw.Size(len(do.data)) {
		return raw.ErrInvalidValue
	}
	copy(do.data[dstOffset:dstOffset+size], so.data[srcOffset:srcOffset+size])
	f.newEvent(event)
	return raw.Success
}

func (f *Fake) enqueueFillBuffer(q raw.CommandQueue, mem raw.Mem, pattern unsafe.Pointer, patternSize, offset, size raw.Size, numWait raw.Uint, waitList, event *raw.Event) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clEnqueueFillBuffer"); fail {
		return code
	}
	if f.get(uintptr(q), kindQueue) == nil {
		return raw.ErrInvalidCommandQueue
	}
	o := f.get(uintptr(mem), kindMem)
	if o == nil {
		return raw.ErrInvalidMemObject
	}
	if code := f.checkWaitList(numWait, waitList); code != raw.Success {
		return code
	}
	if patternSize == 0 || size%patternSize != 0 || offset+size > raw.Size(len(o.data)) {
		return raw.ErrInvalidValue
	}
	pat := unsafe.Slice((*byte)(pattern), patternSize)
	for i := raw.Size(0); i < size; i += patternSize {
		copy(o.data[offset+i:offset+i+patternSize], pat)
	}
	f.newEvent(event)
	return raw.Success
}

func (f *Fake) enqueueNDRangeKernel(q raw.CommandQueue, kernel raw.Kernel, workDim raw.Uint, globalOffset, globalSize, localSize *raw.Size, numWait raw.Uint, waitList, event *raw.Event) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clEnqueueNDRangeKernel"); fail {
		return code
	}
	if f.get(uintptr(q), kindQueue) == nil {
		return raw.ErrInvalidCommandQueue
	}
	o := f.get(uintptr(kernel), kindKernel)
	if o == nil {
		return raw.ErrInvalidKernel
	}
	if workDim < 1 || workDim > 3 || globalSize == nil {
		return raw.ErrInvalidWorkDimension
	}
	if code := f.checkWaitList(numWait, waitList); code != raw.Success {
		return code
	}
	for i := 0; i < len(o.argTypes); i++ {
		if _, ok := o.argsSet[i]; !ok {
			return raw.ErrInvalidKernelArgs
		}
	}
	f.newEvent(event)
	return raw.Success
}

func (f *Fake) waitForEvents(numEvents raw.Uint, events *raw.Event) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clWaitForEvents"); fail {
		return code
	}
	if numEvents == 0 || events == nil {
		return raw.ErrInvalidValue
	}
	for _, e := range unsafe.Slice(events, numEvents) {
		o := f.get(uintptr(e), kindEvent)
		if o == nil {
			return raw.ErrInvalidEvent
		}
		if o.status > raw.Complete {
			o.status = raw.Complete
		}
	}
	return raw.Success
}

func (f *Fake) getEventInfo(event raw.Event, param raw.EventInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetEventInfo"); fail {
		return code
	}
	o := f.get(uintptr(event), kindEvent)
	if o == nil {
		return raw.ErrInvalidEvent
	}
	switch param {
	case raw.EventCommandExecStatus:
		return putScalar(o.status, size, value, sizeRet)
	case raw.EventReferenceCount:
		return putScalar(raw.Uint(o.refs), size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}

func (f *Fake) getEventProfilingInfo(event raw.Event, param raw.ProfilingInfo, size raw.Size, value unsafe.Pointer, sizeRet *raw.Size) raw.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code, fail := f.enter("clGetEventProfilingInfo"); fail {
		return code
	}
	o := f.get(uintptr(event), kindEvent)
	if o == nil {
		return raw.ErrInvalidEvent
	}
	if o.status != raw.Complete {
		return raw.ErrProfilingInfoNotAvailable
	}
	switch param {
	case raw.ProfilingCommandQueued:
		return putScalar(raw.Ulong(1000), size, value, sizeRet)
	case raw.ProfilingCommandSubmit:
		return putScalar(raw.Ulong(1500), size, value, sizeRet)
	case raw.ProfilingCommandStart:
		return putScalar(raw.Ulong(2000), size, value, sizeRet)
	case raw.ProfilingCommandEnd:
		return putScalar(raw.Ulong(4500), size, value, sizeRet)
	}
	return raw.ErrInvalidValue
}
