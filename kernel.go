package cl

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/gogpu/cl/raw"
)

// Kernel owns one native kernel handle and binds arguments to it with
// host-side type checking.
//
// Argument binding and enqueueing on the same Kernel are synchronized
// internally; sharing a Kernel across goroutines is safe, though the
// native API's queue rules still apply to the queues used.
type Kernel struct {
	rt      *Runtime
	handle  raw.Kernel
	name    string
	numArgs int
	guard   releaseGuard

	mu      sync.Mutex
	pending []*Event
}

// CreateKernel creates the named kernel from a built program. The
// kernel's argument count is queried immediately; per-slot declared
// types are queried lazily on first bind. The caller owns the returned
// kernel and must Release it.
func (p *Program) CreateKernel(name string) (*Kernel, error) {
	cname := append([]byte(name), 0)

	var status raw.Int
	handle, err := p.rt.api.CreateKernel(p.handle, &cname[0], &status)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clCreateKernel", status); err != nil {
		return nil, err
	}

	k := &Kernel{rt: p.rt, handle: handle, name: name}

	q := func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
		return p.rt.api.GetKernelInfo(handle, raw.KernelNumArgs, size, value, sizeRet)
	}
	n, err := getInfoScalar[uint32]("clGetKernelInfo", q)
	if err != nil {
		// The kernel exists; without an argument count the binder
		// cannot validate slots, so fail construction and release.
		if _, relErr := p.rt.api.ReleaseKernel(handle); relErr != nil {
			Logger().Warn("cl: error releasing kernel after failed arg query", "error", relErr)
		}
		return nil, err
	}
	k.numArgs = int(n)
	return k, nil
}

// Name returns the kernel function name.
func (k *Kernel) Name() string { return k.name }

// NumArgs returns the kernel's declared argument count.
func (k *Kernel) NumArgs() int { return k.numArgs }

// Handle returns the native kernel handle.
func (k *Kernel) Handle() raw.Kernel { return k.handle }

// argTypeName returns the declared OpenCL type of the given slot, e.g.
// "float" or "float*". The second return is false when the loaded
// library cannot report argument types (pre-1.2 drivers, or programs
// built without -cl-kernel-arg-info); binding then proceeds unchecked.
func (k *Kernel) argTypeName(index int) (string, bool) {
	key := infoKey{handle: uintptr(k.handle), param: uint32(index), kind: kindKernelArg}
	name, err := k.rt.cachedString(key, func() (string, error) {
		q := func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
			return k.rt.api.GetKernelArgInfo(k.handle, raw.Uint(index), raw.KernelArgTypeName, size, value, sizeRet)
		}
		return getInfoString("clGetKernelArgInfo", q)
	})
	if err != nil {
		Logger().Debug("cl: kernel argument type unavailable, binding unchecked",
			"kernel", k.name, "index", index, "error", err)
		return "", false
	}
	return name, true
}

// checkSlot validates the argument index against the declared count.
func (k *Kernel) checkSlot(index int) error {
	if index < 0 || index >= k.numArgs {
		return &NoSuchSlotError{Index: index, NumArgs: k.numArgs}
	}
	return nil
}

// checkBusy rejects rebinding while any enqueue of this kernel is
// still in flight. Completed events are pruned and released.
func (k *Kernel) checkBusy() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pruneLocked()
}

func (k *Kernel) pruneLocked() error {
	remaining := k.pending[:0]
	for _, e := range k.pending {
		if e.Completed() {
			if err := e.Release(); err != nil {
				Logger().Warn("cl: error releasing completed kernel event", "error", err)
			}
			continue
		}
		remaining = append(remaining, e)
	}
	k.pending = remaining
	if len(k.pending) > 0 {
		return ErrKernelBusy
	}
	return nil
}

// setArgRaw issues the native bind after all host-side checks passed.
func (k *Kernel) setArgRaw(index int, size uintptr, ptr unsafe.Pointer) error {
	status, err := k.rt.api.SetKernelArg(k.handle, raw.Uint(index), size, ptr)
	if err != nil {
		return err
	}
	return apiErr("clSetKernelArg", status)
}

// SetArg binds a scalar value to the given argument slot. The value's
// OpenCL type must match the kernel's declared parameter type; a
// mismatch returns *ArgTypeMismatchError before any native call.
// Binding while a previous enqueue of this kernel has not completed
// returns ErrKernelBusy.
func SetArg[T Pod](k *Kernel, index int, value T) error {
	if err := k.checkSlot(index); err != nil {
		return err
	}
	if err := k.checkBusy(); err != nil {
		return err
	}
	actual := podTypeName[T]()
	if declared, ok := k.argTypeName(index); ok {
		if !typeCompatible(declared, actual, false) {
			return &ArgTypeMismatchError{
				Index:    index,
				Expected: normalizeTypeName(declared),
				Actual:   actual,
			}
		}
	}
	return k.setArgRaw(index, unsafe.Sizeof(value), unsafe.Pointer(&value))
}

// SetBufferArg binds a buffer to the given argument slot. The kernel's
// declared parameter must be a pointer to the buffer's element type.
func SetBufferArg[T Pod, H HostAccess](k *Kernel, index int, b *Buffer[T, H]) error {
	if err := k.checkSlot(index); err != nil {
		return err
	}
	if err := k.checkBusy(); err != nil {
		return err
	}
	actual := podTypeName[T]()
	if declared, ok := k.argTypeName(index); ok {
		if !typeCompatible(declared, actual, true) {
			return &ArgTypeMismatchError{
				Index:    index,
				Expected: normalizeTypeName(declared),
				Actual:   actual + "*",
			}
		}
	}
	return k.setArgRaw(index, unsafe.Sizeof(b.handle), unsafe.Pointer(&b.handle))
}

// Run enqueues the kernel over the given global work size, with an
// optional local work-group size (nil lets the driver choose). The
// returned event tracks completion; the kernel also records it and
// rejects argument rebinding until it completes. Recording needs
// clRetainEvent; on libraries without it enqueues are not tracked and
// rebinding during execution is the caller's responsibility.
func (k *Kernel) Run(q *Queue, global, local []int, waitFor ...*Event) (*Event, error) {
	return k.RunWithOffset(q, nil, global, local, waitFor...)
}

// RunWithOffset is Run with an explicit global work offset.
func (k *Kernel) RunWithOffset(q *Queue, offset, global, local []int, waitFor ...*Event) (*Event, error) {
	if len(global) == 0 || len(global) > 3 {
		return nil, apiErr("clEnqueueNDRangeKernel", raw.ErrInvalidWorkDimension)
	}
	if local != nil && len(local) != len(global) {
		return nil, apiErr("clEnqueueNDRangeKernel", raw.ErrInvalidWorkGroupSize)
	}
	if offset != nil && len(offset) != len(global) {
		return nil, apiErr("clEnqueueNDRangeKernel", raw.ErrInvalidGlobalOffset)
	}

	dim := len(global)
	globalSizes := make([]uintptr, dim)
	for i, g := range global {
		globalSizes[i] = uintptr(g)
	}
	var localPtr *uintptr
	if local != nil {
		localSizes := make([]uintptr, dim)
		for i, l := range local {
			localSizes[i] = uintptr(l)
		}
		localPtr = &localSizes[0]
	}
	var offsetPtr *uintptr
	if offset != nil {
		offsets := make([]uintptr, dim)
		for i, o := range offset {
			offsets[i] = uintptr(o)
		}
		offsetPtr = &offsets[0]
	}

	numWait, waitPtr, waitHandles := waitListPtr(waitFor)

	k.mu.Lock()
	defer k.mu.Unlock()

	var evt raw.Event
	status, err := k.rt.api.EnqueueNDRangeKernel(
		q.handle, k.handle, raw.Uint(dim),
		offsetPtr, &globalSizes[0], localPtr,
		numWait, waitPtr, &evt,
	)
	runtime.KeepAlive(waitHandles)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clEnqueueNDRangeKernel", status); err != nil {
		return nil, err
	}

	e := &Event{rt: k.rt, handle: evt}
	// The caller gets a retained view of the same event so the pending
	// list and the caller can release independently. Without a second
	// reference the handle's lifetime belongs to the caller alone, and
	// polling it after their Release would touch a dead handle, so the
	// enqueue goes untracked.
	statusRetain, err := k.rt.api.RetainEvent(evt)
	if err == nil && statusRetain == raw.Success {
		k.pending = append(k.pending, &Event{rt: k.rt, handle: evt})
	}
	return e, nil
}

// Release drops the wrapper's native reference, exactly once. Cached
// argument descriptors and any tracked events are dropped as well.
func (k *Kernel) Release() error {
	if !k.guard.acquire() {
		return nil
	}

	k.mu.Lock()
	for _, e := range k.pending {
		if err := e.Release(); err != nil {
			Logger().Warn("cl: error releasing tracked kernel event", "error", err)
		}
	}
	k.pending = nil
	k.mu.Unlock()

	params := make([]uint32, k.numArgs)
	for i := range params {
		params[i] = uint32(i)
	}
	k.rt.forgetHandle(uintptr(k.handle), kindKernelArg, params...)

	status, err := k.rt.api.ReleaseKernel(k.handle)
	if err != nil {
		return err
	}
	if err := apiErr("clReleaseKernel", status); err != nil {
		Logger().Warn("cl: error releasing kernel", "error", err)
		return err
	}
	return nil
}
