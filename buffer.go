package cl

import (
	"runtime"
	"unsafe"

	"github.com/gogpu/cl/raw"
)

// Host access modes. The mode is part of the buffer's type: a
// *Buffer[T, HostReadOnly] has Read but no Write, and a
// *Buffer[T, HostNone] has neither, so a disallowed transfer fails to
// compile rather than at enqueue time. The modes map onto the native
// CL_MEM_HOST_* allocation flags, letting the driver place the memory
// accordingly.
type (
	// HostReadWrite allows both host reads and host writes. This is the
	// default host mode and adds no allocation flags.
	HostReadWrite struct{}

	// HostReadOnly allows host reads only.
	HostReadOnly struct{}

	// HostWriteOnly allows host writes only.
	HostWriteOnly struct{}

	// HostNone forbids all host transfers; the buffer is only touched by
	// kernels and device-side copies.
	HostNone struct{}
)

func (HostReadWrite) hostFlags() raw.MemFlags { return 0 }
func (HostReadOnly) hostFlags() raw.MemFlags  { return raw.MemHostReadOnly }
func (HostWriteOnly) hostFlags() raw.MemFlags { return raw.MemHostWriteOnly }
func (HostNone) hostFlags() raw.MemFlags      { return raw.MemHostNoAccess }

func (HostReadWrite) hostReadable() {}
func (HostReadWrite) hostWritable() {}
func (HostReadOnly) hostReadable()  {}
func (HostWriteOnly) hostWritable() {}

// HostAccess is the constraint satisfied by the four host access modes.
type HostAccess interface {
	HostReadWrite | HostReadOnly | HostWriteOnly | HostNone
	hostFlags() raw.MemFlags
}

// HostReadable is satisfied by modes that permit host reads.
type HostReadable interface {
	HostAccess
	hostReadable()
}

// HostWritable is satisfied by modes that permit host writes.
type HostWritable interface {
	HostAccess
	hostWritable()
}

// Buffer owns one native memory object holding n elements of T on the
// device. T fixes the element type for transfers and for kernel
// argument type checking; H fixes the host access mode.
type Buffer[T Pod, H HostAccess] struct {
	rt     *Runtime
	handle raw.Mem
	n      int
	guard  releaseGuard
}

// BufferOption configures buffer creation beyond the host access mode.
type BufferOption func(*bufferConfig)

type bufferConfig struct {
	deviceFlags raw.MemFlags
	allocHost   bool
}

// WithDeviceReadOnly marks the buffer read-only for kernels.
func WithDeviceReadOnly() BufferOption {
	return func(c *bufferConfig) { c.deviceFlags = raw.MemReadOnly }
}

// WithDeviceWriteOnly marks the buffer write-only for kernels.
func WithDeviceWriteOnly() BufferOption {
	return func(c *bufferConfig) { c.deviceFlags = raw.MemWriteOnly }
}

// WithAllocHostPtr asks the driver to allocate the buffer in
// host-accessible memory.
func WithAllocHostPtr() BufferOption {
	return func(c *bufferConfig) { c.allocHost = true }
}

func buildMemFlags[H HostAccess](cfg bufferConfig, copying bool) raw.MemFlags {
	var h H
	flags := h.hostFlags()
	if cfg.deviceFlags != 0 {
		flags |= cfg.deviceFlags
	} else {
		flags |= raw.MemReadWrite
	}
	if cfg.allocHost {
		flags |= raw.MemAllocHostPtr
	}
	if copying {
		flags |= raw.MemCopyHostPtr
	}
	return flags
}

// CreateBuffer allocates an uninitialized device buffer of n elements
// of T. The caller owns the returned buffer and must Release it.
func CreateBuffer[T Pod, H HostAccess](ctx *Context, n int, opts ...BufferOption) (*Buffer[T, H], error) {
	if n <= 0 {
		return nil, apiErr("clCreateBuffer", raw.ErrInvalidBufferSize)
	}
	var cfg bufferConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var elem T
	size := raw.Size(n) * raw.Size(unsafe.Sizeof(elem))

	var status raw.Int
	handle, err := ctx.rt.api.CreateBuffer(ctx.handle, buildMemFlags[H](cfg, false), size, nil, &status)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clCreateBuffer", status); err != nil {
		return nil, err
	}
	return &Buffer[T, H]{rt: ctx.rt, handle: handle, n: n}, nil
}

// CreateBufferFrom allocates a device buffer initialized with a copy of
// data. The slice is only read during the call.
func CreateBufferFrom[T Pod, H HostAccess](ctx *Context, data []T, opts ...BufferOption) (*Buffer[T, H], error) {
	if len(data) == 0 {
		return nil, apiErr("clCreateBuffer", raw.ErrInvalidBufferSize)
	}
	var cfg bufferConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var elem T
	size := raw.Size(len(data)) * raw.Size(unsafe.Sizeof(elem))

	var status raw.Int
	handle, err := ctx.rt.api.CreateBuffer(
		ctx.handle, buildMemFlags[H](cfg, true), size,
		unsafe.Pointer(unsafe.SliceData(data)), &status,
	)
	runtime.KeepAlive(data)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clCreateBuffer", status); err != nil {
		return nil, err
	}
	return &Buffer[T, H]{rt: ctx.rt, handle: handle, n: len(data)}, nil
}

// Len returns the buffer's element count.
func (b *Buffer[T, H]) Len() int { return b.n }

// ByteSize returns the buffer's size in bytes.
func (b *Buffer[T, H]) ByteSize() int {
	var elem T
	return b.n * int(unsafe.Sizeof(elem))
}

// Handle returns the native memory object handle.
func (b *Buffer[T, H]) Handle() raw.Mem { return b.handle }

// Clone retains the native memory object and returns a new wrapper
// owning the added reference.
func (b *Buffer[T, H]) Clone() (*Buffer[T, H], error) {
	status, err := b.rt.api.RetainMemObject(b.handle)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clRetainMemObject", status); err != nil {
		return nil, err
	}
	return &Buffer[T, H]{rt: b.rt, handle: b.handle, n: b.n}, nil
}

// Release drops the wrapper's native reference, exactly once.
func (b *Buffer[T, H]) Release() error {
	if !b.guard.acquire() {
		return nil
	}
	status, err := b.rt.api.ReleaseMemObject(b.handle)
	if err != nil {
		return err
	}
	if err := apiErr("clReleaseMemObject", status); err != nil {
		Logger().Warn("cl: error releasing buffer", "error", err)
		return err
	}
	return nil
}

func (b *Buffer[T, H]) query(param raw.MemInfo) infoQuery {
	return func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
		return b.rt.api.GetMemObjectInfo(b.handle, param, size, value, sizeRet)
	}
}

// Flags returns the allocation flag bits the buffer was created with.
func (b *Buffer[T, H]) Flags() (raw.MemFlags, error) {
	return getInfoScalar[raw.MemFlags]("clGetMemObjectInfo", b.query(raw.MemFlagsInfo))
}

// ReferenceCount returns the native reference count. Only useful for
// debugging.
func (b *Buffer[T, H]) ReferenceCount() (uint32, error) {
	return getInfoScalar[uint32]("clGetMemObjectInfo", b.query(raw.MemReferenceCount))
}

// checkRange validates an element range against the buffer length.
func (b *Buffer[T, H]) checkRange(offset, count int) error {
	if offset < 0 || count < 0 || offset+count > b.n {
		return &OutOfBoundsError{Offset: offset, Count: count, Len: b.n}
	}
	return nil
}

// Read blocks until count elements starting at offset have been copied
// from the device into a fresh slice. Only buffers whose host mode
// permits reads have this operation.
func Read[T Pod, H HostReadable](q *Queue, b *Buffer[T, H], offset, count int) ([]T, error) {
	if err := b.checkRange(offset, count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]T, count)
	var elem T
	elemSize := raw.Size(unsafe.Sizeof(elem))
	status, err := q.rt.api.EnqueueReadBuffer(
		q.handle, b.handle, 1,
		raw.Size(offset)*elemSize, raw.Size(count)*elemSize,
		unsafe.Pointer(unsafe.SliceData(out)),
		0, nil, nil,
	)
	runtime.KeepAlive(out)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clEnqueueReadBuffer", status); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadAll reads the whole buffer.
func ReadAll[T Pod, H HostReadable](q *Queue, b *Buffer[T, H]) ([]T, error) {
	return Read(q, b, 0, b.n)
}

// Write blocks until data has been copied to the device starting at
// element offset. Only buffers whose host mode permits writes have this
// operation.
func Write[T Pod, H HostWritable](q *Queue, b *Buffer[T, H], offset int, data []T) error {
	if err := b.checkRange(offset, len(data)); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	var elem T
	elemSize := raw.Size(unsafe.Sizeof(elem))
	status, err := q.rt.api.EnqueueWriteBuffer(
		q.handle, b.handle, 1,
		raw.Size(offset)*elemSize, raw.Size(len(data))*elemSize,
		unsafe.Pointer(unsafe.SliceData(data)),
		0, nil, nil,
	)
	runtime.KeepAlive(data)
	if err != nil {
		return err
	}
	return apiErr("clEnqueueWriteBuffer", status)
}

// ReadInto enqueues a non-blocking read of len(dst) elements starting
// at element offset into dst. The returned event tracks completion;
// dst must not be touched before the event completes, and the caller
// must Release the event.
func ReadInto[T Pod, H HostReadable](q *Queue, b *Buffer[T, H], offset int, dst []T, waitFor ...*Event) (*Event, error) {
	if err := b.checkRange(offset, len(dst)); err != nil {
		return nil, err
	}
	var elem T
	elemSize := raw.Size(unsafe.Sizeof(elem))
	numWait, waitPtr, waitHandles := waitListPtr(waitFor)

	var evt raw.Event
	status, err := q.rt.api.EnqueueReadBuffer(
		q.handle, b.handle, 0,
		raw.Size(offset)*elemSize, raw.Size(len(dst))*elemSize,
		unsafe.Pointer(unsafe.SliceData(dst)),
		numWait, waitPtr, &evt,
	)
	runtime.KeepAlive(waitHandles)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clEnqueueReadBuffer", status); err != nil {
		return nil, err
	}
	return &Event{rt: q.rt, handle: evt}, nil
}

// WriteAsync enqueues a non-blocking write of data starting at element
// offset. The returned event tracks completion; data must not be
// modified before the event completes, and the caller must Release the
// event.
func WriteAsync[T Pod, H HostWritable](q *Queue, b *Buffer[T, H], offset int, data []T, waitFor ...*Event) (*Event, error) {
	if err := b.checkRange(offset, len(data)); err != nil {
		return nil, err
	}
	var elem T
	elemSize := raw.Size(unsafe.Sizeof(elem))
	numWait, waitPtr, waitHandles := waitListPtr(waitFor)

	var evt raw.Event
	status, err := q.rt.api.EnqueueWriteBuffer(
		q.handle, b.handle, 0,
		raw.Size(offset)*elemSize, raw.Size(len(data))*elemSize,
		unsafe.Pointer(unsafe.SliceData(data)),
		numWait, waitPtr, &evt,
	)
	runtime.KeepAlive(waitHandles)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clEnqueueWriteBuffer", status); err != nil {
		return nil, err
	}
	return &Event{rt: q.rt, handle: evt}, nil
}

// Copy enqueues a device-side copy of count elements from src at
// srcOffset to dst at dstOffset. Device copies are not host transfers,
// so any host access modes are allowed on either side. The returned
// event tracks completion; the caller must Release it.
func Copy[T Pod, HS, HD HostAccess](q *Queue, src *Buffer[T, HS], dst *Buffer[T, HD], srcOffset, dstOffset, count int, waitFor ...*Event) (*Event, error) {
	if err := src.checkRange(srcOffset, count); err != nil {
		return nil, err
	}
	if err := dst.checkRange(dstOffset, count); err != nil {
		return nil, err
	}
	var elem T
	elemSize := raw.Size(unsafe.Sizeof(elem))
	numWait, waitPtr, waitHandles := waitListPtr(waitFor)

	var evt raw.Event
	status, err := q.rt.api.EnqueueCopyBuffer(
		q.handle, src.handle, dst.handle,
		raw.Size(srcOffset)*elemSize, raw.Size(dstOffset)*elemSize, raw.Size(count)*elemSize,
		numWait, waitPtr, &evt,
	)
	runtime.KeepAlive(waitHandles)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clEnqueueCopyBuffer", status); err != nil {
		return nil, err
	}
	return &Event{rt: q.rt, handle: evt}, nil
}

// Fill enqueues filling count elements starting at offset with value.
// Requires clEnqueueFillBuffer (OpenCL 1.2+); on older libraries the
// error unwraps to *raw.UnsupportedError. The returned event tracks
// completion; the caller must Release it.
func Fill[T Pod, H HostAccess](q *Queue, b *Buffer[T, H], value T, offset, count int, waitFor ...*Event) (*Event, error) {
	if err := b.checkRange(offset, count); err != nil {
		return nil, err
	}
	elemSize := raw.Size(unsafe.Sizeof(value))
	numWait, waitPtr, waitHandles := waitListPtr(waitFor)

	var evt raw.Event
	status, err := q.rt.api.EnqueueFillBuffer(
		q.handle, b.handle, unsafe.Pointer(&value), elemSize,
		raw.Size(offset)*elemSize, raw.Size(count)*elemSize,
		numWait, waitPtr, &evt,
	)
	runtime.KeepAlive(waitHandles)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clEnqueueFillBuffer", status); err != nil {
		return nil, err
	}
	return &Event{rt: q.rt, handle: evt}, nil
}
