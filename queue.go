package cl

import (
	"unsafe"

	"github.com/gogpu/cl/raw"
)

// Queue owns one native command-queue handle. Commands (buffer
// transfers, kernel launches) are submitted through a queue and execute
// asynchronously on the device unless a blocking variant is used.
//
// Per the native API, a queue shared by multiple goroutines that
// enqueue concurrently requires external synchronization; this package
// adds none.
type Queue struct {
	rt     *Runtime
	handle raw.CommandQueue
	guard  releaseGuard
}

// QueueOption configures queue creation.
type QueueOption func(*queueConfig)

type queueConfig struct {
	props raw.QueueProperties
}

// WithProfiling enables event profiling on the queue, making event
// timestamps available.
func WithProfiling() QueueOption {
	return func(c *queueConfig) { c.props |= raw.QueueProfilingEnable }
}

// WithOutOfOrderExecution allows the device to reorder commands in the
// queue. Dependencies must then be expressed through events.
func WithOutOfOrderExecution() QueueOption {
	return func(c *queueConfig) { c.props |= raw.QueueOutOfOrderExecModeEnable }
}

// CreateQueue creates a command queue for the given device of this
// context. clCreateCommandQueueWithProperties is used when the loaded
// library has it (OpenCL 2.0+); otherwise the 1.x entry point is used.
// The caller owns the returned queue and must Release it.
func (c *Context) CreateQueue(device Device, opts ...QueueOption) (*Queue, error) {
	var cfg queueConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var status raw.Int
	var handle raw.CommandQueue
	var err error
	if c.rt.api.Supported("clCreateCommandQueueWithProperties") {
		var propsPtr *raw.Ulong
		if cfg.props != 0 {
			props := []raw.Ulong{raw.Ulong(raw.QueuePropertiesInfo), raw.Ulong(cfg.props), 0}
			propsPtr = &props[0]
		}
		handle, err = c.rt.api.CreateCommandQueueWithProperties(c.handle, device.id, propsPtr, &status)
		if err != nil {
			return nil, err
		}
		if err := apiErr("clCreateCommandQueueWithProperties", status); err != nil {
			return nil, err
		}
	} else {
		handle, err = c.rt.api.CreateCommandQueue(c.handle, device.id, cfg.props, &status)
		if err != nil {
			return nil, err
		}
		if err := apiErr("clCreateCommandQueue", status); err != nil {
			return nil, err
		}
	}
	return &Queue{rt: c.rt, handle: handle}, nil
}

// Handle returns the native queue handle.
func (q *Queue) Handle() raw.CommandQueue { return q.handle }

// Clone retains the native queue and returns a new wrapper owning the
// added reference.
func (q *Queue) Clone() (*Queue, error) {
	status, err := q.rt.api.RetainCommandQueue(q.handle)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clRetainCommandQueue", status); err != nil {
		return nil, err
	}
	return &Queue{rt: q.rt, handle: q.handle}, nil
}

// Release drops the wrapper's native reference, exactly once.
func (q *Queue) Release() error {
	if !q.guard.acquire() {
		return nil
	}
	status, err := q.rt.api.ReleaseCommandQueue(q.handle)
	if err != nil {
		return err
	}
	if err := apiErr("clReleaseCommandQueue", status); err != nil {
		Logger().Warn("cl: error releasing command queue", "error", err)
		return err
	}
	return nil
}

// Flush submits all queued commands to the device without waiting for
// completion.
func (q *Queue) Flush() error {
	status, err := q.rt.api.Flush(q.handle)
	if err != nil {
		return err
	}
	return apiErr("clFlush", status)
}

// Finish blocks until all queued commands have completed.
func (q *Queue) Finish() error {
	status, err := q.rt.api.Finish(q.handle)
	if err != nil {
		return err
	}
	return apiErr("clFinish", status)
}

func (q *Queue) query(param raw.QueueInfo) infoQuery {
	return func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
		return q.rt.api.GetCommandQueueInfo(q.handle, param, size, value, sizeRet)
	}
}

// Properties returns the queue property bits the queue was created
// with.
func (q *Queue) Properties() (raw.QueueProperties, error) {
	return getInfoScalar[raw.QueueProperties]("clGetCommandQueueInfo", q.query(raw.QueuePropertiesInfo))
}

// ReferenceCount returns the native reference count. Only useful for
// debugging.
func (q *Queue) ReferenceCount() (uint32, error) {
	return getInfoScalar[uint32]("clGetCommandQueueInfo", q.query(raw.QueueReferenceCount))
}

// waitListPtr flattens a wait list to the (count, pointer) pair the
// native enqueue calls expect.
func waitListPtr(waits []*Event) (raw.Uint, *raw.Event, []raw.Event) {
	if len(waits) == 0 {
		return 0, nil, nil
	}
	handles := make([]raw.Event, len(waits))
	for i, e := range waits {
		handles[i] = e.handle
	}
	return raw.Uint(len(handles)), &handles[0], handles
}
