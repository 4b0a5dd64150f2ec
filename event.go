package cl

import (
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/cl/raw"
)

// Event tracks the completion of one enqueued command.
type Event struct {
	rt     *Runtime
	handle raw.Event
	guard  releaseGuard

	// done latches once completion has been observed, so later checks
	// skip the native status query.
	done atomic.Bool
}

// Wait blocks until the command the event tracks has completed.
func (e *Event) Wait() error {
	status, err := e.rt.api.WaitForEvents(1, &e.handle)
	if err != nil {
		return err
	}
	if err := apiErr("clWaitForEvents", status); err != nil {
		return err
	}
	e.done.Store(true)
	return nil
}

// Status returns the command execution status (raw.Complete,
// raw.Running, raw.Submitted, raw.Queued, or a negative error code of
// an abnormally terminated command).
func (e *Event) Status() (raw.Int, error) {
	q := func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
		return e.rt.api.GetEventInfo(e.handle, raw.EventCommandExecStatus, size, value, sizeRet)
	}
	return getInfoScalar[raw.Int]("clGetEventInfo", q)
}

// Completed reports whether the command has finished, without blocking.
// When the loaded library cannot report event status, Completed returns
// true only after a successful Wait.
func (e *Event) Completed() bool {
	if e.done.Load() {
		return true
	}
	status, err := e.Status()
	if err != nil {
		return false
	}
	// Negative status means the command terminated abnormally, which
	// still ends its execution.
	if status == raw.Complete || status < 0 {
		e.done.Store(true)
		return true
	}
	return false
}

// Release drops the wrapper's native reference, exactly once.
func (e *Event) Release() error {
	if !e.guard.acquire() {
		return nil
	}
	status, err := e.rt.api.ReleaseEvent(e.handle)
	if err != nil {
		return err
	}
	if err := apiErr("clReleaseEvent", status); err != nil {
		Logger().Warn("cl: error releasing event", "error", err)
		return err
	}
	return nil
}

// ProfilingDuration returns the device-measured execution time of the
// command in nanoseconds. The queue must have been created with
// WithProfiling.
func (e *Event) ProfilingDuration() (uint64, error) {
	fetch := func(param raw.ProfilingInfo) (uint64, error) {
		q := func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
			return e.rt.api.GetEventProfilingInfo(e.handle, param, size, value, sizeRet)
		}
		return getInfoScalar[uint64]("clGetEventProfilingInfo", q)
	}
	start, err := fetch(raw.ProfilingCommandStart)
	if err != nil {
		return 0, err
	}
	end, err := fetch(raw.ProfilingCommandEnd)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// WaitForEvents blocks until every given event has completed. Waiting
// on no events is a no-op.
func WaitForEvents(events ...*Event) error {
	if len(events) == 0 {
		return nil
	}
	rt := events[0].rt
	handles := make([]raw.Event, len(events))
	for i, e := range events {
		handles[i] = e.handle
	}
	status, err := rt.api.WaitForEvents(raw.Uint(len(handles)), &handles[0])
	if err != nil {
		return err
	}
	if err := apiErr("clWaitForEvents", status); err != nil {
		return err
	}
	for _, e := range events {
		e.done.Store(true)
	}
	return nil
}
