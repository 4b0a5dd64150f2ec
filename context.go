package cl

import (
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/cl/raw"
)

// releaseGuard makes Release idempotent: the native release call fires
// exactly once per wrapper no matter how many times or from how many
// goroutines Release is invoked.
type releaseGuard struct {
	released atomic.Bool
}

// acquire reports whether the caller won the right to release.
func (g *releaseGuard) acquire() bool {
	return g.released.CompareAndSwap(false, true)
}

// Context owns one native OpenCL context handle. Contexts group devices
// of one platform and scope programs, buffers and queues.
//
// The wrapper holds exactly one native reference. Release must be
// called when done; Clone takes an additional native reference and
// returns a new independent wrapper.
type Context struct {
	rt     *Runtime
	handle raw.Context
	guard  releaseGuard
}

// Handle returns the native context handle. The handle is only valid
// while the wrapper is unreleased.
func (c *Context) Handle() raw.Context { return c.handle }

// Clone retains the native context and returns a new wrapper owning
// the added reference.
func (c *Context) Clone() (*Context, error) {
	status, err := c.rt.api.RetainContext(c.handle)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clRetainContext", status); err != nil {
		return nil, err
	}
	return &Context{rt: c.rt, handle: c.handle}, nil
}

// Release drops the wrapper's native reference. The first call issues
// clReleaseContext exactly once; further calls are no-ops. A failed
// release is logged and returned but the wrapper still counts as
// released.
func (c *Context) Release() error {
	if !c.guard.acquire() {
		return nil
	}
	status, err := c.rt.api.ReleaseContext(c.handle)
	if err != nil {
		return err
	}
	if err := apiErr("clReleaseContext", status); err != nil {
		Logger().Warn("cl: error releasing context", "error", err)
		return err
	}
	return nil
}

func (c *Context) query(param raw.ContextInfo) infoQuery {
	return func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
		return c.rt.api.GetContextInfo(c.handle, param, size, value, sizeRet)
	}
}

// NumDevices returns the number of devices in the context.
func (c *Context) NumDevices() (uint32, error) {
	return getInfoScalar[uint32]("clGetContextInfo", c.query(raw.ContextNumDevices))
}

// Devices returns the devices the context was created with.
func (c *Context) Devices() ([]Device, error) {
	ids, err := getInfoSlice[raw.DeviceID]("clGetContextInfo", c.query(raw.ContextDevices))
	if err != nil {
		return nil, err
	}
	devices := make([]Device, len(ids))
	for i, id := range ids {
		devices[i] = Device{rt: c.rt, id: id}
	}
	return devices, nil
}

// ReferenceCount returns the native reference count. Only useful for
// debugging.
func (c *Context) ReferenceCount() (uint32, error) {
	return getInfoScalar[uint32]("clGetContextInfo", c.query(raw.ContextReferenceCount))
}
