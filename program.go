package cl

import (
	"strings"
	"unsafe"

	"github.com/gogpu/cl/raw"
)

// Program owns one native program handle. Programs are compiled from
// OpenCL C source (or loaded from binaries by the native layer) and
// export kernels.
type Program struct {
	rt     *Runtime
	handle raw.Program
	guard  releaseGuard
}

// CreateProgramFromSource creates a program from OpenCL C source text.
// The program must be built with Build before kernels can be created
// from it. The caller owns the returned program and must Release it.
func (c *Context) CreateProgramFromSource(source string) (*Program, error) {
	src := []byte(source)
	if len(src) == 0 {
		return nil, apiErr("clCreateProgramWithSource", raw.ErrInvalidValue)
	}
	ptr := unsafe.SliceData(src)
	length := uintptr(len(src))

	var status raw.Int
	handle, err := c.rt.api.CreateProgramWithSource(c.handle, 1, &ptr, &length, &status)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clCreateProgramWithSource", status); err != nil {
		return nil, err
	}
	return &Program{rt: c.rt, handle: handle}, nil
}

// Build compiles the program for the given devices with the given
// compiler options. Passing no devices builds for all devices of the
// program's context. On compilation failure the returned error is a
// *BuildError carrying the build log.
func (p *Program) Build(devices []Device, options string) error {
	var numDevices raw.Uint
	var devPtr *raw.DeviceID
	var ids []raw.DeviceID
	if len(devices) > 0 {
		ids = make([]raw.DeviceID, len(devices))
		for i, d := range devices {
			ids[i] = d.id
		}
		numDevices = raw.Uint(len(ids))
		devPtr = &ids[0]
	}

	var optPtr *byte
	if options != "" {
		opt := append([]byte(options), 0)
		optPtr = &opt[0]
	}

	status, err := p.rt.api.BuildProgram(p.handle, numDevices, devPtr, optPtr, 0, nil)
	if err != nil {
		return err
	}
	if status == raw.Success {
		return nil
	}

	// Collect build logs for diagnostics; a log fetch failure must not
	// mask the build failure itself.
	var logs []string
	targets := devices
	if len(targets) == 0 {
		if ctxDevices, err := p.devicesOfContext(); err == nil {
			targets = ctxDevices
		}
	}
	for _, d := range targets {
		log, err := p.BuildLog(d)
		if err != nil || strings.TrimSpace(log) == "" {
			continue
		}
		logs = append(logs, log)
	}
	return &BuildError{Code: status, Log: strings.Join(logs, "\n")}
}

func (p *Program) devicesOfContext() ([]Device, error) {
	ids, err := getInfoSlice[raw.DeviceID]("clGetProgramInfo", p.query(raw.ProgramDevices))
	if err != nil {
		return nil, err
	}
	devices := make([]Device, len(ids))
	for i, id := range ids {
		devices[i] = Device{rt: p.rt, id: id}
	}
	return devices, nil
}

// BuildLog returns the compiler output for the given device.
func (p *Program) BuildLog(device Device) (string, error) {
	q := func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
		return p.rt.api.GetProgramBuildInfo(p.handle, device.id, raw.ProgramBuildLog, size, value, sizeRet)
	}
	return getInfoString("clGetProgramBuildInfo", q)
}

// BuildStatus returns the build status for the given device.
func (p *Program) BuildStatus(device Device) (raw.Int, error) {
	q := func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
		return p.rt.api.GetProgramBuildInfo(p.handle, device.id, raw.ProgramBuildStatus, size, value, sizeRet)
	}
	return getInfoScalar[raw.Int]("clGetProgramBuildInfo", q)
}

func (p *Program) query(param raw.ProgramInfo) infoQuery {
	return func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error) {
		return p.rt.api.GetProgramInfo(p.handle, param, size, value, sizeRet)
	}
}

// KernelNames returns the semicolon-separated names of the kernels the
// built program exports.
func (p *Program) KernelNames() (string, error) {
	return getInfoString("clGetProgramInfo", p.query(raw.ProgramKernelNames))
}

// Source returns the program's source text.
func (p *Program) Source() (string, error) {
	return getInfoString("clGetProgramInfo", p.query(raw.ProgramSource))
}

// Handle returns the native program handle.
func (p *Program) Handle() raw.Program { return p.handle }

// Clone retains the native program and returns a new wrapper owning
// the added reference.
func (p *Program) Clone() (*Program, error) {
	status, err := p.rt.api.RetainProgram(p.handle)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clRetainProgram", status); err != nil {
		return nil, err
	}
	return &Program{rt: p.rt, handle: p.handle}, nil
}

// Release drops the wrapper's native reference, exactly once.
func (p *Program) Release() error {
	if !p.guard.acquire() {
		return nil
	}
	status, err := p.rt.api.ReleaseProgram(p.handle)
	if err != nil {
		return err
	}
	if err := apiErr("clReleaseProgram", status); err != nil {
		Logger().Warn("cl: error releasing program", "error", err)
		return err
	}
	return nil
}
