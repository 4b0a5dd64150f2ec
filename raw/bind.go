package raw

import "github.com/ebitengine/purego"

// registerFuncs maps each entry point to a closure that binds its
// resolved address into the matching Hooks field. purego.RegisterFunc
// generates the ABI trampoline once per symbol at load time, so bound
// calls carry no per-call reflection cost.
var registerFuncs = map[string]func(h *Hooks, addr uintptr){
	"clGetPlatformIDs":  func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetPlatformIDs, addr) },
	"clGetPlatformInfo": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetPlatformInfo, addr) },
	"clGetDeviceIDs":    func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetDeviceIDs, addr) },
	"clGetDeviceInfo":   func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetDeviceInfo, addr) },

	"clCreateContext":  func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.CreateContext, addr) },
	"clRetainContext":  func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.RetainContext, addr) },
	"clReleaseContext": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.ReleaseContext, addr) },
	"clGetContextInfo": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetContextInfo, addr) },

	"clCreateCommandQueue":               func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.CreateCommandQueue, addr) },
	"clCreateCommandQueueWithProperties": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.CreateCommandQueueWithProperties, addr) },
	"clRetainCommandQueue":               func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.RetainCommandQueue, addr) },
	"clReleaseCommandQueue":              func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.ReleaseCommandQueue, addr) },
	"clGetCommandQueueInfo":              func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetCommandQueueInfo, addr) },
	"clFlush":                            func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.Flush, addr) },
	"clFinish":                           func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.Finish, addr) },

	"clCreateProgramWithSource": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.CreateProgramWithSource, addr) },
	"clBuildProgram":            func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.BuildProgram, addr) },
	"clRetainProgram":           func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.RetainProgram, addr) },
	"clReleaseProgram":          func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.ReleaseProgram, addr) },
	"clGetProgramInfo":          func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetProgramInfo, addr) },
	"clGetProgramBuildInfo":     func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetProgramBuildInfo, addr) },

	"clCreateKernel":     func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.CreateKernel, addr) },
	"clRetainKernel":     func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.RetainKernel, addr) },
	"clReleaseKernel":    func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.ReleaseKernel, addr) },
	"clSetKernelArg":     func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.SetKernelArg, addr) },
	"clGetKernelInfo":    func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetKernelInfo, addr) },
	"clGetKernelArgInfo": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetKernelArgInfo, addr) },

	"clCreateBuffer":     func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.CreateBuffer, addr) },
	"clRetainMemObject":  func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.RetainMemObject, addr) },
	"clReleaseMemObject": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.ReleaseMemObject, addr) },
	"clGetMemObjectInfo": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetMemObjectInfo, addr) },

	"clEnqueueReadBuffer":    func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.EnqueueReadBuffer, addr) },
	"clEnqueueWriteBuffer":   func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.EnqueueWriteBuffer, addr) },
	"clEnqueueCopyBuffer":    func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.EnqueueCopyBuffer, addr) },
	"clEnqueueFillBuffer":    func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.EnqueueFillBuffer, addr) },
	"clEnqueueNDRangeKernel": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.EnqueueNDRangeKernel, addr) },

	"clWaitForEvents":         func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.WaitForEvents, addr) },
	"clGetEventInfo":          func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetEventInfo, addr) },
	"clRetainEvent":           func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.RetainEvent, addr) },
	"clReleaseEvent":          func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.ReleaseEvent, addr) },
	"clGetEventProfilingInfo": func(h *Hooks, addr uintptr) { purego.RegisterFunc(&h.GetEventProfilingInfo, addr) },
}

// bindHooks resolves every known entry point against the open library
// and binds the ones that exist. Missing symbols stay nil in the
// returned Hooks; the address map records what resolved.
func bindHooks(handle uintptr) (Hooks, map[string]uintptr) {
	var hooks Hooks
	addrs := make(map[string]uintptr, len(registerFuncs))
	for _, name := range SymbolNames() {
		addr, ok := lookupSymbol(handle, name)
		if !ok {
			continue
		}
		registerFuncs[name](&hooks, addr)
		addrs[name] = addr
	}
	return hooks, addrs
}
