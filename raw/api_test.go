package raw

import (
	"errors"
	"testing"
	"unsafe"
)

// minimalHooks returns a hook set with only the entry points a bare
// 1.0-era library is guaranteed to export.
func minimalHooks() Hooks {
	return Hooks{
		GetPlatformIDs: func(numEntries Uint, platforms *PlatformID, numPlatforms *Uint) Int {
			if numPlatforms != nil {
				*numPlatforms = 0
			}
			return Success
		},
		CreateContext: func(properties *ContextProperty, numDevices Uint, devices *DeviceID, notify uintptr, userData unsafe.Pointer, errcodeRet *Int) Context {
			if errcodeRet != nil {
				*errcodeRet = ErrInvalidValue
			}
			return 0
		},
	}
}

func TestNewAPI_PresenceTracking(t *testing.T) {
	api := NewAPI(minimalHooks(), CL10)

	if !api.Supported("clGetPlatformIDs") {
		t.Error("Supported(clGetPlatformIDs) = false, want true")
	}
	if api.Supported("clGetKernelArgInfo") {
		t.Error("Supported(clGetKernelArgInfo) = true, want false")
	}
	if api.Supported("clNoSuchSymbol") {
		t.Error("Supported() of unknown symbol = true, want false")
	}

	missing := api.Missing()
	if len(missing) != len(SymbolNames())-2 {
		t.Errorf("Missing() returned %d names, want %d", len(missing), len(SymbolNames())-2)
	}
	for _, name := range missing {
		if name == "clGetPlatformIDs" || name == "clCreateContext" {
			t.Errorf("Missing() lists present symbol %s", name)
		}
	}
}

func TestAPI_MissingEntryPointGuard(t *testing.T) {
	api := NewAPI(minimalHooks(), CL10)

	_, err := api.GetKernelArgInfo(0, 0, KernelArgTypeName, 0, nil, nil)
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("GetKernelArgInfo() = %v, want *UnsupportedError", err)
	}
	if unsupported.Name != "clGetKernelArgInfo" {
		t.Errorf("UnsupportedError.Name = %q, want %q", unsupported.Name, "clGetKernelArgInfo")
	}
}

func TestAPI_PresentEntryPointDispatches(t *testing.T) {
	called := false
	hooks := Hooks{
		Finish: func(queue CommandQueue) Int {
			called = true
			return Success
		},
	}
	api := NewAPI(hooks, CL10)

	status, err := api.Finish(1)
	if err != nil {
		t.Fatalf("Finish() = %v", err)
	}
	if status != Success {
		t.Errorf("Finish() status = %d, want %d", status, Success)
	}
	if !called {
		t.Error("hook was not invoked")
	}
}

func TestAPI_Version(t *testing.T) {
	api := NewAPI(Hooks{}, CL12)
	if got := api.Version(); got != CL12 {
		t.Errorf("Version() = %v, want %v", got, CL12)
	}
}

func TestUnsupportedError_Message(t *testing.T) {
	err := &UnsupportedError{Name: "clEnqueueFillBuffer"}
	want := "raw: clEnqueueFillBuffer is not supported by the loaded OpenCL library"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestVersion_String(t *testing.T) {
	tests := []struct {
		v    Version
		want string
	}{
		{CL10, "OpenCL 1.0"},
		{CL12, "OpenCL 1.2"},
		{CL30, "OpenCL 3.0"},
		{Version(0), "OpenCL (unknown version)"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("Version(%d).String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestSymbolNames_CoreSetPresent(t *testing.T) {
	names := make(map[string]bool)
	for _, n := range SymbolNames() {
		names[n] = true
	}
	for _, core := range []string{
		"clGetPlatformIDs", "clCreateContext", "clCreateBuffer",
		"clSetKernelArg", "clEnqueueNDRangeKernel", "clReleaseEvent",
	} {
		if !names[core] {
			t.Errorf("SymbolNames() missing %s", core)
		}
	}
}
