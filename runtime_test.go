package cl

import (
	"errors"
	"testing"

	"github.com/gogpu/cl/internal/mockcl"
	"github.com/gogpu/cl/raw"
)

// newFakeRuntime wires a Runtime over a fresh fake native layer.
func newFakeRuntime(t *testing.T) (*mockcl.Fake, *Runtime) {
	t.Helper()
	f := mockcl.New()
	return f, NewRuntime(f.API())
}

// testContext creates a context over the fake's single GPU device and
// registers cleanup.
func testContext(t *testing.T, f *mockcl.Fake, rt *Runtime) (*Context, Device) {
	t.Helper()
	platforms, err := rt.Platforms()
	if err != nil {
		t.Fatalf("Platforms() = %v", err)
	}
	if len(platforms) != 1 {
		t.Fatalf("Platforms() returned %d platforms, want 1", len(platforms))
	}
	devices, err := platforms[0].Devices(DeviceGPU)
	if err != nil {
		t.Fatalf("Devices() = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("Devices() returned %d devices, want 1", len(devices))
	}
	ctx, err := platforms[0].CreateContext(devices...)
	if err != nil {
		t.Fatalf("CreateContext() = %v", err)
	}
	t.Cleanup(func() { _ = ctx.Release() })
	return ctx, devices[0]
}

func TestRuntime_Platforms(t *testing.T) {
	_, rt := newFakeRuntime(t)

	platforms, err := rt.Platforms()
	if err != nil {
		t.Fatalf("Platforms() = %v", err)
	}
	if len(platforms) != 1 {
		t.Fatalf("Platforms() returned %d platforms, want 1", len(platforms))
	}

	name, err := platforms[0].Name()
	if err != nil {
		t.Fatalf("Name() = %v", err)
	}
	if name != "MockCL" {
		t.Errorf("Name() = %q, want %q", name, "MockCL")
	}
}

func TestRuntime_Version(t *testing.T) {
	_, rt := newFakeRuntime(t)
	if got := rt.Version(); got != raw.CL30 {
		t.Errorf("Version() = %v, want %v", got, raw.CL30)
	}
}

func TestPlatform_InfoCached(t *testing.T) {
	f, rt := newFakeRuntime(t)
	platforms, err := rt.Platforms()
	if err != nil {
		t.Fatalf("Platforms() = %v", err)
	}
	p := platforms[0]

	if _, err := p.Name(); err != nil {
		t.Fatalf("Name() = %v", err)
	}
	// Size probe plus fetch.
	calls := f.Calls("clGetPlatformInfo")
	if calls == 0 {
		t.Fatal("expected native calls for first Name()")
	}

	if _, err := p.Name(); err != nil {
		t.Fatalf("second Name() = %v", err)
	}
	if got := f.Calls("clGetPlatformInfo"); got != calls {
		t.Errorf("second Name() issued %d extra native calls, want 0", got-calls)
	}
}

func TestPlatform_DevicesNoneMatching(t *testing.T) {
	_, rt := newFakeRuntime(t)
	platforms, err := rt.Platforms()
	if err != nil {
		t.Fatalf("Platforms() = %v", err)
	}

	// The fake exposes only a GPU; asking for CPUs is not an error.
	devices, err := platforms[0].Devices(DeviceCPU)
	if err != nil {
		t.Fatalf("Devices(DeviceCPU) = %v, want empty result", err)
	}
	if len(devices) != 0 {
		t.Errorf("Devices(DeviceCPU) returned %d devices, want 0", len(devices))
	}

	// The all-ones mask still matches.
	devices, err = platforms[0].Devices(DeviceAll)
	if err != nil {
		t.Fatalf("Devices(DeviceAll) = %v", err)
	}
	if len(devices) != 1 {
		t.Errorf("Devices(DeviceAll) returned %d devices, want 1", len(devices))
	}
}

func TestDevice_Info(t *testing.T) {
	f, rt := newFakeRuntime(t)
	_, dev := testContext(t, f, rt)

	info, err := dev.Info()
	if err != nil {
		t.Fatalf("Info() = %v", err)
	}
	if info.Name != "Mock GPU" {
		t.Errorf("Info.Name = %q, want %q", info.Name, "Mock GPU")
	}
	if info.Type&DeviceGPU == 0 {
		t.Errorf("Info.Type = 0x%x, want GPU bit set", uint64(info.Type))
	}
	if info.MaxComputeUnits != 8 {
		t.Errorf("Info.MaxComputeUnits = %d, want 8", info.MaxComputeUnits)
	}
	if info.MaxWorkGroupSize != 256 {
		t.Errorf("Info.MaxWorkGroupSize = %d, want 256", info.MaxWorkGroupSize)
	}
	if info.GlobalMemSize != 1<<30 {
		t.Errorf("Info.GlobalMemSize = %d, want %d", info.GlobalMemSize, 1<<30)
	}
}

func TestInit_NoLibrary(t *testing.T) {
	// Loading an explicit nonexistent path must fail cleanly, not crash.
	_, err := raw.LoadWith(raw.Config{Path: "/nonexistent/libOpenCL.so"})
	if err == nil {
		t.Skip("an OpenCL library resolved unexpectedly")
	}
	if !errors.Is(err, raw.ErrNotFound) {
		t.Errorf("LoadWith() error = %v, want ErrNotFound", err)
	}
}
