package cl

import (
	"errors"
	"strings"
	"testing"
)

func TestProgram_BuildSuccess(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	f.DefineKernel("add", "float*", "float*")
	ctx, _ := testQueue(t, f, rt)

	p, err := ctx.CreateProgramFromSource(scaleSource)
	if err != nil {
		t.Fatalf("CreateProgramFromSource() = %v", err)
	}
	defer func() { _ = p.Release() }()

	if err := p.Build(nil, "-cl-fast-relaxed-math"); err != nil {
		t.Fatalf("Build() = %v", err)
	}

	names, err := p.KernelNames()
	if err != nil {
		t.Fatalf("KernelNames() = %v", err)
	}
	if !strings.Contains(names, "scale") || !strings.Contains(names, "add") {
		t.Errorf("KernelNames() = %q, want both kernels listed", names)
	}

	source, err := p.Source()
	if err != nil {
		t.Fatalf("Source() = %v", err)
	}
	if source != scaleSource {
		t.Errorf("Source() did not round-trip: got %d bytes, want %d", len(source), len(scaleSource))
	}
}

func TestProgram_BuildFailureCarriesLog(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.BuildFailureLog = "error: use of undeclared identifier 'foo'"
	ctx, _ := testQueue(t, f, rt)

	p, err := ctx.CreateProgramFromSource("__kernel void broken() { foo; }")
	if err != nil {
		t.Fatalf("CreateProgramFromSource() = %v", err)
	}
	defer func() { _ = p.Release() }()

	err = p.Build(nil, "")
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("Build() = %v, want *BuildError", err)
	}
	if !strings.Contains(buildErr.Log, "undeclared identifier") {
		t.Errorf("BuildError.Log = %q, want compiler diagnostic", buildErr.Log)
	}
	if !strings.Contains(buildErr.Error(), "undeclared identifier") {
		t.Errorf("BuildError.Error() = %q, want log included", buildErr.Error())
	}
}

func TestProgram_EmptySource(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, _ := testQueue(t, f, rt)

	if _, err := ctx.CreateProgramFromSource(""); err == nil {
		t.Error("CreateProgramFromSource(\"\") = nil, want error")
	}
	if got := f.Calls("clCreateProgramWithSource"); got != 0 {
		t.Errorf("clCreateProgramWithSource invoked %d times on empty source, want 0", got)
	}
}

func TestProgram_BuildStatus(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	ctx, _ := testQueue(t, f, rt)

	p, err := ctx.CreateProgramFromSource(scaleSource)
	if err != nil {
		t.Fatalf("CreateProgramFromSource() = %v", err)
	}
	defer func() { _ = p.Release() }()
	if err := p.Build(nil, ""); err != nil {
		t.Fatalf("Build() = %v", err)
	}

	devices, err := p.devicesOfContext()
	if err != nil {
		t.Fatalf("devicesOfContext() = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("devicesOfContext() returned %d devices, want 1", len(devices))
	}

	status, err := p.BuildStatus(devices[0])
	if err != nil {
		t.Fatalf("BuildStatus() = %v", err)
	}
	if status != 0 {
		t.Errorf("BuildStatus() = %d, want CL_BUILD_SUCCESS (0)", status)
	}
}
