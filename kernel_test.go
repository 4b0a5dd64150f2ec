package cl

import (
	"errors"
	"testing"

	"github.com/gogpu/cl/internal/mockcl"
	"github.com/gogpu/cl/raw"
)

const scaleSource = `
__kernel void scale(float factor, __global float* data) {
	size_t i = get_global_id(0);
	data[i] *= factor;
}
`

// testKernel builds a program exporting the fake's defined kernels and
// creates the named one.
func testKernel(t *testing.T, f *mockcl.Fake, rt *Runtime, name string) (*Context, *Queue, *Kernel) {
	t.Helper()
	ctx, q := testQueue(t, f, rt)

	p, err := ctx.CreateProgramFromSource(scaleSource)
	if err != nil {
		t.Fatalf("CreateProgramFromSource() = %v", err)
	}
	t.Cleanup(func() { _ = p.Release() })
	if err := p.Build(nil, ""); err != nil {
		t.Fatalf("Build() = %v", err)
	}

	k, err := p.CreateKernel(name)
	if err != nil {
		t.Fatalf("CreateKernel(%q) = %v", name, err)
	}
	t.Cleanup(func() { _ = k.Release() })
	return ctx, q, k
}

func TestKernel_NumArgs(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	_, _, k := testKernel(t, f, rt, "scale")

	if k.Name() != "scale" {
		t.Errorf("Name() = %q, want %q", k.Name(), "scale")
	}
	if k.NumArgs() != 2 {
		t.Errorf("NumArgs() = %d, want 2", k.NumArgs())
	}
}

func TestSetArg_TypeMismatchIssuesNoNativeCall(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	_, _, k := testKernel(t, f, rt, "scale")

	err := SetArg(k, 0, int32(3))

	var mismatch *ArgTypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("SetArg() = %v, want *ArgTypeMismatchError", err)
	}
	if mismatch.Index != 0 || mismatch.Expected != "float" || mismatch.Actual != "int" {
		t.Errorf("mismatch = {%d %q %q}, want {0 %q %q}",
			mismatch.Index, mismatch.Expected, mismatch.Actual, "float", "int")
	}
	if got := f.Calls("clSetKernelArg"); got != 0 {
		t.Errorf("clSetKernelArg invoked %d times on rejected bind, want 0", got)
	}
}

func TestSetArg_IntIntoDouble(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("accumulate", "double")
	_, _, k := testKernel(t, f, rt, "accumulate")

	err := SetArg(k, 0, int32(7))

	var mismatch *ArgTypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("SetArg() = %v, want *ArgTypeMismatchError", err)
	}
	if mismatch.Expected != "double" || mismatch.Actual != "int" {
		t.Errorf("mismatch = {%q %q}, want {%q %q}",
			mismatch.Expected, mismatch.Actual, "double", "int")
	}
}

func TestSetArg_Match(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	_, _, k := testKernel(t, f, rt, "scale")

	if err := SetArg(k, 0, float32(2.5)); err != nil {
		t.Fatalf("SetArg() = %v", err)
	}
	if got := f.Calls("clSetKernelArg"); got != 1 {
		t.Errorf("clSetKernelArg invoked %d times, want 1", got)
	}
	if got := f.ArgBytes(k.Handle(), 0); len(got) != 4 {
		t.Errorf("bound argument is %d bytes, want 4", len(got))
	}
}

func TestSetArg_AliasSpelling(t *testing.T) {
	f, rt := newFakeRuntime(t)
	// Some drivers report spelled-out type names.
	f.DefineKernel("mask", "unsigned int")
	_, _, k := testKernel(t, f, rt, "mask")

	if err := SetArg(k, 0, uint32(0xFF)); err != nil {
		t.Fatalf("SetArg() with alias-reported type = %v", err)
	}
}

func TestSetArg_NoSuchSlot(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	_, _, k := testKernel(t, f, rt, "scale")

	err := SetArg(k, 5, float32(1))

	var noSlot *NoSuchSlotError
	if !errors.As(err, &noSlot) {
		t.Fatalf("SetArg() = %v, want *NoSuchSlotError", err)
	}
	if noSlot.Index != 5 || noSlot.NumArgs != 2 {
		t.Errorf("NoSuchSlotError = {%d %d}, want {5 2}", noSlot.Index, noSlot.NumArgs)
	}
	if got := f.Calls("clSetKernelArg"); got != 0 {
		t.Errorf("clSetKernelArg invoked %d times on rejected index, want 0", got)
	}
}

func TestSetBufferArg(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	ctx, _, k := testKernel(t, f, rt, "scale")

	fb, err := CreateBuffer[float32, HostReadWrite](ctx, 8)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = fb.Release() }()

	if err := SetBufferArg(k, 1, fb); err != nil {
		t.Fatalf("SetBufferArg() = %v", err)
	}

	ib, err := CreateBuffer[int32, HostReadWrite](ctx, 8)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = ib.Release() }()

	err = SetBufferArg(k, 1, ib)
	var mismatch *ArgTypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("SetBufferArg() with wrong element type = %v, want *ArgTypeMismatchError", err)
	}
	if mismatch.Expected != "float*" || mismatch.Actual != "int*" {
		t.Errorf("mismatch = {%q %q}, want {%q %q}",
			mismatch.Expected, mismatch.Actual, "float*", "int*")
	}
}

func TestSetArg_UncheckedWhenArgInfoUnavailable(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	f.ArgInfo = false
	_, _, k := testKernel(t, f, rt, "scale")

	// Without argument descriptors the bind degrades to unchecked and
	// goes through even with a mismatched type.
	if err := SetArg(k, 0, int32(3)); err != nil {
		t.Fatalf("SetArg() = %v, want unchecked success", err)
	}
	if got := f.Calls("clSetKernelArg"); got != 1 {
		t.Errorf("clSetKernelArg invoked %d times, want 1", got)
	}
}

func TestKernel_ArgTypeQueriedOnce(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	_, _, k := testKernel(t, f, rt, "scale")

	if err := SetArg(k, 0, float32(1)); err != nil {
		t.Fatalf("SetArg() = %v", err)
	}
	calls := f.Calls("clGetKernelArgInfo")
	if calls == 0 {
		t.Fatal("expected clGetKernelArgInfo on first bind")
	}
	if err := SetArg(k, 0, float32(2)); err != nil {
		t.Fatalf("second SetArg() = %v", err)
	}
	if got := f.Calls("clGetKernelArgInfo"); got != calls {
		t.Errorf("second bind issued %d extra clGetKernelArgInfo calls, want 0", got-calls)
	}
}

func TestKernel_Run(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	ctx, q, k := testKernel(t, f, rt, "scale")

	b, err := CreateBufferFrom[float32, HostReadWrite](ctx, []float32{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("CreateBufferFrom() = %v", err)
	}
	defer func() { _ = b.Release() }()

	if err := SetArg(k, 0, float32(2)); err != nil {
		t.Fatalf("SetArg() = %v", err)
	}
	if err := SetBufferArg(k, 1, b); err != nil {
		t.Fatalf("SetBufferArg() = %v", err)
	}

	evt, err := k.Run(q, []int{4}, nil)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	defer func() { _ = evt.Release() }()

	if err := evt.Wait(); err != nil {
		t.Fatalf("Wait() = %v", err)
	}
	if !evt.Completed() {
		t.Error("Completed() = false after Wait()")
	}
	if got := f.Calls("clEnqueueNDRangeKernel"); got != 1 {
		t.Errorf("clEnqueueNDRangeKernel invoked %d times, want 1", got)
	}
}

func TestKernel_RunValidatesDimensions(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("noop")
	_, q, k := testKernel(t, f, rt, "noop")

	tests := []struct {
		name          string
		global, local []int
	}{
		{"empty global", nil, nil},
		{"four dimensions", []int{1, 2, 3, 4}, nil},
		{"local dimension mismatch", []int{8, 8}, []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := k.Run(q, tt.global, tt.local); err == nil {
				t.Error("Run() = nil, want error")
			}
		})
	}
	if got := f.Calls("clEnqueueNDRangeKernel"); got != 0 {
		t.Errorf("clEnqueueNDRangeKernel invoked %d times on rejected launches, want 0", got)
	}
}

func TestKernel_RebindWhileInFlight(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("scale", "float", "float*")
	f.HoldEvents = true
	ctx, q, k := testKernel(t, f, rt, "scale")

	b, err := CreateBuffer[float32, HostReadWrite](ctx, 4)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = b.Release() }()

	if err := SetArg(k, 0, float32(2)); err != nil {
		t.Fatalf("SetArg() = %v", err)
	}
	if err := SetBufferArg(k, 1, b); err != nil {
		t.Fatalf("SetBufferArg() = %v", err)
	}

	evt, err := k.Run(q, []int{4}, nil)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	defer func() { _ = evt.Release() }()

	// The launch is still in flight: rebinding must be refused.
	if err := SetArg(k, 0, float32(3)); !errors.Is(err, ErrKernelBusy) {
		t.Fatalf("SetArg() while in flight = %v, want ErrKernelBusy", err)
	}

	f.CompleteAll()

	// Completion observed, rebinding allowed again.
	if err := SetArg(k, 0, float32(3)); err != nil {
		t.Fatalf("SetArg() after completion = %v", err)
	}
}

func TestKernel_RunUntrackedWithoutRetainEvent(t *testing.T) {
	f := mockcl.New()
	f.DefineKernel("scale", "float", "float*")
	f.HoldEvents = true
	hooks := f.Hooks()
	hooks.RetainEvent = nil
	rt := NewRuntime(raw.NewAPI(hooks, raw.CL30))
	ctx, q, k := testKernel(t, f, rt, "scale")

	b, err := CreateBuffer[float32, HostReadWrite](ctx, 4)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = b.Release() }()

	if err := SetArg(k, 0, float32(2)); err != nil {
		t.Fatalf("SetArg() = %v", err)
	}
	if err := SetBufferArg(k, 1, b); err != nil {
		t.Fatalf("SetBufferArg() = %v", err)
	}

	evt, err := k.Run(q, []int{4}, nil)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	// The caller owns the only reference and may drop it at any time.
	if err := evt.Release(); err != nil {
		t.Fatalf("Release() = %v", err)
	}

	// With no second event reference the launch goes untracked, so
	// rebinding proceeds without polling the released handle.
	if err := SetArg(k, 0, float32(3)); err != nil {
		t.Fatalf("SetArg() after caller release = %v", err)
	}
}

func TestCreateKernel_ArgQueryFailureReleasesKernel(t *testing.T) {
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

	baseline := f.Live()
	f.FailNext("clGetKernelInfo", raw.ErrOutOfResources)

	_, err = p.CreateKernel("scale")
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("CreateKernel() = %v, want *APIError", err)
	}
	if apiError.Code != raw.ErrOutOfResources {
		t.Errorf("CreateKernel() code = %d, want %d", apiError.Code, raw.ErrOutOfResources)
	}

	// The half-constructed kernel must not leak a native reference.
	if got := f.Calls("clReleaseKernel"); got != 1 {
		t.Errorf("clReleaseKernel invoked %d times, want 1", got)
	}
	if got := f.Live(); got != baseline {
		t.Errorf("Live() = %d after failed CreateKernel, want baseline %d", got, baseline)
	}
}

func TestCreateKernel_UnknownName(t *testing.T) {
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

	_, err = p.CreateKernel("does_not_exist")
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("CreateKernel() = %v, want *APIError", err)
	}
	if apiError.Code != raw.ErrInvalidKernelName {
		t.Errorf("CreateKernel() code = %d, want %d", apiError.Code, raw.ErrInvalidKernelName)
	}
}
