package cl

import (
	"testing"

	"github.com/gogpu/cl/raw"
)

func TestEvent_ProfilingDuration(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("noop")
	ctx, dev := testContext(t, f, rt)

	q, err := ctx.CreateQueue(dev, WithProfiling())
	if err != nil {
		t.Fatalf("CreateQueue() = %v", err)
	}
	defer func() { _ = q.Release() }()

	p, err := ctx.CreateProgramFromSource("__kernel void noop() {}")
	if err != nil {
		t.Fatalf("CreateProgramFromSource() = %v", err)
	}
	defer func() { _ = p.Release() }()
	if err := p.Build(nil, ""); err != nil {
		t.Fatalf("Build() = %v", err)
	}
	k, err := p.CreateKernel("noop")
	if err != nil {
		t.Fatalf("CreateKernel() = %v", err)
	}
	defer func() { _ = k.Release() }()

	evt, err := k.Run(q, []int{1}, nil)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	defer func() { _ = evt.Release() }()
	if err := evt.Wait(); err != nil {
		t.Fatalf("Wait() = %v", err)
	}

	// The fake reports start 2000, end 4500.
	d, err := evt.ProfilingDuration()
	if err != nil {
		t.Fatalf("ProfilingDuration() = %v", err)
	}
	if d != 2500 {
		t.Errorf("ProfilingDuration() = %d, want 2500", d)
	}
}

func TestEvent_CompletedLatch(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("noop")
	f.HoldEvents = true
	_, q, k := testKernel(t, f, rt, "noop")

	evt, err := k.Run(q, []int{1}, nil)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	defer func() { _ = evt.Release() }()

	if evt.Completed() {
		t.Fatal("Completed() = true while held")
	}
	status, err := evt.Status()
	if err != nil {
		t.Fatalf("Status() = %v", err)
	}
	if status != raw.Submitted {
		t.Errorf("Status() = %d, want %d", status, raw.Submitted)
	}

	f.CompleteAll()
	if !evt.Completed() {
		t.Fatal("Completed() = false after completion")
	}

	// The latch skips native queries once completion has been observed.
	calls := f.Calls("clGetEventInfo")
	if !evt.Completed() {
		t.Fatal("Completed() flipped back to false")
	}
	if got := f.Calls("clGetEventInfo"); got != calls {
		t.Errorf("latched Completed() issued %d extra native calls, want 0", got-calls)
	}
}

func TestWaitForEvents(t *testing.T) {
	f, rt := newFakeRuntime(t)
	f.DefineKernel("noop")
	f.HoldEvents = true
	_, q, k := testKernel(t, f, rt, "noop")

	first, err := k.Run(q, []int{1}, nil)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	defer func() { _ = first.Release() }()

	f.CompleteAll()

	second, err := k.Run(q, []int{1}, nil)
	if err != nil {
		t.Fatalf("second Run() = %v", err)
	}
	defer func() { _ = second.Release() }()

	if err := WaitForEvents(first, second); err != nil {
		t.Fatalf("WaitForEvents() = %v", err)
	}
	if !first.Completed() || !second.Completed() {
		t.Error("events not completed after WaitForEvents()")
	}

	// Waiting on nothing is a no-op.
	if err := WaitForEvents(); err != nil {
		t.Errorf("WaitForEvents() with no events = %v", err)
	}
}
