package cl

import (
	"errors"
	"testing"

	"github.com/gogpu/cl/internal/mockcl"
	"github.com/gogpu/cl/raw"
)

// The host access mode is part of the buffer's type, so transfers a
// mode forbids do not compile:
//
//	b, _ := CreateBuffer[float32, HostNone](ctx, 16)
//	Read(q, b, 0, 16)  // compile error: HostNone does not satisfy HostReadable
//	Write(q, b, 0, xs) // compile error: HostNone does not satisfy HostWritable
//
// The tests below cover the modes that do compile.

func testQueue(t *testing.T, f *mockcl.Fake, rt *Runtime) (*Context, *Queue) {
	t.Helper()
	ctx, dev := testContext(t, f, rt)
	q, err := ctx.CreateQueue(dev)
	if err != nil {
		t.Fatalf("CreateQueue() = %v", err)
	}
	t.Cleanup(func() { _ = q.Release() })
	return ctx, q
}

func TestBuffer_WriteReadRoundTrip(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, q := testQueue(t, f, rt)

	b, err := CreateBuffer[float32, HostReadWrite](ctx, 8)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = b.Release() }()

	want := []float32{1.5, -2.25, 3, 0, 5.125, -6, 7, 8.5}
	if err := Write(q, b, 0, want); err != nil {
		t.Fatalf("Write() = %v", err)
	}

	got, err := ReadAll(q, b)
	if err != nil {
		t.Fatalf("ReadAll() = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ReadAll() returned %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuffer_AsyncWriteRead(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, q := testQueue(t, f, rt)

	b, err := CreateBuffer[int32, HostReadWrite](ctx, 4)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = b.Release() }()

	wev, err := WriteAsync(q, b, 0, []int32{7, 14, 21, 28})
	if err != nil {
		t.Fatalf("WriteAsync() = %v", err)
	}
	defer func() { _ = wev.Release() }()
	if err := wev.Wait(); err != nil {
		t.Fatalf("Wait() after WriteAsync = %v", err)
	}

	dst := make([]int32, 2)
	rev, err := ReadInto(q, b, 1, dst, wev)
	if err != nil {
		t.Fatalf("ReadInto() = %v", err)
	}
	defer func() { _ = rev.Release() }()
	if err := rev.Wait(); err != nil {
		t.Fatalf("Wait() after ReadInto = %v", err)
	}
	if dst[0] != 14 || dst[1] != 21 {
		t.Errorf("ReadInto(1, len 2) = %v, want [14 21]", dst)
	}

	if err := b.checkRange(3, 2); err == nil {
		t.Error("checkRange(3, 2) on a 4-element buffer passed, want out of bounds")
	}
	if _, err := ReadInto(q, b, 3, dst); err == nil {
		t.Error("ReadInto() past the end succeeded, want *OutOfBoundsError")
	}
}

func TestBuffer_PartialWriteRead(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, q := testQueue(t, f, rt)

	b, err := CreateBuffer[int32, HostReadWrite](ctx, 8)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = b.Release() }()

	if err := Write(q, b, 2, []int32{10, 20, 30}); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	got, err := Read(q, b, 3, 2)
	if err != nil {
		t.Fatalf("Read() = %v", err)
	}
	if got[0] != 20 || got[1] != 30 {
		t.Errorf("Read(3, 2) = %v, want [20 30]", got)
	}
}

func TestBuffer_CreateFrom(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, q := testQueue(t, f, rt)

	want := []uint16{0xBEEF, 0xCAFE, 0x1234}
	b, err := CreateBufferFrom[uint16, HostReadOnly](ctx, want)
	if err != nil {
		t.Fatalf("CreateBufferFrom() = %v", err)
	}
	defer func() { _ = b.Release() }()

	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if b.ByteSize() != 6 {
		t.Errorf("ByteSize() = %d, want 6", b.ByteSize())
	}

	got, err := ReadAll(q, b)
	if err != nil {
		t.Fatalf("ReadAll() = %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestBuffer_OutOfBoundsBeforeNativeCall(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, q := testQueue(t, f, rt)

	b, err := CreateBuffer[float64, HostReadWrite](ctx, 4)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = b.Release() }()

	tests := []struct {
		name string
		err  error
	}{
		{"read past end", func() error { _, err := Read(q, b, 2, 3); return err }()},
		{"read negative offset", func() error { _, err := Read(q, b, -1, 2); return err }()},
		{"write past end", Write(q, b, 3, []float64{1, 2})},
	}
	for _, tt := range tests {
		var oob *OutOfBoundsError
		if !errors.As(tt.err, &oob) {
			t.Errorf("%s: error = %v, want *OutOfBoundsError", tt.name, tt.err)
		}
	}

	if got := f.Calls("clEnqueueReadBuffer"); got != 0 {
		t.Errorf("clEnqueueReadBuffer invoked %d times on rejected ranges, want 0", got)
	}
	if got := f.Calls("clEnqueueWriteBuffer"); got != 0 {
		t.Errorf("clEnqueueWriteBuffer invoked %d times on rejected ranges, want 0", got)
	}
}

func TestBuffer_HostNoneFlags(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, _ := testQueue(t, f, rt)

	b, err := CreateBuffer[int32, HostNone](ctx, 4, WithDeviceReadOnly())
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = b.Release() }()

	flags, err := b.Flags()
	if err != nil {
		t.Fatalf("Flags() = %v", err)
	}
	if flags&raw.MemHostNoAccess == 0 {
		t.Errorf("Flags() = 0x%x, want host-no-access bit set", uint64(flags))
	}
	if flags&raw.MemReadOnly == 0 {
		t.Errorf("Flags() = 0x%x, want device read-only bit set", uint64(flags))
	}
}

func TestBuffer_Copy(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, q := testQueue(t, f, rt)

	src, err := CreateBufferFrom[int32, HostWriteOnly](ctx, []int32{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("CreateBufferFrom() = %v", err)
	}
	defer func() { _ = src.Release() }()

	dst, err := CreateBuffer[int32, HostReadOnly](ctx, 4)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = dst.Release() }()

	evt, err := Copy(q, src, dst, 1, 0, 3)
	if err != nil {
		t.Fatalf("Copy() = %v", err)
	}
	if err := evt.Wait(); err != nil {
		t.Fatalf("Wait() = %v", err)
	}
	defer func() { _ = evt.Release() }()

	got, err := Read(q, dst, 0, 3)
	if err != nil {
		t.Fatalf("Read() = %v", err)
	}
	want := []int32{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBuffer_Fill(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, q := testQueue(t, f, rt)

	b, err := CreateBuffer[uint32, HostReadWrite](ctx, 6)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = b.Release() }()

	evt, err := Fill(q, b, uint32(0xAB), 1, 4)
	if err != nil {
		t.Fatalf("Fill() = %v", err)
	}
	defer func() { _ = evt.Release() }()

	got, err := ReadAll(q, b)
	if err != nil {
		t.Fatalf("ReadAll() = %v", err)
	}
	want := []uint32{0, 0xAB, 0xAB, 0xAB, 0xAB, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestBuffer_FillUnsupportedOnOldLibrary(t *testing.T) {
	f, rt := newFakeRuntime(t)

	hooks := f.Hooks()
	hooks.EnqueueFillBuffer = nil
	rt = NewRuntime(raw.NewAPI(hooks, raw.CL11))

	ctx, q := testQueue(t, f, rt)
	b, err := CreateBuffer[uint32, HostReadWrite](ctx, 4)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	defer func() { _ = b.Release() }()

	_, err = Fill(q, b, uint32(1), 0, 4)
	var unsupported *raw.UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Fill() error = %v, want *raw.UnsupportedError", err)
	}
	if unsupported.Name != "clEnqueueFillBuffer" {
		t.Errorf("UnsupportedError.Name = %q, want %q", unsupported.Name, "clEnqueueFillBuffer")
	}
}

func TestBuffer_CloneBalancesReferences(t *testing.T) {
	f, rt := newFakeRuntime(t)
	ctx, _ := testQueue(t, f, rt)

	b, err := CreateBuffer[int8, HostReadWrite](ctx, 16)
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	handle := uintptr(b.Handle())

	clone, err := b.Clone()
	if err != nil {
		t.Fatalf("Clone() = %v", err)
	}
	if got := f.Refs(handle); got != 2 {
		t.Fatalf("refs after Clone() = %d, want 2", got)
	}
	if err := clone.Release(); err != nil {
		t.Fatalf("clone.Release() = %v", err)
	}
	if err := b.Release(); err != nil {
		t.Fatalf("Release() = %v", err)
	}
	if got := f.Refs(handle); got != 0 {
		t.Errorf("refs after releases = %d, want 0", got)
	}
}
