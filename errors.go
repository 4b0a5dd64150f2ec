package cl

import (
	"errors"
	"fmt"

	"github.com/gogpu/cl/raw"
)

// APIError is a non-success status code returned by a native call,
// together with the name of the entry point that produced it.
type APIError struct {
	Code    raw.Int
	Context string
}

func (e *APIError) Error() string {
	name, ok := raw.ErrorName(e.Code)
	if !ok {
		name = "unknown error code"
	}
	return fmt.Sprintf("%s: OpenCL error %d (%s)", e.Context, e.Code, name)
}

// apiErr translates a native status code at the call boundary. Success
// maps to nil; every other value, including codes this package does not
// recognize, becomes an *APIError carrying the operation name.
func apiErr(context string, code raw.Int) error {
	if code == raw.Success {
		return nil
	}
	return &APIError{Code: code, Context: context}
}

// BuildError is returned by Program.Build when compilation fails. Log
// holds the concatenated build logs of the devices the build targeted.
type BuildError struct {
	Code raw.Int
	Log  string
}

func (e *BuildError) Error() string {
	if e.Log == "" {
		return (&APIError{Code: e.Code, Context: "clBuildProgram"}).Error()
	}
	return fmt.Sprintf("clBuildProgram: OpenCL error %d\n%s", e.Code, e.Log)
}

// ArgTypeMismatchError is returned by SetArg and SetBufferArg when the
// supplied value's type does not match the kernel's declared parameter
// type for that slot. No native call is issued.
type ArgTypeMismatchError struct {
	Index    int
	Expected string // the kernel's declared OpenCL type, e.g. "double"
	Actual   string // the supplied value's OpenCL type, e.g. "int"
}

func (e *ArgTypeMismatchError) Error() string {
	return fmt.Sprintf("cl: kernel argument %d expects %s, got %s", e.Index, e.Expected, e.Actual)
}

// NoSuchSlotError is returned when an argument index is outside the
// kernel's declared parameter list. No native call is issued.
type NoSuchSlotError struct {
	Index   int
	NumArgs int
}

func (e *NoSuchSlotError) Error() string {
	return fmt.Sprintf("cl: kernel argument index %d out of range (kernel has %d arguments)", e.Index, e.NumArgs)
}

// OutOfBoundsError is returned by buffer transfers whose range exceeds
// the buffer's element count. It is detected host-side; no native call
// is issued.
type OutOfBoundsError struct {
	Offset int
	Count  int
	Len    int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cl: buffer range [%d, %d) out of bounds for %d elements", e.Offset, e.Offset+e.Count, e.Len)
}

// ErrKernelBusy is returned by SetArg while a previous enqueue of the
// same kernel has not completed. Rebinding arguments of an in-flight
// kernel is undefined in the native API.
var ErrKernelBusy = errors.New("cl: kernel has enqueued work in flight")
