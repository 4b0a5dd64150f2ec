package cl

import (
	"errors"
	"testing"

	"github.com/gogpu/cl/raw"
)

func TestAPIError_Message(t *testing.T) {
	tests := []struct {
		name string
		code raw.Int
		op   string
		want string
	}{
		{
			name: "known code",
			code: raw.ErrOutOfResources,
			op:   "clEnqueueNDRangeKernel",
			want: "clEnqueueNDRangeKernel: OpenCL error -5 (CL_OUT_OF_RESOURCES)",
		},
		{
			name: "device not found",
			code: raw.ErrDeviceNotFound,
			op:   "clGetDeviceIDs",
			want: "clGetDeviceIDs: OpenCL error -1 (CL_DEVICE_NOT_FOUND)",
		},
		{
			name: "unknown code",
			code: -9999,
			op:   "clFoo",
			want: "clFoo: OpenCL error -9999 (unknown error code)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apiErr(tt.op, tt.code)
			if err == nil {
				t.Fatal("apiErr() = nil for non-success code")
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError_SuccessIsNil(t *testing.T) {
	if err := apiErr("clFinish", raw.Success); err != nil {
		t.Errorf("apiErr(Success) = %v, want nil", err)
	}
}

func TestAPIError_As(t *testing.T) {
	err := apiErr("clCreateBuffer", raw.ErrInvalidBufferSize)

	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("errors.As failed for %v", err)
	}
	if apiError.Code != raw.ErrInvalidBufferSize {
		t.Errorf("Code = %d, want %d", apiError.Code, raw.ErrInvalidBufferSize)
	}
	if apiError.Context != "clCreateBuffer" {
		t.Errorf("Context = %q, want %q", apiError.Context, "clCreateBuffer")
	}
}

func TestArgTypeMismatchError_Message(t *testing.T) {
	err := &ArgTypeMismatchError{Index: 1, Expected: "double", Actual: "int"}
	want := "cl: kernel argument 1 expects double, got int"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestOutOfBoundsError_Message(t *testing.T) {
	err := &OutOfBoundsError{Offset: 4, Count: 8, Len: 10}
	want := "cl: buffer range [4, 12) out of bounds for 10 elements"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBuildError_MessageWithoutLog(t *testing.T) {
	err := &BuildError{Code: raw.ErrBuildProgramFailure}
	want := "clBuildProgram: OpenCL error -11 (CL_BUILD_PROGRAM_FAILURE)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
