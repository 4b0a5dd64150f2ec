package cl

import (
	"unsafe"
)

// infoQuery abstracts the two-call clGet*Info protocol: first call with
// size zero to learn the value size, second call to fetch the value.
// The wrapped closure supplies handle and parameter name; the helpers
// below supply buffers and status translation.
type infoQuery func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) (int32, error)

// getInfoString fetches a NUL-terminated string info value.
func getInfoString(op string, q infoQuery) (string, error) {
	var size uintptr
	status, err := q(0, nil, &size)
	if err != nil {
		return "", err
	}
	if err := apiErr(op, status); err != nil {
		return "", err
	}
	if size == 0 {
		return "", nil
	}

	buf := make([]byte, size)
	status, err = q(size, unsafe.Pointer(&buf[0]), nil)
	if err != nil {
		return "", err
	}
	if err := apiErr(op, status); err != nil {
		return "", err
	}
	for len(buf) > 0 && buf[len(buf)-1] == 0 {
		buf = buf[:len(buf)-1]
	}
	return string(buf), nil
}

// getInfoScalar fetches a fixed-size info value.
func getInfoScalar[T any](op string, q infoQuery) (T, error) {
	var v T
	status, err := q(unsafe.Sizeof(v), unsafe.Pointer(&v), nil)
	if err != nil {
		return v, err
	}
	if err := apiErr(op, status); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// getInfoSlice fetches a variable-length array info value.
func getInfoSlice[T any](op string, q infoQuery) ([]T, error) {
	var size uintptr
	status, err := q(0, nil, &size)
	if err != nil {
		return nil, err
	}
	if err := apiErr(op, status); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	var elem T
	n := size / unsafe.Sizeof(elem)
	out := make([]T, n)
	status, err = q(size, unsafe.Pointer(&out[0]), nil)
	if err != nil {
		return nil, err
	}
	if err := apiErr(op, status); err != nil {
		return nil, err
	}
	return out, nil
}
