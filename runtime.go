package cl

import (
	"github.com/gogpu/cl/cache"
	"github.com/gogpu/cl/raw"
)

// Handle kinds for info-cache keys. Native handle values of different
// object kinds can collide numerically, so the kind participates in the
// key.
const (
	kindPlatform uint8 = iota + 1
	kindDevice
	kindKernelArg
)

type infoKey struct {
	handle uintptr
	param  uint32
	kind   uint8
}

func hashInfoKey(k infoKey) uint64 {
	h := cache.UintptrHasher(k.handle)
	return h ^ uint64(k.param)<<8 ^ uint64(k.kind)
}

// Runtime is the entry object of the safe layer. It wraps a loaded
// entry-point table and caches immutable info-query results.
//
// A Runtime is immutable and safe for concurrent use.
type Runtime struct {
	api     *raw.API
	strings *cache.Sharded[infoKey, string]
}

// Init loads the system OpenCL library (cached process-wide, see
// raw.Load) and returns a Runtime over it. All calls after the first
// observe the same underlying entry-point table.
func Init() (*Runtime, error) {
	api, err := raw.Load()
	if err != nil {
		return nil, err
	}
	return NewRuntime(api), nil
}

// NewRuntime wraps an existing entry-point table. Embedders use this to
// supply a table loaded with a non-default raw.Config; tests use it to
// inject a fake native layer.
func NewRuntime(api *raw.API) *Runtime {
	return &Runtime{
		api:     api,
		strings: cache.NewSharded[infoKey, string](hashInfoKey),
	}
}

// API exposes the underlying raw entry-point table.
func (rt *Runtime) API() *raw.API { return rt.api }

// Version reports the OpenCL version of the loaded library.
func (rt *Runtime) Version() raw.Version { return rt.api.Version() }

// Platforms returns the OpenCL platforms available on this system.
func (rt *Runtime) Platforms() ([]Platform, error) {
	var count raw.Uint
	status, err := rt.api.GetPlatformIDs(0, nil, &count)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clGetPlatformIDs", status); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	ids := make([]raw.PlatformID, count)
	status, err = rt.api.GetPlatformIDs(count, &ids[0], &count)
	if err != nil {
		return nil, err
	}
	if err := apiErr("clGetPlatformIDs", status); err != nil {
		return nil, err
	}

	platforms := make([]Platform, count)
	for i, id := range ids[:count] {
		platforms[i] = Platform{rt: rt, id: id}
	}
	return platforms, nil
}

// cachedString memoizes an immutable info string for a handle.
func (rt *Runtime) cachedString(key infoKey, fetch func() (string, error)) (string, error) {
	return rt.strings.GetOrCreate(key, fetch)
}

// forgetHandle drops cached info entries for a handle being released.
func (rt *Runtime) forgetHandle(handle uintptr, kind uint8, params ...uint32) {
	for _, p := range params {
		rt.strings.Remove(infoKey{handle: handle, param: p, kind: kind})
	}
}
