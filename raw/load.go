package raw

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// EnvLibrary is the environment variable consulted for an absolute
// path or alternate name of the OpenCL library.
const EnvLibrary = "OPENCL_LIBRARY"

var (
	// ErrNotFound indicates no candidate library could be opened.
	ErrNotFound = errors.New("raw: OpenCL library not found")

	// ErrIncompatible indicates a library was opened but lacks the
	// required minimum entry points.
	ErrIncompatible = errors.New("raw: incompatible OpenCL library")
)

// defaultRequired is the minimum entry-point set a library must export
// to be considered an OpenCL implementation at all: enough to see
// platforms and create a context. Everything beyond it is optional and
// guarded per call.
var defaultRequired = []string{"clGetPlatformIDs", "clCreateContext"}

// Config controls an explicit load. The zero value uses platform
// discovery and the default required set.
type Config struct {
	// Path, when non-empty, is opened instead of the conventional
	// candidates. The EnvLibrary variable takes effect only when Path
	// is empty.
	Path string

	// Required overrides the minimum entry points that define an
	// incompatible library. Nil means the default set.
	Required []string
}

var (
	loadOnce sync.Once
	loadAPI  *API
	loadErr  error
)

// Load opens the system OpenCL library, resolves its entry points and
// returns the table. The result is cached process-wide: every call
// after the first returns the same *API (or the same error) without
// reopening the library. Concurrent first calls are serialized; exactly
// one initialization runs.
func Load() (*API, error) {
	loadOnce.Do(func() {
		loadAPI, loadErr = LoadWith(Config{})
	})
	return loadAPI, loadErr
}

// LoadWith opens a library according to cfg, bypassing the process-wide
// cache. Most callers want [Load]; LoadWith exists for embedders that
// need a non-default path or a stricter required set.
func LoadWith(cfg Config) (*API, error) {
	candidates := cfg.candidates()

	var handle uintptr
	var opened string
	for _, name := range candidates {
		h, err := openLibrary(name)
		if err != nil || h == 0 {
			Logger().Debug("opencl: candidate library not loadable", "name", name)
			continue
		}
		handle, opened = h, name
		break
	}
	if handle == 0 {
		return nil, fmt.Errorf("%w (tried %s)", ErrNotFound, strings.Join(candidates, ", "))
	}

	hooks, addrs := bindHooks(handle)

	required := cfg.Required
	if required == nil {
		required = defaultRequired
	}
	for _, name := range required {
		if _, ok := addrs[name]; !ok {
			closeLibrary(handle)
			return nil, fmt.Errorf("%w: %s missing %s", ErrIncompatible, opened, name)
		}
	}

	version := detectVersion(func(name string) bool {
		if _, ok := addrs[name]; ok {
			return true
		}
		_, ok := lookupSymbol(handle, name)
		return ok
	})

	api := NewAPI(hooks, version)
	api.addrs = addrs

	Logger().Info("opencl: library loaded",
		"path", opened,
		"version", version.String(),
		"missing", len(api.Missing()),
	)
	return api, nil
}

func (cfg Config) candidates() []string {
	if cfg.Path != "" {
		return []string{cfg.Path}
	}
	if env := os.Getenv(EnvLibrary); env != "" {
		return []string{env}
	}
	return defaultCandidates()
}

// versionMarkers lists, per version step, symbols introduced by that
// version. A library is attributed the highest version whose whole
// marker cohort resolves; probing symbols beyond the bound set is fine
// since presence is all that matters.
var versionMarkers = []struct {
	version Version
	symbols []string
}{
	{CL11, []string{"clCreateSubBuffer", "clCreateUserEvent", "clSetEventCallback"}},
	{CL12, []string{"clGetKernelArgInfo", "clEnqueueFillBuffer", "clCompileProgram", "clLinkProgram"}},
	{CL20, []string{"clCreateCommandQueueWithProperties", "clSVMAlloc", "clCreatePipe"}},
	{CL21, []string{"clCloneKernel", "clGetHostTimer", "clCreateProgramWithIL"}},
	{CL22, []string{"clSetProgramSpecializationConstant"}},
	{CL30, []string{"clCreateBufferWithProperties", "clSetContextDestructorCallback"}},
}

// detectVersion walks the marker cohorts in order and stops at the
// first incomplete one.
func detectVersion(present func(name string) bool) Version {
	version := CL10
	for _, m := range versionMarkers {
		for _, sym := range m.symbols {
			if !present(sym) {
				return version
			}
		}
		version = m.version
	}
	return version
}
