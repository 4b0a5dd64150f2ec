package raw

import "github.com/ebitengine/purego"

// defaultCandidates returns the OpenCL framework path. macOS has
// shipped OpenCL as a system framework since 10.6.
func defaultCandidates() []string {
	return []string{
		"/System/Library/Frameworks/OpenCL.framework/OpenCL",
		"libOpenCL.dylib",
	}
}

func openLibrary(name string) (uintptr, error) {
	return purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func lookupSymbol(handle uintptr, name string) (uintptr, bool) {
	addr, err := purego.Dlsym(handle, name)
	if err != nil || addr == 0 {
		return 0, false
	}
	return addr, true
}

func closeLibrary(handle uintptr) {
	_ = purego.Dlclose(handle)
}
