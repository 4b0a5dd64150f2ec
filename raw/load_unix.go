//go:build linux || freebsd

package raw

import "github.com/ebitengine/purego"

// defaultCandidates are the platform-conventional names tried in order
// when no override path is configured. The ICD loader ships as
// libOpenCL.so.1 on most distributions; the unversioned name covers
// dev installs.
func defaultCandidates() []string {
	return []string{"libOpenCL.so.1", "libOpenCL.so"}
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
