package raw

import "golang.org/x/sys/windows"

// defaultCandidates returns the conventional DLL name. The ICD loader
// installs OpenCL.dll into System32.
func defaultCandidates() []string {
	return []string{"OpenCL.dll"}
}

func openLibrary(name string) (uintptr, error) {
	h, err := windows.LoadLibrary(name)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func lookupSymbol(handle uintptr, name string) (uintptr, bool) {
	addr, err := windows.GetProcAddress(windows.Handle(handle), name)
	if err != nil || addr == 0 {
		return 0, false
	}
	return addr, true
}

func closeLibrary(handle uintptr) {
	_ = windows.FreeLibrary(windows.Handle(handle))
}
