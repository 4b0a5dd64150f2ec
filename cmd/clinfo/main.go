// Command clinfo loads the system OpenCL library and prints the
// platforms and devices it exposes.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/cl"
	"github.com/gogpu/cl/raw"
)

func main() {
	var (
		library = flag.String("library", "", "explicit OpenCL library path (overrides OPENCL_LIBRARY)")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		cl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var api *raw.API
	var err error
	if *library != "" {
		api, err = raw.LoadWith(raw.Config{Path: *library})
	} else {
		api, err = raw.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load OpenCL: %v", err)
	}

	rt := cl.NewRuntime(api)
	fmt.Printf("Detected %s\n", api.Version())
	if missing := api.Missing(); len(missing) > 0 {
		fmt.Printf("Missing entry points: %d\n", len(missing))
	}

	platforms, err := rt.Platforms()
	if err != nil {
		log.Fatalf("Failed to enumerate platforms: %v", err)
	}
	fmt.Printf("Platforms: %d\n\n", len(platforms))

	for i, p := range platforms {
		printPlatform(i, p)
	}
}

func printPlatform(i int, p cl.Platform) {
	name, _ := p.Name()
	vendor, _ := p.Vendor()
	version, _ := p.Version()
	fmt.Printf("Platform %d: %s\n", i, name)
	fmt.Printf("  Vendor:  %s\n", vendor)
	fmt.Printf("  Version: %s\n", version)

	devices, err := p.Devices(cl.DeviceAll)
	if err != nil {
		log.Printf("Failed to enumerate devices for platform %d: %v", i, err)
		return
	}
	for j, d := range devices {
		info, err := d.Info()
		if err != nil {
			log.Printf("Failed to query device %d: %v", j, err)
			continue
		}
		fmt.Printf("  Device %d: %s\n", j, info.Name)
		fmt.Printf("    Type:            %s\n", deviceTypeString(info.Type))
		fmt.Printf("    Compute units:   %d\n", info.MaxComputeUnits)
		fmt.Printf("    Max work group:  %d\n", info.MaxWorkGroupSize)
		fmt.Printf("    Global memory:   %d MiB\n", info.GlobalMemSize>>20)
		fmt.Printf("    Local memory:    %d KiB\n", info.LocalMemSize>>10)
		fmt.Printf("    Clock:           %d MHz\n", info.MaxClockFrequency)
		fmt.Printf("    Driver:          %s\n", info.DriverVersion)
	}
	fmt.Println()
}

func deviceTypeString(t cl.DeviceType) string {
	switch {
	case t&cl.DeviceGPU != 0:
		return "GPU"
	case t&cl.DeviceCPU != 0:
		return "CPU"
	case t&cl.DeviceAccelerator != 0:
		return "Accelerator"
	default:
		return fmt.Sprintf("0x%x", uint64(t))
	}
}
