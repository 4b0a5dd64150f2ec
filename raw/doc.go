// Package raw provides low-level, dynamically loaded bindings to the
// system OpenCL library.
//
// The library is located and opened at process runtime, so binaries
// built against this package run on machines without an OpenCL driver
// installed; they simply observe a load error. Symbols missing from an
// older driver do not fail the load — calling the corresponding wrapper
// returns an [*UnsupportedError] instead of dereferencing an invalid
// pointer.
//
// Each method on [API] mirrors one OpenCL entry point with its exact
// native parameter and return shape. No validation is performed beyond
// the missing-symbol guard; status codes are returned as-is. The root
// package github.com/gogpu/cl builds a safer, typed surface on top.
// Consumers that want only the raw C mirror can import this package
// alone.
package raw
