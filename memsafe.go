package cl

import (
	"reflect"
	"strings"
)

// Pod constrains buffer element and kernel scalar argument types to
// plain-old-data scalars: fixed size, no padding, and every bit pattern
// a valid value. This is what makes device-side writes safe — whatever
// bytes a kernel produces, reading them back cannot yield an invalid
// host value.
//
// Composite types are deliberately excluded. Go structs may contain
// padding bytes, and types with representation invariants (pointers,
// interfaces, strings, booleans) could be broken by arbitrary writes.
type Pod interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64
}

// podTypeName returns the OpenCL C type corresponding to T, used when
// checking values against a kernel's declared parameter types.
func podTypeName[T Pod]() string {
	var v T
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int8:
		return "char"
	case reflect.Uint8:
		return "uchar"
	case reflect.Int16:
		return "short"
	case reflect.Uint16:
		return "ushort"
	case reflect.Int32:
		return "int"
	case reflect.Uint32:
		return "uint"
	case reflect.Int64:
		return "long"
	case reflect.Uint64:
		return "ulong"
	case reflect.Float32:
		return "float"
	case reflect.Float64:
		return "double"
	default:
		// Unreachable: the Pod constraint admits no other kinds.
		panic("cl: non-Pod type instantiated")
	}
}

// typeNameAliases maps spelled-out OpenCL C type names to their
// canonical short forms, as some drivers report either.
var typeNameAliases = map[string]string{
	"signed char":        "char",
	"unsigned char":      "uchar",
	"unsigned short":     "ushort",
	"unsigned int":       "uint",
	"unsigned long":      "ulong",
	"signed short":       "short",
	"signed int":         "int",
	"signed long":        "long",
	"unsigned long long": "ulong",
	"long long":          "long",
}

// normalizeTypeName canonicalizes a type name reported by
// clGetKernelArgInfo: trailing NULs and whitespace are stripped, the
// pointer star is separated, and alias spellings are folded.
func normalizeTypeName(name string) string {
	name = strings.TrimRight(name, "\x00")
	name = strings.TrimSpace(name)

	pointer := strings.HasSuffix(name, "*")
	if pointer {
		name = strings.TrimSpace(strings.TrimSuffix(name, "*"))
	}
	if canon, ok := typeNameAliases[name]; ok {
		name = canon
	}
	if pointer {
		return name + "*"
	}
	return name
}

// typeCompatible reports whether a value of the given OpenCL element
// type (with pointer marking the buffer case) can bind to a parameter
// declared with the given type name.
func typeCompatible(declared, elem string, pointer bool) bool {
	want := elem
	if pointer {
		want += "*"
	}
	return normalizeTypeName(declared) == want
}
