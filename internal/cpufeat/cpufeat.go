// Package cpufeat reports which vector instruction sets the host CPU offers.
//
// Detection is done once by golang.org/x/sys/cpu at program start; the
// functions here only read the result.
package cpufeat

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Host is the capability set of the running CPU.
type Host struct{}

// HasVector128 reports 128-bit float vectors: SSE2 on amd64, ASIMD (NEON)
// on arm64.
func (Host) HasVector128() bool {
	return cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD
}

// HasVector256 reports 256-bit float vectors (AVX2).
func (Host) HasVector256() bool {
	return cpu.X86.HasAVX2
}

// Features lists the detected vector features relevant to rendering,
// narrowest first.
func Features() []string {
	var f []string
	if cpu.X86.HasSSE2 {
		f = append(f, "sse2")
	}
	if cpu.X86.HasSSE41 {
		f = append(f, "sse4.1")
	}
	if cpu.X86.HasAVX {
		f = append(f, "avx")
	}
	if cpu.X86.HasAVX2 {
		f = append(f, "avx2")
	}
	if cpu.X86.HasFMA {
		f = append(f, "fma")
	}
	if cpu.X86.HasAVX512F {
		f = append(f, "avx512f")
	}
	if cpu.ARM64.HasASIMD {
		f = append(f, "asimd")
	}
	if cpu.ARM64.HasFPHP {
		f = append(f, "fphp")
	}
	return f
}

// Describe returns a one-line summary such as "amd64: sse2 sse4.1 avx avx2 fma".
func Describe() string {
	f := Features()
	if len(f) == 0 {
		return runtime.GOARCH + ": none"
	}
	return runtime.GOARCH + ": " + strings.Join(f, " ")
}
