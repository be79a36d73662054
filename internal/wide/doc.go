// Package wide provides SIMD-friendly lane types for batch escape-time evaluation.
//
// The types are fixed-size arrays operated on by simple loops, which lets the
// Go compiler auto-vectorize them on architectures with 128-bit (SSE2, NEON)
// or 256-bit (AVX2) vector units.
//
// # Lane Types
//
// F32x4 / F32x8: 4 or 8 float32 lanes (complex coordinates, |z|²).
// I32x4 / I32x8: 4 or 8 int32 lanes (per-lane iteration counters).
// Mask4 / Mask8: per-lane predicates produced by comparisons.
//
// # Masked Updates
//
// Lanes are never updated with bitwise AND/OR tricks. Every conditional update
// goes through an explicit Select:
//
//	z = SelectF32x4(active, next, z) // inactive lanes keep their value
//
// A lane whose mask bit is false is guaranteed to come back unchanged.
//
// # Rounding
//
// Arithmetic results are explicitly converted to float32 so the compiler cannot
// fuse a multiply and an add into a single FMA instruction. Scalar code that
// performs the same sequence of operations therefore produces bit-identical
// results on every architecture.
package wide
