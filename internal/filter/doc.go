// Package filter provides the reconstruction kernels used for mipmap
// generation.
//
// Kernels:
//   - Box (radius 0.5), also the window for min/max reduction
//   - Triangle (radius 1)
//   - Kaiser-windowed sinc (radius 3 by default)
//   - Mitchell-Netravali cubic (radius 2)
//
// Kernels are turned into discrete per-texel weights by Polyphase, which
// integrates the kernel over each source texel and normalizes the result.
// Computed kernels are cached because a mip chain requests the same few
// (filter, length) pairs over and over.
package filter
