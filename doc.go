// Package texel loads images into floating-point texture surfaces and
// builds their mipmap chains.
//
// # Overview
//
// A [Surface] holds an uncompressed texture as four float32 planes plus the
// metadata that drives filtering: wrap mode, alpha mode and a normal-map
// flag. Mip levels are produced in place with [Surface.BuildNextMipmap],
// which convolves the texels with a separable kernel along x, y and z.
//
// # Quick Start
//
//	import "github.com/gogpu/texel"
//
//	s := texel.NewSurface()
//	if _, err := s.Load("brick.png", false); err != nil {
//	    return err
//	}
//	s.SetWrapMode(texel.WrapRepeat)
//
//	for {
//	    ok, err := s.BuildNextMipmap(texel.FilterKaiser, 1)
//	    if err != nil || !ok {
//	        break
//	    }
//	    // use the level
//	}
//
// # Filters
//
// Box, Triangle, Kaiser and Mitchell compute weighted sums. Min and Max keep
// the extreme texel under a box window, which preserves peaks in height
// maps. Kernel weights are integrated over each source texel and normalized,
// so odd sizes need no special casing.
//
// # Encoding
//
// [Context] packs surfaces into uncompressed layouts configured by
// compress.Options and writes them through output.Options, optionally in a
// TXL container with LZ4, Zstandard or Brotli supercompression.
//
// # Errors
//
// Operations return errors wrapping [ErrNotFound], [ErrDecode],
// [ErrNotLoaded], [ErrInvalidArgument], [ErrAllocation] or
// [ErrUnsupportedFormat].
package texel

import "fmt"

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)

// VersionNumber returns the version packed as major*10000 + minor*100 +
// patch.
func VersionNumber() int {
	return VersionMajor*10000 + VersionMinor*100 + VersionPatch
}

// versionString formats the numeric version for consistency checks.
func versionString() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
