package texel

import "errors"

// Errors returned by Surface and Context operations. Callers match them
// with errors.Is; the returned errors wrap them with detail.
var (
	// ErrNotFound is returned by Load when the input path does not exist.
	ErrNotFound = errors.New("texel: file not found")

	// ErrDecode is returned when image data is corrupt or in an unknown format.
	ErrDecode = errors.New("texel: cannot decode image")

	// ErrNotLoaded is returned by operations that need pixel data before a
	// successful Load or Allocate.
	ErrNotLoaded = errors.New("texel: surface not loaded")

	// ErrInvalidArgument is returned when an enum or range check fails.
	ErrInvalidArgument = errors.New("texel: invalid argument")

	// ErrAllocation is returned when a pixel buffer cannot be allocated.
	ErrAllocation = errors.New("texel: allocation failed")

	// ErrUnsupportedFormat is returned when compressing to a block format.
	ErrUnsupportedFormat = errors.New("texel: unsupported format")
)
