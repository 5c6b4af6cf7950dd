package output

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Magic identifies a TXL container.
var Magic = [4]byte{'T', 'X', 'L', '1'}

// Version is the TXL layout version written by this package.
const Version = 1

// byteOrder of every TXL field.
var byteOrder = binary.LittleEndian

// Container selects how images are framed in the output stream.
type Container uint8

const (
	// ContainerRaw writes pixel payloads back to back with no framing.
	ContainerRaw Container = iota

	// ContainerTXL writes a header followed by one record per image.
	ContainerTXL
)

// String returns the container name.
func (c Container) String() string {
	switch c {
	case ContainerRaw:
		return "raw"
	case ContainerTXL:
		return "txl"
	default:
		return fmt.Sprintf("Container(%d)", c)
	}
}

// ParseContainer parses a container name, ignoring case.
func ParseContainer(s string) (Container, error) {
	switch fold(s) {
	case "raw":
		return ContainerRaw, nil
	case "txl":
		return ContainerTXL, nil
	}
	return 0, fmt.Errorf("%w: container %q", ErrInvalidOption, s)
}

// Supercompression is a general-purpose compressor applied to the stream
// after the container header.
type Supercompression uint8

const (
	SupercompressionNone Supercompression = iota
	SupercompressionLZ4
	SupercompressionZstd
	SupercompressionBrotli
)

// String returns the compressor name.
func (s Supercompression) String() string {
	switch s {
	case SupercompressionNone:
		return "none"
	case SupercompressionLZ4:
		return "lz4"
	case SupercompressionZstd:
		return "zstd"
	case SupercompressionBrotli:
		return "brotli"
	default:
		return fmt.Sprintf("Supercompression(%d)", s)
	}
}

// ParseSupercompression parses a compressor name, ignoring case.
func ParseSupercompression(s string) (Supercompression, error) {
	switch fold(s) {
	case "none", "":
		return SupercompressionNone, nil
	case "lz4":
		return SupercompressionLZ4, nil
	case "zstd", "zstandard":
		return SupercompressionZstd, nil
	case "brotli", "br":
		return SupercompressionBrotli, nil
	}
	return 0, fmt.Errorf("%w: supercompression %q", ErrInvalidOption, s)
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Header is the fixed-size TXL file header.
type Header struct {
	Magic            [4]byte
	Version          uint32
	Format           uint32 // compress.Format
	D3D9Format       uint32
	PixelType        uint32 // compress.PixelType
	Width            uint32
	Height           uint32
	Depth            uint32
	Faces            uint32
	MipCount         uint32
	Supercompression uint32
}

// ImageHeader precedes every image payload in a TXL container.
type ImageHeader struct {
	Face   uint32
	Mip    uint32
	Width  uint32
	Height uint32
	Depth  uint32
	Size   uint32
}
