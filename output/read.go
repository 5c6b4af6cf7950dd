package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// maxImageSize bounds a single payload read from a TXL stream.
const maxImageSize = 1 << 30

// Image is one decoded record of a TXL container.
type Image struct {
	ImageHeader
	Data []byte
}

// File is a parsed TXL container.
type File struct {
	Header Header
	Images []Image
}

// Image returns the record for face and mip, or nil.
func (f *File) Image(face, mip int) *Image {
	for i := range f.Images {
		if int(f.Images[i].Face) == face && int(f.Images[i].Mip) == mip {
			return &f.Images[i]
		}
	}
	return nil
}

// Read parses a TXL container, undoing any supercompression. Records are
// read until the stream ends.
func Read(r io.Reader) (*File, error) {
	br := &binaryReader{Order: byteOrder, Src: r}

	var f File
	if !br.ReadRef(&f.Header) {
		if errors.Is(br.Err, io.EOF) || errors.Is(br.Err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short header", ErrNotTXL)
		}
		return nil, fmt.Errorf("output: read header: %w", br.Err)
	}
	if f.Header.Magic != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrNotTXL, f.Header.Magic[:])
	}
	if f.Header.Version != Version {
		return nil, fmt.Errorf("output: unsupported TXL version %d", f.Header.Version)
	}

	src, closeSrc, err := newDecompressor(Supercompression(f.Header.Supercompression), r)
	if err != nil {
		return nil, err
	}
	defer closeSrc()
	br = &binaryReader{Order: byteOrder, Src: src, Index: br.Index}

	for {
		var img Image
		if !br.ReadRef(&img.ImageHeader) {
			if br.Err == io.EOF {
				break
			}
			return nil, fmt.Errorf("output: read image %d header: %w", len(f.Images), br.Err)
		}
		if img.Size > maxImageSize {
			return nil, fmt.Errorf("output: image %d payload of %d bytes", len(f.Images), img.Size)
		}
		img.Data = make([]byte, img.Size)
		if !br.ReadBytes(img.Data) {
			return nil, fmt.Errorf("output: read image %d payload: %w", len(f.Images), br.Err)
		}
		f.Images = append(f.Images, img)
	}

	logger().Debug("output: container read", "images", len(f.Images), "bytes", br.Index)
	return &f, nil
}

func newDecompressor(s Supercompression, r io.Reader) (io.Reader, func(), error) {
	nop := func() {}
	switch s {
	case SupercompressionNone:
		return r, nop, nil
	case SupercompressionLZ4:
		return lz4.NewReader(r), nop, nil
	case SupercompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nop, fmt.Errorf("output: zstd: %w", err)
		}
		return dec, dec.Close, nil
	case SupercompressionBrotli:
		return brotli.NewReader(r), nop, nil
	default:
		return nil, nop, fmt.Errorf("%w: supercompression %d in header", ErrInvalidOption, s)
	}
}
