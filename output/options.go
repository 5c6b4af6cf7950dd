// Package output writes encoded textures to files or streams.
//
// Options select the destination, the container framing and an optional
// supercompressor. The destination is opened on the first write and closed
// by Close:
//
//	oo := output.NewOptions()
//	oo.SetFileName("brick.txl")
//	oo.SetContainer(output.ContainerTXL)
//	oo.SetSupercompression(output.SupercompressionZstd)
//	defer oo.Close()
package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Output errors.
var (
	// ErrInvalidOption is returned for unknown enum values.
	ErrInvalidOption = errors.New("output: invalid option")

	// ErrNoDestination is returned when writing without a file name or writer.
	ErrNoDestination = errors.New("output: no destination")

	// ErrHeaderOrder is returned when a header is written after image data.
	ErrHeaderOrder = errors.New("output: header after image data")

	// ErrNotTXL is returned by Read when the stream has no TXL magic.
	ErrNotTXL = errors.New("output: not a TXL container")
)

// brotliQuality is the default quality of the brotli encoder (0..11).
const brotliQuality = 6

// Options configures the destination of encoded images.
//
// Options are not safe for concurrent use.
type Options struct {
	fileName     string
	writer       io.Writer
	container    Container
	super        Supercompression
	outputHeader bool
	errorHandler func(error)

	// Lazily opened sink state.
	file   *os.File
	raw    *binaryWriter // destination, before supercompression
	stream *binaryWriter // after supercompression; nil until data starts
	comp   io.WriteCloser

	written int64 // bytes written by the last closed sink
}

// NewOptions returns options with the default settings: raw container, no
// supercompression, headers enabled.
func NewOptions() *Options {
	return &Options{outputHeader: true}
}

// Reset closes any open sink and restores the defaults.
func (o *Options) Reset() error {
	err := o.Close()
	*o = Options{outputHeader: true}
	return err
}

// SetFileName directs output to a file created on the first write.
// It replaces any writer set with SetWriter.
func (o *Options) SetFileName(name string) {
	o.fileName = name
	o.writer = nil
}

// SetWriter directs output to w. Close does not close w.
// It replaces any file name set with SetFileName.
func (o *Options) SetWriter(w io.Writer) {
	o.writer = w
	o.fileName = ""
}

// SetContainer selects the container framing.
func (o *Options) SetContainer(c Container) error {
	if c > ContainerTXL {
		return fmt.Errorf("%w: container %d", ErrInvalidOption, c)
	}
	o.container = c
	return nil
}

// Container returns the container framing.
func (o *Options) Container() Container { return o.container }

// SetSupercompression selects the stream compressor.
func (o *Options) SetSupercompression(s Supercompression) error {
	if s > SupercompressionBrotli {
		return fmt.Errorf("%w: supercompression %d", ErrInvalidOption, s)
	}
	o.super = s
	return nil
}

// Supercompression returns the stream compressor.
func (o *Options) Supercompression() Supercompression { return o.super }

// SetOutputHeader controls whether WriteHeader emits anything.
func (o *Options) SetOutputHeader(enabled bool) { o.outputHeader = enabled }

// OutputHeader reports whether headers are written.
func (o *Options) OutputHeader() bool { return o.outputHeader }

// SetErrorHandler installs a callback that receives every sink error in
// addition to the error return.
func (o *Options) SetErrorHandler(fn func(error)) { o.errorHandler = fn }

func (o *Options) fail(err error) error {
	if err != nil && o.errorHandler != nil {
		o.errorHandler(err)
	}
	return err
}

// open creates the destination on first use.
func (o *Options) open() error {
	if o.raw != nil {
		return o.raw.Err
	}

	dst := o.writer
	if dst == nil {
		if o.fileName == "" {
			return ErrNoDestination
		}
		f, err := os.Create(o.fileName)
		if err != nil {
			return fmt.Errorf("output: create %s: %w", o.fileName, err)
		}
		o.file = f
		dst = f
	}
	o.raw = &binaryWriter{Order: byteOrder, Dst: dst}
	return nil
}

// begin switches the sink into the data section, installing the
// supercompressor.
func (o *Options) begin() error {
	if o.stream != nil {
		return o.stream.Err
	}
	if err := o.open(); err != nil {
		return err
	}

	comp, err := newCompressor(o.super, o.raw)
	if err != nil {
		return err
	}
	o.comp = comp
	dst := io.Writer(o.raw)
	if comp != nil {
		dst = comp
	}
	o.stream = &binaryWriter{Order: byteOrder, Dst: dst}
	return nil
}

func newCompressor(s Supercompression, w io.Writer) (io.WriteCloser, error) {
	switch s {
	case SupercompressionLZ4:
		lzw := lz4.NewWriter(w)
		if err := lzw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
			return nil, fmt.Errorf("output: lz4: %w", err)
		}
		return lzw, nil
	case SupercompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("output: zstd: %w", err)
		}
		return enc, nil
	case SupercompressionBrotli:
		return brotli.NewWriter(w, brotli.WriterOptions{Quality: brotliQuality}), nil
	default:
		return nil, nil
	}
}

// WriteHeader writes the container header. It is a no-op for the raw
// container and when headers are disabled. The header is never
// supercompressed, so it must precede every image.
func (o *Options) WriteHeader(h Header) error {
	if o.container != ContainerTXL || !o.outputHeader {
		return nil
	}
	if o.stream != nil {
		return o.fail(ErrHeaderOrder)
	}
	if err := o.open(); err != nil {
		return o.fail(err)
	}

	h.Magic = Magic
	h.Version = Version
	h.Supercompression = uint32(o.super)
	if !o.raw.WriteRef(&h) {
		return o.fail(fmt.Errorf("output: write header: %w", o.raw.Err))
	}
	logger().Debug("output: header written",
		"width", h.Width, "height", h.Height, "depth", h.Depth, "mips", h.MipCount)
	return nil
}

// WriteImage writes one encoded image. The TXL container prefixes the
// payload with its ImageHeader; the raw container writes the payload only.
func (o *Options) WriteImage(ih ImageHeader, payload []byte) error {
	if err := o.begin(); err != nil {
		return o.fail(err)
	}

	ih.Size = uint32(len(payload))
	if o.container == ContainerTXL {
		o.stream.WriteRef(&ih)
	}
	if !o.stream.WriteBytes(payload) {
		return o.fail(fmt.Errorf("output: write image face %d mip %d: %w", ih.Face, ih.Mip, o.stream.Err))
	}
	logger().Debug("output: image written", "face", ih.Face, "mip", ih.Mip, "bytes", len(payload))
	return nil
}

// Close flushes the supercompressor and closes a file opened by the
// options. The options can be reused afterwards; the next write opens the
// destination again.
func (o *Options) Close() error {
	var errs []error
	if o.comp != nil {
		if err := o.comp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("output: flush %v: %w", o.super, err))
		}
	}
	if o.file != nil {
		if err := o.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if o.raw != nil {
		o.written = o.raw.N
	}
	o.file, o.raw, o.stream, o.comp = nil, nil, nil, nil
	return o.fail(errors.Join(errs...))
}

// BytesWritten returns the number of bytes written to the destination
// after supercompression, for the open sink or the last closed one.
func (o *Options) BytesWritten() int64 {
	if o.raw == nil {
		return o.written
	}
	return o.raw.N
}
