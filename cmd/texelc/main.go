// Command texelc loads an image, builds its mipmap chain and writes the
// levels in an uncompressed pixel format.
//
// Usage:
//
//	texelc [flags] input.png
//	texelc -info output.txl
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gogpu/texel"
	"github.com/gogpu/texel/compress"
	"github.com/gogpu/texel/output"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("texelc: %v", err)
	}
}

type config struct {
	filter         string
	wrap           string
	alpha          string
	minSize        int
	mips           bool
	format         string
	container      string
	super          string
	dither         bool
	binaryAlpha    bool
	alphaThreshold int
	signed         bool
	srgb           bool
	out            string
	verbose        bool
	info           bool
}

func parseFlags(args []string, stderr io.Writer) (*config, []string, error) {
	var c config
	fs := flag.NewFlagSet("texelc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.filter, "filter", "box", "mipmap filter: box, triangle, kaiser, mitchell, min, max")
	fs.StringVar(&c.wrap, "wrap", "clamp", "wrap mode: clamp, repeat, mirror")
	fs.StringVar(&c.alpha, "alpha", "none", "alpha mode: none, transparency, premultiplied")
	fs.IntVar(&c.minSize, "min-size", 1, "stop when the largest dimension reaches this size")
	fs.BoolVar(&c.mips, "mips", true, "generate mip levels")
	fs.StringVar(&c.format, "format", "bgra8", "pixel format: rgba8, bgra8, rgb565, l8, rgba16f, rgba32f")
	fs.StringVar(&c.container, "container", "txl", "container: txl, raw")
	fs.StringVar(&c.super, "super", "none", "supercompression: none, lz4, zstd, brotli")
	fs.BoolVar(&c.dither, "dither", false, "dither color and alpha when reducing bit depth")
	fs.BoolVar(&c.binaryAlpha, "binary-alpha", false, "snap alpha to 0 or 1")
	fs.IntVar(&c.alphaThreshold, "alpha-threshold", 127, "binary alpha threshold (0-255)")
	fs.BoolVar(&c.signed, "signed", false, "interpret color as signed [-1, 1]")
	fs.BoolVar(&c.srgb, "srgb", false, "filter color in linear light (input is sRGB encoded)")
	fs.StringVar(&c.out, "o", "", "output file (default: input name with container extension)")
	fs.BoolVar(&c.verbose, "v", false, "verbose logging")
	fs.BoolVar(&c.info, "info", false, "print information about the input and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &c, fs.Args(), nil
}

func run(args []string, stdout io.Writer) error {
	c, rest, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return errors.New("expected exactly one input file")
	}
	input := rest[0]

	if c.verbose {
		texel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if c.info && strings.EqualFold(filepath.Ext(input), ".txl") {
		return printContainer(stdout, input)
	}

	filter, err := texel.ParseMipmapFilter(c.filter)
	if err != nil {
		return err
	}
	wrap, err := texel.ParseWrapMode(c.wrap)
	if err != nil {
		return err
	}
	alpha, err := texel.ParseAlphaMode(c.alpha)
	if err != nil {
		return err
	}
	co, err := compressOptions(c)
	if err != nil {
		return err
	}

	s := texel.NewSurface()
	defer s.Release()
	hasAlpha, err := s.Load(input, c.signed)
	if err != nil {
		return err
	}
	if err := applyModes(s, wrap, alpha); err != nil {
		return err
	}

	mipCount := 1
	if c.mips {
		mipCount = s.CountMipmaps(c.minSize)
	}

	ctx := texel.NewContext()
	if c.info {
		return printSurface(stdout, ctx, s, hasAlpha, mipCount, co)
	}

	oo, err := outputOptions(c, input)
	if err != nil {
		return err
	}

	var opts []texel.MipmapOption
	if c.srgb {
		opts = append(opts, texel.WithSRGB())
	}

	var written int
	if c.mips {
		written, err = ctx.CompressMipmaps(s, filter, c.minSize, co, oo, opts...)
	} else if err = ctx.OutputHeader(s, 1, co, oo); err == nil {
		err = ctx.Compress(s, 0, 0, co, oo)
		written = 1
	}
	if cerr := oo.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: %d level(s), %d bytes\n", input, written, oo.BytesWritten())
	return nil
}

func applyModes(s *texel.Surface, wrap texel.WrapMode, alpha texel.AlphaMode) error {
	if err := s.SetWrapMode(wrap); err != nil {
		return err
	}
	return s.SetAlphaMode(alpha)
}

func compressOptions(c *config) (*compress.Options, error) {
	co := compress.NewOptions()

	var err error
	switch cases.Fold().String(c.format) {
	case "rgba8":
		err = co.SetPixelFormat(32, 0xff, 0xff00, 0xff0000, 0xff000000)
	case "bgra8":
		// default layout
	case "rgb565":
		err = co.SetPixelFormat(16, 0xf800, 0x7e0, 0x1f, 0)
	case "l8":
		err = co.SetPixelFormat(8, 0xff, 0, 0, 0)
	case "rgba16f":
		err = co.SetPixelFormat(64, 0, 0, 0, 0)
	case "rgba32f":
		err = co.SetPixelFormat(128, 0, 0, 0, 0)
	default:
		return nil, fmt.Errorf("unknown format %q", c.format)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(cases.Fold().String(c.format), "f"):
		err = co.SetPixelType(compress.PixelTypeFloat)
	case c.signed:
		err = co.SetPixelType(compress.PixelTypeSignedNorm)
	}
	if err != nil {
		return nil, err
	}

	if err := co.SetQuantization(c.dither, c.dither, c.binaryAlpha, c.alphaThreshold); err != nil {
		return nil, err
	}
	return co, nil
}

func outputOptions(c *config, input string) (*output.Options, error) {
	container, err := output.ParseContainer(c.container)
	if err != nil {
		return nil, err
	}
	super, err := output.ParseSupercompression(c.super)
	if err != nil {
		return nil, err
	}

	name := c.out
	if name == "" {
		name = strings.TrimSuffix(input, filepath.Ext(input)) + "." + container.String()
	}

	oo := output.NewOptions()
	oo.SetFileName(name)
	if err := oo.SetContainer(container); err != nil {
		return nil, err
	}
	if err := oo.SetSupercompression(super); err != nil {
		return nil, err
	}
	oo.SetErrorHandler(func(err error) {
		texel.Logger().Error("texelc: output", "file", name, "err", err)
	})
	return oo, nil
}

func printSurface(w io.Writer, ctx *texel.Context, s *texel.Surface, hasAlpha bool, mipCount int, co *compress.Options) error {
	e, err := s.Extent()
	if err != nil {
		return err
	}
	size, err := ctx.EstimateSize(s, mipCount, co)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "size:      %dx%dx%d (%v)\n", e.Width, e.Height, e.DepthOrArrayLayers, s.TextureType())
	fmt.Fprintf(w, "alpha:     %v\n", hasAlpha)
	fmt.Fprintf(w, "mips:      %d\n", mipCount)
	fmt.Fprintf(w, "d3d9:      %d\n", co.D3D9Format())
	fmt.Fprintf(w, "gpu:       %v\n", co.GPUFormat())
	fmt.Fprintf(w, "estimated: %d bytes\n", size)
	return nil
}

func printContainer(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	txl, err := output.Read(f)
	if err != nil {
		return err
	}
	h := txl.Header
	fmt.Fprintf(w, "size:      %dx%dx%d\n", h.Width, h.Height, h.Depth)
	fmt.Fprintf(w, "format:    %v, d3d9 %d, %v\n", compress.Format(h.Format), h.D3D9Format, compress.PixelType(h.PixelType))
	fmt.Fprintf(w, "mips:      %d\n", h.MipCount)
	fmt.Fprintf(w, "super:     %v\n", output.Supercompression(h.Supercompression))
	for _, img := range txl.Images {
		fmt.Fprintf(w, "  face %d mip %d: %dx%dx%d, %d bytes\n", img.Face, img.Mip, img.Width, img.Height, img.Depth, img.Size)
	}
	return nil
}
