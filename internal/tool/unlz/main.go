// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command unlz decompresses a single zlib, raw DEFLATE, or LZX file.
//
// Example usage:
//	$ go run ./internal/tool/unlz zlib data.z -o data.bin
//	$ go run ./internal/tool/unlz lzx --size 32Ki --window-bits 16 --e8 data.lzx
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/dsnet/golib/strconv"
	"github.com/lzkit/compress"
	"github.com/lzkit/compress/flate"
	"github.com/lzkit/compress/internal/dict"
	"github.com/lzkit/compress/lzx"
	"github.com/lzkit/compress/zlib"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// maxGrowSize is the largest output buffer tried when the size is unknown.
const maxGrowSize = 1 << 30

type options struct {
	size       string
	output     string
	verbose    bool
	noChecksum bool
	windowBits uint
	e8         bool
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:           "unlz",
		Short:         "Decompress zlib, DEFLATE, and LZX streams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.size, "size", "", "Exact output size (e.g. 64Ki, 1e6); grown automatically if unset")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log block headers to stderr")

	for _, format := range []string{"zlib", "deflate", "lzx"} {
		format := format
		cmd := &cobra.Command{
			Use:   format + " FILE",
			Short: "Decompress a " + format + " file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				logger := newLogger(opts.verbose)
				err := run(format, args[0], opts, logger)
				if err != nil {
					logger.Error().Err(err).Str("file", args[0]).Msg(describe(err))
				}
				return err
			},
		}
		switch format {
		case "zlib":
			cmd.Flags().BoolVar(&opts.noChecksum, "no-checksum", false, "Skip Adler-32 verification")
		case "lzx":
			cmd.Flags().UintVar(&opts.windowBits, "window-bits", 15, "Base-2 logarithm of the window size (15..21)")
			cmd.Flags().BoolVar(&opts.e8, "e8", false, "Reverse x86 CALL translation on the output")
		}
		root.AddCommand(cmd)
	}
	return root
}

func newLogger(verbose bool) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if verbose {
		lvl = zerolog.TraceLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// describe names the class of a decoding failure.
func describe(err error) string {
	switch {
	case compress.IsInvalid(err):
		return "invalid input"
	case compress.IsBounds(err):
		return "output out of bounds"
	case compress.IsCorrupted(err):
		return "corrupted input"
	case compress.IsChecksum(err):
		return "checksum mismatch"
	default:
		return "decompression failed"
	}
}

func run(format, file string, opts options, logger zerolog.Logger) error {
	src, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}
	out, err := decode(format, src, opts, &logger)
	if err != nil {
		return err
	}
	logger.Info().Int("in", len(src)).Int("out", len(out)).Msg("decompressed")

	if opts.output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return ioutil.WriteFile(opts.output, out, 0664)
}

// decode decompresses src in the given format. Without an explicit size, the
// output buffer is doubled until the stream fits.
func decode(format string, src []byte, opts options, logger *zerolog.Logger) ([]byte, error) {
	var decompress func(dst []byte) (int, error)
	switch format {
	case "zlib":
		zd := zlib.NewDecoder(&zlib.DecoderConfig{SkipChecksum: opts.noChecksum, Logger: logger})
		decompress = func(dst []byte) (int, error) { return zd.Decompress(dst, src) }
	case "deflate":
		fd := flate.NewDecoder(&flate.DecoderConfig{Logger: logger})
		decompress = func(dst []byte) (int, error) { return fd.Decompress(dst, src) }
	case "lzx":
		if opts.size == "" {
			return nil, fmt.Errorf("lzx requires --size")
		}
		zd := lzx.NewDecoder(&lzx.DecoderConfig{WindowBits: opts.windowBits, E8Translation: opts.e8, Logger: logger})
		decompress = func(dst []byte) (int, error) { return zd.Decompress(dst, src) }
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}

	if opts.size != "" {
		size, err := strconv.ParsePrefix(opts.size, strconv.AutoParse)
		if err != nil || size < 0 || size > maxGrowSize {
			return nil, fmt.Errorf("invalid size: %q", opts.size)
		}
		dst := make([]byte, int(size))
		n, err := decompress(dst)
		return dst[:n], err
	}

	size := 4*len(src) + 64
	for {
		dst := make([]byte, size)
		n, err := decompress(dst)
		if err != dict.ErrShortBuffer || size >= maxGrowSize {
			return dst[:n], err
		}
		logger.Debug().Int("size", size).Msg("output buffer too small, retrying")
		size *= 2
	}
}
