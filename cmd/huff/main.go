// Command huff compresses and decompresses files with Huffman coding.
//
// Usage:
//
//	huff c [-o out] <input>   compress to <input>.huff
//	huff d [-o out] <input>   decompress (default: <input> without .huff)
//	huff info <input>         print archive header and code table
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/octu0/huff"
	"github.com/pkg/errors"
)

const archiveExt = ".huff"

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "c", "compress":
		err = runCompress(os.Args[2:])
	case "d", "decompress":
		err = runDecompress(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:], os.Stdout)
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		log.Printf("[ERROR] unknown command %q", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Printf("[ERROR] %+v", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  huff c [options] <input>      Compress a file
  huff d [options] <input.huff> Decompress an archive
  huff info <input.huff>        Print archive header and code table

Run "huff <command> -h" for command-specific options.
`)
}

func compressedName(src string) string {
	return src + archiveExt
}

func decompressedName(src string) string {
	if name, ok := strings.CutSuffix(src, archiveExt); ok && name != "" {
		return name
	}
	return src + ".out"
}

func runCompress(args []string) error {
	fs := flag.NewFlagSet("c", flag.ExitOnError)
	output := fs.String("o", "", "output file (default <input>.huff)")
	bufferBlocks := fs.Int("buffer", huff.BufferSize, "blocks buffered per write")
	verbose := fs.Bool("v", false, "print archive statistics")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.Errorf("c: expected 1 input, got %d", fs.NArg())
	}
	src := fs.Arg(0)
	dst := *output
	if dst == "" {
		dst = compressedName(src)
	}

	t := time.Now()
	if err := huff.CompressWithOptions(dst, src, &huff.Options{BufferBlocks: *bufferBlocks}); err != nil {
		return errors.WithStack(err)
	}
	log.Printf("[INFO] Encoding completed in %.5f sec", time.Since(t).Seconds())

	if *verbose {
		return printRatio(src, dst)
	}
	return nil
}

func runDecompress(args []string) error {
	fs := flag.NewFlagSet("d", flag.ExitOnError)
	output := fs.String("o", "", "output file (default <input> without .huff)")
	bufferBlocks := fs.Int("buffer", huff.BufferSize, "blocks buffered per read")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.Errorf("d: expected 1 input, got %d", fs.NArg())
	}
	src := fs.Arg(0)
	dst := *output
	if dst == "" {
		dst = decompressedName(src)
	}

	t := time.Now()
	if err := huff.DecompressWithOptions(dst, src, &huff.Options{BufferBlocks: *bufferBlocks}); err != nil {
		return errors.WithStack(err)
	}
	log.Printf("[INFO] Decoding completed in %.5f sec", time.Since(t).Seconds())
	return nil
}

func printRatio(src, dst string) error {
	srcStat, err := os.Stat(src)
	if err != nil {
		return errors.WithStack(err)
	}
	dstStat, err := os.Stat(dst)
	if err != nil {
		return errors.WithStack(err)
	}
	ratio := 0.0
	if 0 < srcStat.Size() {
		ratio = (float64(dstStat.Size()) / float64(srcStat.Size())) * 100
	}
	log.Printf(
		"[INFO] %3.2fKB -> %3.2fKB compressed %3.2f%%",
		float64(srcStat.Size())/1024.0,
		float64(dstStat.Size())/1024.0,
		ratio,
	)
	return nil
}

func runInfo(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.Errorf("info: expected 1 input, got %d", fs.NArg())
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	info, err := huff.Inspect(f)
	if err != nil {
		return errors.Wrapf(err, "failed to inspect %s", fs.Arg(0))
	}
	return printInfo(w, info)
}

func printInfo(w io.Writer, info *huff.ArchiveInfo) error {
	h := info.Header
	fmt.Fprintf(w, "table length:   %d\n", h.TableLength)
	fmt.Fprintf(w, "blocks:         %d\n", h.NumberOfBlocks)
	fmt.Fprintf(w, "remaining bits: %d\n", h.RemainingBits)
	fmt.Fprintf(w, "archive size:   %d\n", info.Size())
	for _, e := range info.Entries {
		fmt.Fprintf(w, "  %#02x len=%-2d code=%0*b\n", e.Symbol, e.Length, int(e.Length), e.Code)
	}
	return nil
}
