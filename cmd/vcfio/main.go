// Package main provides the vcfio command-line tool.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vcfio/internal/compress"
	"github.com/inodb/vcfio/internal/store"
	"github.com/inodb/vcfio/internal/vcf"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("vcfio version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "view":
		return runView(args[1:])
	case "index":
		return runIndex(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vcfio - read, write and index VCF files

Usage:
  vcfio [options] <command> [arguments]

Commands:
  view        Decode a VCF file and re-encode it to stdout or a file
  index       Build a DuckDB variant index from a VCF file
  config      Manage vcfio configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Round-trip a file to stdout
  vcfio view input.vcf

  # Decompress, re-encode, and bgzip the output
  vcfio view -o output.vcf.gz input.vcf.gz

  # Index the variants of a file
  vcfio index -o variants.duckdb input.vcf

For more information on a command, use:
  vcfio <command> --help
`)
}

func runView(args []string) int {
	fs := flag.NewFlagSet("view", flag.ExitOnError)

	var outputFile string
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Decode a VCF file and re-encode it.

Usage:
  vcfio view [options] <input-file>

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	reader, err := openInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	var out io.Writer = os.Stdout
	var closers []io.Closer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return ExitError
		}
		closers = append(closers, f)
		out = f
		if strings.HasSuffix(outputFile, ".gz") {
			zw := compress.NewBGZFWriter(f)
			closers = append(closers, zw)
			out = zw
		}
	}

	if code := copyVCF(reader, out); code != ExitSuccess {
		return code
	}

	// Close the compressor before the file so the BGZF EOF marker lands.
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output: %v\n", err)
			return ExitError
		}
	}
	return ExitSuccess
}

func copyVCF(r io.Reader, out io.Writer) int {
	vr, err := vcf.NewReader(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	vw, err := vcf.NewWriter(out, vr.Header())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	for {
		dl, err := vr.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		if dl == nil {
			break
		}
		if err := vw.WriteDataLine(dl); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	}

	if err := vw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func runIndex(args []string) int {
	fs := flag.NewFlagSet("index", flag.ExitOnError)

	initConfig()

	var outputFile string
	var verbose bool
	fs.StringVar(&outputFile, "o", "", "Output DuckDB file (default: <input>.duckdb)")
	fs.StringVar(&outputFile, "output", "", "Output DuckDB file (default: <input>.duckdb)")
	fs.BoolVar(&verbose, "v", viper.GetBool("index.verbose"), "Log every indexed variant")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Build a DuckDB variant index from a VCF file.

Usage:
  vcfio index [options] <input-file>

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	inputPath := fs.Arg(0)
	if outputFile == "" {
		outputFile = strings.TrimSuffix(inputPath, ".gz") + ".duckdb"
	}

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	reader, err := openInput(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	vr, err := vcf.NewReader(reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	st, err := store.Open(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer st.Close()
	st.SetLogger(logger)

	count := 0
	for {
		dl, err := vr.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		if dl == nil {
			break
		}
		if err := st.InsertDataLine(dl); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		count++
	}

	logger.Info("indexed variants",
		zap.String("input", inputPath),
		zap.String("output", outputFile),
		zap.Int("count", count))
	return ExitSuccess
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// openInput opens a possibly gzip- or BGZF-compressed VCF file and returns
// a reader over the decompressed text. "-" reads stdin.
func openInput(path string) (io.Reader, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	if compress.IsGzip(raw) {
		raw, err = compress.GzipDecode(raw)
		if err != nil {
			return nil, fmt.Errorf("decompress vcf file: %w", err)
		}
	}
	return bytes.NewReader(raw), nil
}
