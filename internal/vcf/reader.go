// Package vcf implements reading and writing of the Variant Call Format:
// the "##" metadata header, the #CHROM column row, and the tab-delimited
// variant records that follow. Parsing and formatting are symmetric, so a
// parsed file can be written back out and re-parsed to an equal model.
//
// The package operates on uncompressed text; callers working with
// compressed files decompress at the I/O boundary (see internal/compress).
package vcf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Reader decodes a VCF stream. The header is consumed at construction; data
// lines are decoded lazily, one per Next call, in file order.
type Reader struct {
	br         *bufio.Reader
	header     *Header
	lineNumber int
}

// NewReader reads the header block (version line, "##" header lines, and
// the #CHROM column row) from r and returns a Reader positioned at the
// first data line. A header line that matches none of those three shapes is
// an error.
func NewReader(r io.Reader) (*Reader, error) {
	rd := &Reader{
		br:     bufio.NewReader(r),
		header: &Header{},
	}
	if err := rd.readHeader(); err != nil {
		return nil, err
	}
	return rd, nil
}

func (r *Reader) readHeader() error {
	for {
		line, err := r.readLine()
		if err == io.EOF {
			// A file may consist of a header only.
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case strings.HasPrefix(line, versionPrefix):
			version, err := parseVersion(line)
			if err != nil {
				return &ParseError{Line: r.lineNumber, Message: err.Error()}
			}
			r.header.Version = version

		case strings.HasPrefix(line, "##"):
			hl, err := ParseHeaderLine(line)
			if err != nil {
				return &ParseError{Line: r.lineNumber, Message: err.Error()}
			}
			r.header.Lines = append(r.header.Lines, hl)

		case strings.HasPrefix(line, "#"):
			columns, err := parseColumnNames(line)
			if err != nil {
				return &ParseError{Line: r.lineNumber, Message: err.Error()}
			}
			r.header.ColumnNames = columns
			return nil

		default:
			return &ParseError{Line: r.lineNumber, Message: fmt.Sprintf("invalid line while parsing header: %q", line)}
		}
	}
}

// Header returns the parsed header. The reader does not modify it after
// construction.
func (r *Reader) Header() *Header {
	return r.header
}

// Next decodes the next data line. It returns nil, nil at end of input, a
// ParseError for a malformed record, and a wrapped I/O error otherwise. A
// malformed record is terminal for that call only; whether to keep
// consuming is the caller's decision.
func (r *Reader) Next() (*DataLine, error) {
	line, err := r.readLine()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dl, err := ParseDataLine(line, r.header.ColumnNames)
	if err != nil {
		return nil, &ParseError{Line: r.lineNumber, Message: err.Error()}
	}
	return dl, nil
}

// LineNumber returns the number of the last physical line read.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// readLine reads one physical line with its terminator stripped. It
// returns io.EOF only when no bytes remain; a final line without a
// trailing newline is returned normally.
func (r *Reader) readLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read line: %w", err)
	}
	if line == "" && err == io.EOF {
		return "", io.EOF
	}
	r.lineNumber++
	return strings.TrimRight(line, "\r\n"), nil
}
