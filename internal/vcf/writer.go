package vcf

import (
	"bufio"
	"fmt"
	"io"
)

// Writer encodes a VCF stream. The full header block is written at
// construction; each WriteDataLine call appends one record, in call order.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter writes the version line, the header lines in stored order, and
// the column row to w, then returns a Writer ready for data lines. The
// column row is not newline-terminated: WriteDataLine prefixes every record
// with a line break, so a file never ends with a dangling newline.
func NewWriter(w io.Writer, header *Header) (*Writer, error) {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s%s\n", versionPrefix, header.Version); err != nil {
		return nil, fmt.Errorf("write version line: %w", err)
	}

	for _, hl := range header.Lines {
		if _, err := fmt.Fprintf(bw, "%s\n", hl); err != nil {
			return nil, fmt.Errorf("write header line: %w", err)
		}
	}

	if _, err := bw.WriteString(columnPrefix); err != nil {
		return nil, fmt.Errorf("write column row: %w", err)
	}
	if len(header.ColumnNames) > 0 {
		if _, err := bw.WriteString("\t" + formatColumn); err != nil {
			return nil, fmt.Errorf("write column row: %w", err)
		}
		for _, name := range header.ColumnNames {
			if _, err := bw.WriteString("\t" + name); err != nil {
				return nil, fmt.Errorf("write column row: %w", err)
			}
		}
	}

	return &Writer{bw: bw}, nil
}

// WriteDataLine appends one record.
func (w *Writer) WriteDataLine(dl *DataLine) error {
	if _, err := w.bw.WriteString("\n" + dl.String()); err != nil {
		return fmt.Errorf("write data line: %w", err)
	}
	return nil
}

// Flush writes buffered output to the underlying sink. Call it once after
// the last data line.
func (w *Writer) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
