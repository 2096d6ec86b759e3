// Package compress provides the byte-level compression used around VCF
// streams. The format codec itself never compresses; callers apply these
// transforms at the I/O boundary.
package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/compress/gzip"
)

// GzipEncode compresses data with the gzip format.
func GzipEncode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("gzip encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip encode: %w", err)
	}
	return buf.Bytes(), nil
}

// GzipDecode decompresses gzip-formatted data.
func GzipDecode(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decode: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gzip decode: %w", err)
	}
	return out, nil
}

// IsGzip reports whether data starts with the gzip magic bytes. BGZF files
// match too: BGZF is blocked gzip.
func IsGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// NewBGZFReader wraps r for BGZF (blocked gzip) decompression, the framing
// used by bgzip-compressed VCF files.
func NewBGZFReader(r io.Reader) (*bgzf.Reader, error) {
	zr, err := bgzf.NewReader(r, 1)
	if err != nil {
		return nil, fmt.Errorf("open bgzf reader: %w", err)
	}
	return zr, nil
}

// NewBGZFWriter wraps w for BGZF compression. Close the returned writer to
// flush the final block and the BGZF end-of-file marker.
func NewBGZFWriter(w io.Writer) *bgzf.Writer {
	return bgzf.NewWriter(w, 1)
}
