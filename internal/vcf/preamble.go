package vcf

import (
	"fmt"
	"strings"
)

const (
	// versionPrefix marks the file format version line.
	versionPrefix = "##fileformat="

	// formatColumn is the column declaring per-sample field keys.
	formatColumn = "FORMAT"
)

// fixedColumns are the eight mandatory data-line columns.
var fixedColumns = []string{"CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

// columnPrefix is the mandatory start of the column-name row.
var columnPrefix = "#" + strings.Join(fixedColumns, "\t")

// parseVersion extracts the version string from the file format line.
// Example: "##fileformat=VCFv4.3" -> "VCFv4.3".
func parseVersion(line string) (string, error) {
	if !strings.HasPrefix(line, versionPrefix) {
		return "", fmt.Errorf("invalid version line %q (expected %q prefix)", line, versionPrefix)
	}
	return line[len(versionPrefix):], nil
}

// parseColumnNames extracts the sample column names from the #CHROM row.
// The row must start with the eight fixed columns; anything after them must
// be FORMAT followed by at least one sample name, and sample names must be
// pairwise unique. A row with only the fixed columns declares no samples.
func parseColumnNames(line string) ([]string, error) {
	if !strings.HasPrefix(line, columnPrefix) {
		return nil, fmt.Errorf("invalid columns line %q (columns line should start with %q)", line, columnPrefix)
	}

	remaining := strings.TrimSpace(line[len(columnPrefix):])
	if remaining == "" {
		return nil, nil
	}

	if !strings.HasPrefix(remaining, formatColumn) {
		return nil, fmt.Errorf("unexpected column name after INFO in %q", remaining)
	}
	remaining = strings.TrimSpace(remaining[len(formatColumn):])

	columns := strings.Split(remaining, "\t")
	seen := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("invalid columns line %q (empty sample name after FORMAT)", line)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("sample column names must be unique, %q appears twice", name)
		}
		seen[name] = struct{}{}
	}
	return columns, nil
}
