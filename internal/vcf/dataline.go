package vcf

import (
	"fmt"
	"strconv"
	"strings"
)

// The missing-value sentinel shared by most data-line fields.
const missing = "."

// Field delimiters. ID, FILTER and INFO entries are semicolon-delimited,
// ALT entries comma-delimited, FORMAT keys and sample values
// colon-delimited.
const (
	sepSemicolon = ";"
	sepComma     = ","
	sepColon     = ":"
)

// List is the shared shape of the delimited data-line fields: either the
// missing sentinel "." or an ordered, non-deduplicated list of raw entries.
// The delimiter belongs to the field, not the value, so the same type
// serves ID, ALT, INFO, FORMAT and sample columns.
type List struct {
	Missing bool
	Entries []string
}

// Entries constructs a present List.
func Entries(entries ...string) List {
	return List{Entries: entries}
}

// MissingList is the "." value of a List-shaped field.
var MissingList = List{Missing: true}

func parseListField(s, name, sep string) (List, error) {
	if s == "" {
		return List{}, fmt.Errorf("%s cannot be empty", name)
	}
	if s == missing {
		return MissingList, nil
	}
	return List{Entries: strings.Split(s, sep)}, nil
}

func (l List) join(sep string) string {
	if l.Missing {
		return missing
	}
	return strings.Join(l.Entries, sep)
}

// Qual is the QUAL column: missing or a non-negative integer score.
type Qual struct {
	Missing bool
	Score   uint32
}

func parseQual(s string) (Qual, error) {
	if s == "" {
		return Qual{}, fmt.Errorf("qual cannot be empty")
	}
	if s == missing {
		return Qual{Missing: true}, nil
	}
	score, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return Qual{}, fmt.Errorf("invalid qual %q: %w", s, err)
	}
	return Qual{Score: uint32(score)}, nil
}

func (q Qual) String() string {
	if q.Missing {
		return missing
	}
	return strconv.FormatUint(uint64(q.Score), 10)
}

// FilterStatus is the FILTER column: missing, the literal PASS, or a
// semicolon-delimited list of failed filter IDs.
type FilterStatus struct {
	Missing bool
	Pass    bool
	Entries []string
}

func parseFilterStatus(s string) (FilterStatus, error) {
	if s == "" {
		return FilterStatus{}, fmt.Errorf("filter cannot be empty")
	}
	switch s {
	case missing:
		return FilterStatus{Missing: true}, nil
	case "PASS":
		return FilterStatus{Pass: true}, nil
	}
	return FilterStatus{Entries: strings.Split(s, sepSemicolon)}, nil
}

func (f FilterStatus) String() string {
	switch {
	case f.Missing:
		return missing
	case f.Pass:
		return "PASS"
	}
	return strings.Join(f.Entries, sepSemicolon)
}

// DataLine is one tab-delimited variant record.
type DataLine struct {
	// Chromosome is an identifier from the reference genome or an
	// angle-bracketed ID pointing to a contig of the assembly file.
	Chromosome string

	// Position is the 1-based reference position.
	Position uint64

	// ID holds the semicolon-delimited variant identifiers.
	ID List

	// Reference is the reference allele.
	Reference string

	// Alt holds the comma-delimited alternate alleles.
	Alt List

	// Qual is the quality score.
	Qual Qual

	// Filter is the filter status.
	Filter FilterStatus

	// Info holds the semicolon-delimited INFO entries.
	Info List

	// Format holds the colon-delimited per-sample field keys; nil when the
	// file declares no sample columns.
	Format *List

	// Samples holds one colon-delimited value list per sample column,
	// positionally aligned with Format.
	Samples []List
}

// ParseDataLine decodes one record. columnNames are the sample columns the
// header declared; the line must have exactly 8 columns when there are
// none, and 8 + 1 (FORMAT) + len(columnNames) otherwise.
func ParseDataLine(line string, columnNames []string) (*DataLine, error) {
	parts := strings.Split(line, "\t")

	expected := len(fixedColumns)
	if len(columnNames) > 0 {
		expected += 1 + len(columnNames)
	}
	if len(parts) != expected {
		return nil, fmt.Errorf("invalid number of columns, expected %d, found %d", expected, len(parts))
	}

	position, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid position %q: %w", parts[1], err)
	}
	id, err := parseListField(parts[2], "id", sepSemicolon)
	if err != nil {
		return nil, err
	}
	alt, err := parseListField(parts[4], "alt", sepComma)
	if err != nil {
		return nil, err
	}
	qual, err := parseQual(parts[5])
	if err != nil {
		return nil, err
	}
	filter, err := parseFilterStatus(parts[6])
	if err != nil {
		return nil, err
	}
	info, err := parseListField(parts[7], "info", sepSemicolon)
	if err != nil {
		return nil, err
	}

	dl := &DataLine{
		Chromosome: parts[0],
		Position:   position,
		ID:         id,
		Reference:  parts[3],
		Alt:        alt,
		Qual:       qual,
		Filter:     filter,
		Info:       info,
	}

	if expected > len(fixedColumns) {
		format, err := parseListField(parts[8], "format", sepColon)
		if err != nil {
			return nil, err
		}
		dl.Format = &format

		dl.Samples = make([]List, 0, len(parts)-9)
		for _, sample := range parts[9:] {
			value, err := parseListField(sample, "sample", sepColon)
			if err != nil {
				return nil, err
			}
			dl.Samples = append(dl.Samples, value)
		}
	}

	return dl, nil
}

// FormatIndex returns the position of a key within the line's FORMAT list,
// for locating the matching entry in each sample's value list. The second
// return is false when the line has no FORMAT column or the key is absent.
func (dl *DataLine) FormatIndex(key string) (int, bool) {
	if dl.Format == nil || dl.Format.Missing {
		return 0, false
	}
	for i, entry := range dl.Format.Entries {
		if entry == key {
			return i, true
		}
	}
	return 0, false
}

// String emits the record as a tab-delimited line without a trailing line
// terminator; the writer owns line separation.
func (dl *DataLine) String() string {
	var b strings.Builder
	b.WriteString(dl.Chromosome)
	b.WriteByte('\t')
	b.WriteString(strconv.FormatUint(dl.Position, 10))
	b.WriteByte('\t')
	b.WriteString(dl.ID.join(sepSemicolon))
	b.WriteByte('\t')
	b.WriteString(dl.Reference)
	b.WriteByte('\t')
	b.WriteString(dl.Alt.join(sepComma))
	b.WriteByte('\t')
	b.WriteString(dl.Qual.String())
	b.WriteByte('\t')
	b.WriteString(dl.Filter.String())
	b.WriteByte('\t')
	b.WriteString(dl.Info.join(sepSemicolon))

	if dl.Format != nil {
		b.WriteByte('\t')
		b.WriteString(dl.Format.join(sepColon))
		for _, sample := range dl.Samples {
			b.WriteByte('\t')
			b.WriteString(sample.join(sepColon))
		}
	}
	return b.String()
}
