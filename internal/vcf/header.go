package vcf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Header holds everything that precedes the data lines of a VCF file.
type Header struct {
	// Version is the string captured after the "##fileformat=" marker.
	Version string

	// Lines are the remaining header lines, in file order. Order is
	// significant for round-trip output.
	Lines []HeaderLine

	// ColumnNames are the sample column names from the #CHROM row, empty
	// when the file declares no samples.
	ColumnNames []string
}

// HeaderLine is one parsed "##TAG=..." metadata line. It is a closed union:
// the only implementations are the types in this package, one per
// recognized tag plus Other for everything else.
type HeaderLine interface {
	fmt.Stringer

	headerLine()
}

// Alt describes a "##ALT=<ID=...,Description=...>" line. The ID field may
// carry a colon-delimited sequence of structural variant tags,
// e.g. INS:ME:ALU.
type Alt struct {
	IDs         []AltID
	Description string
}

// Assembly describes a "##assembly=url" line.
type Assembly struct {
	URL string
}

// Contig describes a "##contig=<ID=...>" line. Attributes other than ID and
// species are kept verbatim, in input order, so arbitrary contig metadata
// survives a round trip.
type Contig struct {
	ID      string
	Species string // empty when absent
	Attrs   *Fields
}

// FileDate describes a "##fileDate=20100501" line.
type FileDate struct {
	Date string
}

// Filter describes a "##FILTER=<ID=...,Description=...>" line.
type Filter struct {
	ID          string
	Description string
}

// Format describes a "##FORMAT=<ID=...,Number=...,Type=...,Description=...>"
// line.
type Format struct {
	ID          string
	Number      Number
	Type        FormatType
	Description string
}

// Info describes a "##INFO=<ID=...,Number=...,Type=...,Description=...>"
// line, with optional Source and Version attributes.
type Info struct {
	ID          string
	Number      Number
	Type        InfoType
	Description string
	Source      string // empty when absent
	Version     string // empty when absent
}

// Meta describes a "##META=<ID=...,Type=...,Number=...,Values=[...]>" line.
// The VCF 4.3 specification leaves the Type and Number values of META lines
// open, so Type stays a free-form string.
type Meta struct {
	ID     string
	Type   string
	Number Number
	Values []string
}

// Pedigree describes a "##PEDIGREE=<ID=...,...>" line. The relation shape
// depends on which keys the payload carries.
type Pedigree struct {
	ID       string
	Relation PedigreeRelation
}

// PedigreeDB describes a "##pedigreeDB=url" line.
type PedigreeDB struct {
	URL string
}

// Sample describes a "##SAMPLE=<ID=...,Description=...>" line. Attributes
// other than ID, Description and DOI are kept in input order with their
// values semicolon-split.
type Sample struct {
	ID          string
	Meta        []SampleAttr
	Description string
	DOI         string // empty when absent
}

// SampleAttr is one retained key with its semicolon-delimited values.
type SampleAttr struct {
	Key    string
	Values []string
}

// Other is the catch-all for header lines with an unrecognized tag,
// e.g. "##reference=1000GenomesPilot-NCBI36".
type Other struct {
	Key   string
	Value string
}

func (Alt) headerLine()        {}
func (Assembly) headerLine()   {}
func (Contig) headerLine()     {}
func (FileDate) headerLine()   {}
func (Filter) headerLine()     {}
func (Format) headerLine()     {}
func (Info) headerLine()       {}
func (Meta) headerLine()       {}
func (Pedigree) headerLine()   {}
func (PedigreeDB) headerLine() {}
func (Sample) headerLine()     {}
func (Other) headerLine()      {}

type headerLineParser func(*Fields) (HeaderLine, error)

// Recognized tags and their parsers. Adding a tag means adding a variant
// type, a parser here, and a String method; unrecognized tags fall through
// to Other.
var headerLineParsers = map[string]headerLineParser{
	"ALT":        parseAltLine,
	"assembly":   parseAssemblyLine,
	"contig":     parseContigLine,
	"fileDate":   parseFileDateLine,
	"FILTER":     parseFilterLine,
	"FORMAT":     parseFormatLine,
	"INFO":       parseInfoLine,
	"META":       parseMetaLine,
	"PEDIGREE":   parsePedigreeLine,
	"pedigreeDB": parsePedigreeDBLine,
	"SAMPLE":     parseSampleLine,
}

// ParseHeaderLine parses one "##TAG=payload" header line, including its "##"
// prefix. Lines with a well-formed but unrecognized tag become Other; a
// missing "##" prefix, a missing "=", or a malformed payload is an error.
func ParseHeaderLine(line string) (HeaderLine, error) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return nil, fmt.Errorf("invalid header line %q (header lines must contain an `=` sign)", line)
	}

	tag := line[:eq]
	if !strings.HasPrefix(tag, "##") {
		return nil, fmt.Errorf("invalid header type %q (header lines must start with `##`)", tag)
	}
	tag = tag[2:]

	fields, err := parsePayload(line[eq+1:])
	if err != nil {
		return nil, err
	}

	if parse, ok := headerLineParsers[tag]; ok {
		return parse(fields)
	}

	value, err := fields.require(OtherKey)
	if err != nil {
		return nil, err
	}
	return Other{Key: tag, Value: value}, nil
}

func parseAltLine(fields *Fields) (HeaderLine, error) {
	ids, err := fields.require("ID")
	if err != nil {
		return nil, err
	}
	altIDs, err := parseAltIDs(ids)
	if err != nil {
		return nil, err
	}
	description, err := fields.require("Description")
	if err != nil {
		return nil, err
	}
	return Alt{IDs: altIDs, Description: description}, nil
}

func parseAssemblyLine(fields *Fields) (HeaderLine, error) {
	url, err := fields.require(OtherKey)
	if err != nil {
		return nil, err
	}
	return Assembly{URL: url}, nil
}

func parseContigLine(fields *Fields) (HeaderLine, error) {
	id, err := fields.require("ID")
	if err != nil {
		return nil, err
	}
	species, _ := fields.Get("species")
	attrs := NewFields()
	for _, key := range fields.Keys() {
		if key == "ID" || key == "species" {
			continue
		}
		value, _ := fields.Get(key)
		attrs.Set(key, value)
	}
	return Contig{ID: id, Species: species, Attrs: attrs}, nil
}

func parseFileDateLine(fields *Fields) (HeaderLine, error) {
	date, err := fields.require(OtherKey)
	if err != nil {
		return nil, err
	}
	return FileDate{Date: date}, nil
}

func parseFilterLine(fields *Fields) (HeaderLine, error) {
	id, err := fields.require("ID")
	if err != nil {
		return nil, err
	}
	description, err := fields.require("Description")
	if err != nil {
		return nil, err
	}
	return Filter{ID: id, Description: description}, nil
}

func parseFormatLine(fields *Fields) (HeaderLine, error) {
	id, err := fields.require("ID")
	if err != nil {
		return nil, err
	}
	number, err := parseNumber(fields.Get("Number"))
	if err != nil {
		return nil, err
	}
	typ, err := parseFormatType(fields.Get("Type"))
	if err != nil {
		return nil, err
	}
	description, err := fields.require("Description")
	if err != nil {
		return nil, err
	}
	return Format{ID: id, Number: number, Type: typ, Description: description}, nil
}

func parseInfoLine(fields *Fields) (HeaderLine, error) {
	id, err := fields.require("ID")
	if err != nil {
		return nil, err
	}
	number, err := parseNumber(fields.Get("Number"))
	if err != nil {
		return nil, err
	}
	typ, err := parseInfoType(fields.Get("Type"))
	if err != nil {
		return nil, err
	}
	description, err := fields.require("Description")
	if err != nil {
		return nil, err
	}
	source, _ := fields.Get("Source")
	version, _ := fields.Get("Version")
	return Info{
		ID:          id,
		Number:      number,
		Type:        typ,
		Description: description,
		Source:      source,
		Version:     version,
	}, nil
}

func parseMetaLine(fields *Fields) (HeaderLine, error) {
	id, err := fields.require("ID")
	if err != nil {
		return nil, err
	}
	typ, err := fields.require("Type")
	if err != nil {
		return nil, err
	}
	number, err := parseNumber(fields.Get("Number"))
	if err != nil {
		return nil, err
	}
	rawValues, err := fields.require("Values")
	if err != nil {
		return nil, err
	}
	var values []string
	for _, v := range strings.Split(rawValues, ",") {
		values = append(values, strings.TrimSpace(v))
	}
	return Meta{ID: id, Type: typ, Number: number, Values: values}, nil
}

func parsePedigreeLine(fields *Fields) (HeaderLine, error) {
	id, err := fields.require("ID")
	if err != nil {
		return nil, err
	}
	relation, err := parsePedigreeRelation(fields)
	if err != nil {
		return nil, err
	}
	return Pedigree{ID: id, Relation: relation}, nil
}

func parsePedigreeDBLine(fields *Fields) (HeaderLine, error) {
	url, err := fields.require(OtherKey)
	if err != nil {
		return nil, err
	}
	return PedigreeDB{URL: url}, nil
}

func parseSampleLine(fields *Fields) (HeaderLine, error) {
	id, err := fields.require("ID")
	if err != nil {
		return nil, err
	}
	description, err := fields.require("Description")
	if err != nil {
		return nil, err
	}
	doi, _ := fields.Get("DOI")
	var meta []SampleAttr
	for _, key := range fields.Keys() {
		if key == "ID" || key == "Description" || key == "DOI" {
			continue
		}
		value, _ := fields.Get(key)
		meta = append(meta, SampleAttr{Key: key, Values: strings.Split(value, ";")})
	}
	return Sample{ID: id, Meta: meta, Description: description, DOI: doi}, nil
}

func (a Alt) String() string {
	ids := make([]string, len(a.IDs))
	for i, id := range a.IDs {
		ids[i] = string(id)
	}
	return fmt.Sprintf("##ALT=<ID=%s,Description=\"%s\">", strings.Join(ids, ":"), a.Description)
}

func (a Assembly) String() string {
	return "##assembly=" + a.URL
}

func (c Contig) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "##contig=<ID=%s", c.ID)
	if c.Species != "" {
		fmt.Fprintf(&b, ",species=\"%s\"", c.Species)
	}
	if c.Attrs != nil {
		for _, key := range c.Attrs.Keys() {
			value, _ := c.Attrs.Get(key)
			fmt.Fprintf(&b, ",%s=%s", key, value)
		}
	}
	b.WriteString(">")
	return b.String()
}

func (f FileDate) String() string {
	return "##fileDate=" + f.Date
}

func (f Filter) String() string {
	return fmt.Sprintf("##FILTER=<ID=%s,Description=\"%s\">", f.ID, f.Description)
}

func (f Format) String() string {
	return fmt.Sprintf("##FORMAT=<ID=%s,Number=%s,Type=%s,Description=\"%s\">",
		f.ID, f.Number, f.Type, f.Description)
}

func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "##INFO=<ID=%s,Number=%s,Type=%s,Description=\"%s\"",
		i.ID, i.Number, i.Type, i.Description)
	if i.Source != "" {
		fmt.Fprintf(&b, ",Source=\"%s\"", i.Source)
	}
	if i.Version != "" {
		fmt.Fprintf(&b, ",Version=\"%s\"", i.Version)
	}
	b.WriteString(">")
	return b.String()
}

func (m Meta) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "##META=<ID=%s,Type=%s,Number=%s", m.ID, m.Type, m.Number)
	// An empty Values clause can never re-parse, so it is omitted.
	if len(m.Values) > 0 {
		fmt.Fprintf(&b, ",Values=[%s]", strings.Join(m.Values, ","))
	}
	b.WriteString(">")
	return b.String()
}

func (p Pedigree) String() string {
	return fmt.Sprintf("##PEDIGREE=<ID=%s,%s>", p.ID, p.Relation)
}

func (p PedigreeDB) String() string {
	return "##pedigreeDB=" + p.URL
}

func (s Sample) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "##SAMPLE=<ID=%s", s.ID)
	for _, attr := range s.Meta {
		fmt.Fprintf(&b, ",%s=%s", attr.Key, strings.Join(attr.Values, ";"))
	}
	fmt.Fprintf(&b, ",Description=\"%s\"", s.Description)
	if s.DOI != "" {
		fmt.Fprintf(&b, ",DOI=%s", s.DOI)
	}
	b.WriteString(">")
	return b.String()
}

func (o Other) String() string {
	return fmt.Sprintf("##%s=%s", o.Key, o.Value)
}

// Number encodes how many values an INFO or FORMAT field carries per record.
// Non-negative values are fixed counts; the named constants mirror the
// format's sentinel characters.
type Number int

const (
	// NumberAllele is one value per alternate allele ("A").
	NumberAllele Number = -1 - iota
	// NumberReference is one value per possible allele, reference
	// included ("R").
	NumberReference
	// NumberGenotype is one value per possible genotype ("G").
	NumberGenotype
	// NumberUnknown means the count varies or is unbounded (".").
	NumberUnknown
)

// parseNumber converts the raw Number attribute. An absent attribute
// defaults to NumberUnknown rather than erroring.
func parseNumber(s string, ok bool) (Number, error) {
	if !ok {
		return NumberUnknown, nil
	}
	switch s {
	case "A":
		return NumberAllele, nil
	case "R":
		return NumberReference, nil
	case "G":
		return NumberGenotype, nil
	case ".":
		return NumberUnknown, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid Number value %q", s)
	}
	return Number(n), nil
}

func (n Number) String() string {
	switch n {
	case NumberAllele:
		return "A"
	case NumberReference:
		return "R"
	case NumberGenotype:
		return "G"
	case NumberUnknown:
		return "."
	}
	return strconv.Itoa(int(n))
}

// InfoType is the value type of an INFO field. The zero value is
// InfoString, the default when the Type attribute is absent.
type InfoType int

const (
	InfoString InfoType = iota
	InfoCharacter
	InfoFlag
	InfoFloat
	InfoInteger
)

func parseInfoType(s string, ok bool) (InfoType, error) {
	if !ok {
		return InfoString, nil
	}
	switch s {
	case "String":
		return InfoString, nil
	case "Character":
		return InfoCharacter, nil
	case "Flag":
		return InfoFlag, nil
	case "Float":
		return InfoFloat, nil
	case "Integer":
		return InfoInteger, nil
	}
	return 0, fmt.Errorf("invalid INFO Type value %q", s)
}

func (t InfoType) String() string {
	switch t {
	case InfoCharacter:
		return "Character"
	case InfoFlag:
		return "Flag"
	case InfoFloat:
		return "Float"
	case InfoInteger:
		return "Integer"
	}
	return "String"
}

// FormatType is the value type of a FORMAT field. Unlike InfoType it has no
// Flag: genotype fields always carry a value. The zero value is
// FormatString, the default when the Type attribute is absent.
type FormatType int

const (
	FormatString FormatType = iota
	FormatCharacter
	FormatFloat
	FormatInteger
)

func parseFormatType(s string, ok bool) (FormatType, error) {
	if !ok {
		return FormatString, nil
	}
	switch s {
	case "String":
		return FormatString, nil
	case "Character":
		return FormatCharacter, nil
	case "Float":
		return FormatFloat, nil
	case "Integer":
		return FormatInteger, nil
	}
	return 0, fmt.Errorf("invalid FORMAT Type value %q", s)
}

func (t FormatType) String() string {
	switch t {
	case FormatCharacter:
		return "Character"
	case FormatFloat:
		return "Float"
	case FormatInteger:
		return "Integer"
	}
	return "String"
}

// AltID is one structural variant tag from an ALT line's ID field. The
// known tags are the constants below; anything else (ambiguity codes,
// subtype names like ME or ALU) passes through verbatim.
type AltID string

const (
	AltDel AltID = "DEL"
	AltIns AltID = "INS"
	AltDup AltID = "DUP"
	AltInv AltID = "INV"
	AltCNV AltID = "CNV"
	AltBnd AltID = "BND"
)

func parseAltIDs(s string) ([]AltID, error) {
	parts := strings.Split(s, ":")
	ids := make([]AltID, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("invalid ALT ID %q (empty tag)", s)
		}
		ids = append(ids, AltID(part))
	}
	return ids, nil
}

// PedigreeRelation is the relation carried by a PEDIGREE line: exactly one
// of Original, Parents or Ancestors, selected by which payload keys are
// present.
type PedigreeRelation interface {
	fmt.Stringer

	pedigreeRelation()
}

// Original points at the sample this one derives from,
// e.g. <ID=TumourSample,Original=GermlineID>.
type Original struct {
	ID string
}

// Parents names both parent samples,
// e.g. <ID=ChildID,Father=FatherID,Mother=MotherID>.
type Parents struct {
	Father string
	Mother string
}

// Ancestors lists ancestor samples,
// e.g. <ID=SampleID,Name_1=Ancestor_1,...,Name_N=Ancestor_N>.
type Ancestors struct {
	IDs []string
}

func (Original) pedigreeRelation()  {}
func (Parents) pedigreeRelation()   {}
func (Ancestors) pedigreeRelation() {}

func parsePedigreeRelation(fields *Fields) (PedigreeRelation, error) {
	switch {
	case fields.Has("Original"):
		id, err := fields.require("Original")
		if err != nil {
			return nil, err
		}
		return Original{ID: id}, nil

	case fields.Has("Father") || fields.Has("Mother"):
		father, err := fields.require("Father")
		if err != nil {
			return nil, err
		}
		mother, err := fields.require("Mother")
		if err != nil {
			return nil, err
		}
		return Parents{Father: father, Mother: mother}, nil

	case fields.Has("Name_1"):
		keys := append([]string(nil), fields.Keys()...)
		sort.Strings(keys)
		var ids []string
		for _, key := range keys {
			if key == "ID" {
				continue
			}
			if !strings.HasPrefix(key, "Name_") {
				return nil, fmt.Errorf("invalid pedigree ancestor key %q", key)
			}
			value, _ := fields.Get(key)
			ids = append(ids, value)
		}
		return Ancestors{IDs: ids}, nil
	}
	return nil, fmt.Errorf("invalid pedigree shape (expected Original, Father/Mother or Name_1 keys)")
}

func (o Original) String() string {
	return "Original=" + o.ID
}

func (p Parents) String() string {
	return fmt.Sprintf("Father=%s,Mother=%s", p.Father, p.Mother)
}

func (a Ancestors) String() string {
	// Keys are numbered from one, matching what the parser accepts.
	parts := make([]string, len(a.IDs))
	for i, id := range a.IDs {
		parts[i] = fmt.Sprintf("Name_%d=%s", i+1, id)
	}
	return strings.Join(parts, ",")
}
