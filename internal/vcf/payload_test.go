package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pairs flattens a Fields into ordered key/value tuples for comparison.
func pairs(f *Fields) [][2]string {
	var out [][2]string
	for _, key := range f.Keys() {
		value, _ := f.Get(key)
		out = append(out, [2]string{key, value})
	}
	return out
}

func TestParsePayload_Valid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    [][2]string
	}{
		{
			name:    "bare date",
			payload: "20100501",
			want:    [][2]string{{OtherKey, "20100501"}},
		},
		{
			name:    "bare url",
			payload: "ftp://ftp-trace.ncbi.nih.gov/1000genomes",
			want:    [][2]string{{OtherKey, "ftp://ftp-trace.ncbi.nih.gov/1000genomes"}},
		},
		{
			name:    "plain pairs",
			payload: "<ID=TumourSample,Original=GermlineID>",
			want:    [][2]string{{"ID", "TumourSample"}, {"Original", "GermlineID"}},
		},
		{
			name:    "quoted value",
			payload: `<ID=SVTYPE,Description="Type of structural variant">`,
			want:    [][2]string{{"ID", "SVTYPE"}, {"Description", "Type of structural variant"}},
		},
		{
			name:    "escaped quotes kept verbatim",
			payload: `<ID=SVTYPE,Description="Type of \"structural\" variant">`,
			want:    [][2]string{{"ID", "SVTYPE"}, {"Description", `Type of \"structural\" variant`}},
		},
		{
			name:    "bracketed value",
			payload: "<ID=Assay,Type=String,Number=.,Values=[WholeGenome, Exome]>",
			want: [][2]string{
				{"ID", "Assay"}, {"Type", "String"}, {"Number", "."},
				{"Values", "WholeGenome, Exome"},
			},
		},
		{
			name:    "trailing comma tolerated",
			payload: "<ID=ctg1,length=81195210,>",
			want:    [][2]string{{"ID", "ctg1"}, {"length", "81195210"}},
		},
		{
			name:    "duplicate key last write wins",
			payload: "<ID=a,ID=b>",
			want:    [][2]string{{"ID", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := parsePayload(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pairs(fields))
		})
	}
}

func TestParsePayload_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"empty brackets", "<>", "empty"},
		{"unbalanced open bracket", "<ID=x", "unbalanced angle brackets"},
		{"unbalanced close bracket", "ID=x>", "unbalanced angle brackets"},
		{"quote inside value", `<ID=Tumour"Sample>`, "unexpected"},
		{"empty key", "<=TumourSample>", "empty key"},
		{"empty value", "<ID=,Original=GermlineID>", "empty value"},
		{"empty value at end", "<ID=>", "empty value"},
		{"unbalanced quote", `<ID=SVTYPE,Description="Type of structural variant>`, "unbalanced quote"},
		{"garbage after closing quote", `<Description="x"y>`, "after closing quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePayload(tt.payload)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFields_OrderAndOverwrite(t *testing.T) {
	f := NewFields()
	f.Set("b", "1")
	f.Set("a", "2")
	f.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, f.Keys())
	v, ok := f.Get("b")
	require.True(t, ok)
	assert.Equal(t, "3", v)
	assert.Equal(t, 2, f.Len())

	_, err := f.require("missing")
	assert.ErrorContains(t, err, "value not found")
}
