package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataLine_Valid(t *testing.T) {
	t.Run("single sample", func(t *testing.T) {
		line := "1\t10177\t.\tA\tAC\t.\tLOWCONF\t.\tGT:RC:AC:GP:DS\t0/1:0:0:0.199096,0.522516,0.278389:1.07929"
		dl, err := ParseDataLine(line, []string{"Sample01"})
		require.NoError(t, err)

		assert.Equal(t, "1", dl.Chromosome)
		assert.Equal(t, uint64(10177), dl.Position)
		assert.Equal(t, MissingList, dl.ID)
		assert.Equal(t, "A", dl.Reference)
		assert.Equal(t, Entries("AC"), dl.Alt)
		assert.True(t, dl.Qual.Missing)
		assert.Equal(t, FilterStatus{Entries: []string{"LOWCONF"}}, dl.Filter)
		assert.Equal(t, MissingList, dl.Info)
		require.NotNil(t, dl.Format)
		assert.Equal(t, Entries("GT", "RC", "AC", "GP", "DS"), *dl.Format)
		require.Len(t, dl.Samples, 1)
		assert.Equal(t, Entries("0/1", "0", "0", "0.199096,0.522516,0.278389", "1.07929"), dl.Samples[0])
	})

	t.Run("no samples", func(t *testing.T) {
		line := "20\t14370\trs6054257\tG\tA\t29\tPASS\tNS=3;DP=14"
		dl, err := ParseDataLine(line, nil)
		require.NoError(t, err)

		assert.Equal(t, Entries("rs6054257"), dl.ID)
		assert.Equal(t, Qual{Score: 29}, dl.Qual)
		assert.True(t, dl.Filter.Pass)
		assert.Equal(t, Entries("NS=3", "DP=14"), dl.Info)
		assert.Nil(t, dl.Format)
		assert.Empty(t, dl.Samples)
	})

	t.Run("missing sample value", func(t *testing.T) {
		line := "20\t17330\t.\tT\tA\t3\tq10;s50\t.\tGT\t.\t0|1"
		dl, err := ParseDataLine(line, []string{"NA00001", "NA00002"})
		require.NoError(t, err)

		assert.Equal(t, FilterStatus{Entries: []string{"q10", "s50"}}, dl.Filter)
		assert.Equal(t, MissingList, dl.Samples[0])
		assert.Equal(t, Entries("0|1"), dl.Samples[1])
	})
}

func TestParseDataLine_ColumnCount(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		columnNames []string
		wantErr     string
	}{
		{
			name:    "missing sample column",
			line:    "1\t10177\t.\tA\tAC\t.\tLOWCONF\t.\tGT:RC:AC:GP:DS",
			wantErr: "expected 10, found 9",
			columnNames: []string{
				"Sample01",
			},
		},
		{
			name:        "extra column without samples",
			line:        "1\t10177\t.\tA\tAC\t.\tLOWCONF\t.\tGT",
			columnNames: nil,
			wantErr:     "expected 8, found 9",
		},
		{
			name:        "many samples short line",
			line:        "1\t10177\t.\tA\tAC\t.\tLOWCONF\t.\tGT\t0/1",
			columnNames: []string{"S1", "S2", "S3"},
			wantErr:     "expected 12, found 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataLine(tt.line, tt.columnNames)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseDataLine_BadFields(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr string
	}{
		{"bad position", "1\tten\t.\tA\tC\t.\tPASS\t.", "invalid position"},
		{"bad qual", "1\t1\t.\tA\tC\thigh\tPASS\t.", "invalid qual"},
		{"negative qual", "1\t1\t.\tA\tC\t-3\tPASS\t.", "invalid qual"},
		{"empty id", "1\t1\t\tA\tC\t.\tPASS\t.", "id cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataLine(tt.line, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDataLine_FormatIndex(t *testing.T) {
	line := "20\t14370\t.\tG\tA\t29\tPASS\t.\tGT:GQ:DP\t0|0:48:1"
	dl, err := ParseDataLine(line, []string{"NA00001"})
	require.NoError(t, err)

	for i, key := range []string{"GT", "GQ", "DP"} {
		idx, ok := dl.FormatIndex(key)
		require.True(t, ok, "key %s", key)
		assert.Equal(t, i, idx)
	}

	_, ok := dl.FormatIndex("PL")
	assert.False(t, ok)

	// no FORMAT column at all
	bare, err := ParseDataLine("20\t14370\t.\tG\tA\t29\tPASS\t.", nil)
	require.NoError(t, err)
	_, ok = bare.FormatIndex("GT")
	assert.False(t, ok)
}

func TestDataLine_String(t *testing.T) {
	lines := []string{
		"20\t14370\trs6054257\tG\tA\t29\tPASS\tNS=3;DP=14;AF=0.5;DB\tGT:GQ:DP\t0|0:48:1\t1|0:48:8",
		"20\t17330\t.\tT\tA\t3\tq10\tNS=3;DP=11\tGT:GQ:DP\t.\t0|1:3:5",
		"20\t1234567\tmicrosat1;extra\tGTC\tG,GTCT\t50\t.\t.",
	}

	for _, line := range lines {
		columnNames := []string{"NA00001", "NA00002"}
		if line == lines[2] {
			columnNames = nil
		}
		dl, err := ParseDataLine(line, columnNames)
		require.NoError(t, err)
		assert.Equal(t, line, dl.String())
	}
}
