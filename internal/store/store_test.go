package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vcfio/internal/vcf"
)

func mustDataLine(t *testing.T, line string) *vcf.DataLine {
	t.Helper()
	dl, err := vcf.ParseDataLine(line, nil)
	require.NoError(t, err)
	return dl
}

func TestStore_InsertAndQuery(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	lines := []string{
		"20\t17330\t.\tT\tA\t3\tq10\tNS=3;DP=11",
		"20\t14370\trs6054257\tG\tA\t29\tPASS\tNS=3;DP=14",
		"X\t10\t.\tC\tG\t.\t.\t.",
	}
	for _, line := range lines {
		require.NoError(t, s.InsertDataLine(mustDataLine(t, line)))
	}

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	rows, err := s.ByRange("20", 14000, 18000)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by position, not insertion.
	assert.Equal(t, uint64(14370), rows[0].Pos)
	assert.Equal(t, Row{
		Chrom:  "20",
		Pos:    14370,
		ID:     "rs6054257",
		Ref:    "G",
		Alt:    "A",
		Qual:   "29",
		Filter: "PASS",
	}, rows[0])
	assert.Equal(t, uint64(17330), rows[1].Pos)
	assert.Equal(t, ".", rows[1].ID)

	rows, err = s.ByRange("20", 1, 100)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = s.ByRange("X", 1, 100)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ".", rows[0].Qual)
}

func TestStore_FileBacked(t *testing.T) {
	path := t.TempDir() + "/idx/variants.duckdb"

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.InsertDataLine(mustDataLine(t, "1\t100\t.\tA\tC\t.\tPASS\t.")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
