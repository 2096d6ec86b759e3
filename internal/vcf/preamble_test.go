package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	version, err := parseVersion("##fileformat=VCFv4.3")
	require.NoError(t, err)
	assert.Equal(t, "VCFv4.3", version)

	_, err = parseVersion("##format=VCFv4.3")
	assert.ErrorContains(t, err, "invalid version line")
}

func TestParseColumnNames(t *testing.T) {
	t.Run("with samples", func(t *testing.T) {
		columns, err := parseColumnNames("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tNA00001\tNA00002")
		require.NoError(t, err)
		assert.Equal(t, []string{"NA00001", "NA00002"}, columns)
	})

	t.Run("without samples", func(t *testing.T) {
		columns, err := parseColumnNames("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO")
		require.NoError(t, err)
		assert.Empty(t, columns)
	})

	t.Run("duplicate sample name", func(t *testing.T) {
		_, err := parseColumnNames("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tNA00001\tNA00002\tNA00001")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unique")
	})

	t.Run("missing fixed prefix", func(t *testing.T) {
		_, err := parseColumnNames("#CHROM\tPOS\tID\tREF")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "columns line should start with")
	})

	t.Run("samples without FORMAT column", func(t *testing.T) {
		_, err := parseColumnNames("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tNA00001")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected column name after INFO")
	})

	t.Run("FORMAT without samples", func(t *testing.T) {
		_, err := parseColumnNames("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty sample name")
	})
}
