package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	chessbrain "github.com/lidiya207/chessbrain"
)

func TestParquetStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := ParquetStore{Dir: dir}

	examples := []chessbrain.Example{
		{Board: []float32{0, 1, 0.5}, Policy: []float32{0.25, 0.75}, Value: 1},
		{Board: []float32{1, 0, 0}, Policy: []float32{1, 0}, Value: -1},
		{Board: []float32{0, 0, 0}, Policy: []float32{0.5, 0.5}, Value: 0},
	}
	require.NoError(t, s.Save(examples))

	files, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	rows, err := ReadRows(files[0])
	require.NoError(t, err)
	require.Len(t, rows, len(examples))
	for i, row := range rows {
		require.Equal(t, examples[i].Board, row.Board)
		require.Equal(t, examples[i].Policy, row.Policy)
		require.Equal(t, examples[i].Value, row.Value)
		require.Equal(t, "self-play", row.Source)
	}

	// no leftover temp files
	tmps, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, tmps)
}

func TestParquetStoreEmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ParquetStore{Dir: dir}.Save(nil))

	files, err := filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	require.Empty(t, files, "an empty corpus writes nothing")
}
