// Package store persists self-play corpora for the training side of the
// pipeline.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/pkg/errors"

	chessbrain "github.com/lidiya207/chessbrain"
)

// Row is one training position as laid out on disk.
type Row struct {
	Board  []float32 `parquet:"board"`
	Policy []float32 `parquet:"policy"`
	Value  float32   `parquet:"value"`
	Source string    `parquet:"source,dict"`
}

const source = "self-play"

// ParquetStore writes each saved corpus as a zstd-compressed parquet file
// in Dir, named after the write time and position count.
type ParquetStore struct {
	Dir string
}

// Save implements chessbrain.Store. The file is written to a temp path and
// renamed so readers never observe a partial corpus.
func (s ParquetStore) Save(examples []chessbrain.Example) error {
	if len(examples) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating corpus dir %s", s.Dir)
	}

	rows := make([]Row, len(examples))
	for i, ex := range examples {
		rows[i] = Row{Board: ex.Board, Policy: ex.Policy, Value: ex.Value, Source: source}
	}

	name := fmt.Sprintf("self_play_%s_%d_positions.parquet",
		time.Now().UTC().Format("20060102T150405"), len(rows))
	outPath := filepath.Join(s.Dir, name)
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "self_play_v1"),
	); err != nil {
		return errors.Wrap(err, "writing parquet corpus")
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return errors.Wrap(err, "moving corpus into place")
	}
	return nil
}

// ReadRows loads a corpus written by Save.
func ReadRows(path string) ([]Row, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading corpus %s", path)
	}
	return rows, nil
}
