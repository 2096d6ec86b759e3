// Package store indexes VCF data lines in a DuckDB database so variants can
// be counted and queried by region without re-reading the text file.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/inodb/vcfio/internal/vcf"
)

// Store manages a DuckDB connection holding indexed variants.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Row is one indexed variant. Delimited fields are stored in their textual
// form; the store is an index, not a second model.
type Row struct {
	Chrom  string
	Pos    uint64
	ID     string
	Ref    string
	Alt    string
	Qual   string
	Filter string
}

// Open opens or creates a DuckDB database at the given path. Use an empty
// string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path, logger: zap.NewNop()}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// SetLogger sets the logger used for per-insert debug output.
func (s *Store) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates the variants table if it doesn't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS variants (
		chrom VARCHAR,
		pos UBIGINT,
		id VARCHAR,
		ref VARCHAR,
		alt VARCHAR,
		qual VARCHAR,
		filter VARCHAR
	)`)
	return err
}

// InsertDataLine indexes one data line.
func (s *Store) InsertDataLine(dl *vcf.DataLine) error {
	line := rowFromDataLine(dl)
	_, err := s.db.Exec(
		`INSERT INTO variants (chrom, pos, id, ref, alt, qual, filter) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		line.Chrom, line.Pos, line.ID, line.Ref, line.Alt, line.Qual, line.Filter,
	)
	if err != nil {
		return fmt.Errorf("insert variant: %w", err)
	}
	s.logger.Debug("indexed variant",
		zap.String("chrom", line.Chrom),
		zap.Uint64("pos", line.Pos))
	return nil
}

// Count returns the number of indexed variants.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM variants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count variants: %w", err)
	}
	return n, nil
}

// ByRange returns indexed variants on chrom with start <= pos <= end, in
// position order.
func (s *Store) ByRange(chrom string, start, end uint64) ([]Row, error) {
	rows, err := s.db.Query(
		`SELECT chrom, pos, id, ref, alt, qual, filter
		 FROM variants WHERE chrom = ? AND pos BETWEEN ? AND ? ORDER BY pos`,
		chrom, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Chrom, &r.Pos, &r.ID, &r.Ref, &r.Alt, &r.Qual, &r.Filter); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query variants: %w", err)
	}
	return result, nil
}

// rowFromDataLine flattens the typed fields back to their column text.
func rowFromDataLine(dl *vcf.DataLine) Row {
	fields := strings.Split(dl.String(), "\t")
	return Row{
		Chrom:  fields[0],
		Pos:    dl.Position,
		ID:     fields[2],
		Ref:    fields[3],
		Alt:    fields[4],
		Qual:   fields[5],
		Filter: fields[6],
	}
}
