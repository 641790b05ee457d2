package flat

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
)

// formatVersion is bumped whenever the persisted layout changes.
const formatVersion = 1

const persistSchema = `
CREATE TABLE index_header (
	format_version INTEGER NOT NULL,
	dimensions INTEGER NOT NULL,
	metric TEXT NOT NULL,
	entry_count INTEGER NOT NULL,
	built_at DATETIME NOT NULL
);

CREATE TABLE index_entries (
	rowid_order INTEGER PRIMARY KEY,
	chunk_id TEXT NOT NULL UNIQUE,
	document_id TEXT NOT NULL,
	content TEXT NOT NULL,
	position INTEGER NOT NULL,
	vector BLOB NOT NULL
);
`

// Persist writes the index to path as a single SQLite file. The write
// goes to a temp file first and is renamed into place, so a failed
// write never clobbers an existing index.
func (idx *Index) Persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmpPath := path + ".tmp"
	// A stale temp file from a crashed run would fail the CREATE TABLEs.
	_ = os.Remove(tmpPath)

	if err := idx.writeFile(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing index file: %w", err)
	}
	return nil
}

func (idx *Index) writeFile(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(persistSchema); err != nil {
		return fmt.Errorf("creating index schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(`
		INSERT INTO index_header (format_version, dimensions, metric, entry_count, built_at)
		VALUES (?, ?, ?, ?, ?)
	`, formatVersion, idx.dims, idx.metric.String(), len(idx.entries), idx.builtAt)
	if err != nil {
		return fmt.Errorf("writing index header: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO index_entries (rowid_order, chunk_id, document_id, content, position, vector)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, entry := range idx.entries {
		if _, err := stmt.Exec(i, entry.ChunkID, entry.DocumentID, entry.Content,
			entry.Position, float32SliceToBytes(entry.Vector)); err != nil {
			return fmt.Errorf("writing entry %s: %w", entry.ChunkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Load reads a persisted index, validating the header before touching
// the entries. Missing or unreadable files fail with ErrIndexNotFound.
func (b *Builder) Load(path string) (driven.VectorIndex, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, path)
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrIndexNotFound, path, err)
	}
	defer db.Close()

	var version, dims, count int
	var metricStr string
	var builtAt time.Time
	row := db.QueryRow(`SELECT format_version, dimensions, metric, entry_count, built_at FROM index_header`)
	if err := row.Scan(&version, &dims, &metricStr, &count, &builtAt); err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %w", domain.ErrIndexNotFound, path, err)
	}

	if version != formatVersion {
		return nil, fmt.Errorf("%w: %s has format version %d, expected %d",
			domain.ErrIndexNotFound, path, version, formatVersion)
	}
	metric := domain.SimilarityMetric(metricStr)
	if !metric.IsValid() {
		return nil, fmt.Errorf("%w: %s has unknown metric %q", domain.ErrIndexNotFound, path, metricStr)
	}

	rows, err := db.Query(`
		SELECT chunk_id, document_id, content, position, vector
		FROM index_entries ORDER BY rowid_order
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading entries of %s: %w", domain.ErrIndexNotFound, path, err)
	}
	defer rows.Close()

	entries := make([]driven.IndexEntry, 0, count)
	for rows.Next() {
		var entry driven.IndexEntry
		var blob []byte
		if err := rows.Scan(&entry.ChunkID, &entry.DocumentID, &entry.Content,
			&entry.Position, &blob); err != nil {
			return nil, fmt.Errorf("%w: scanning entry of %s: %w", domain.ErrIndexNotFound, path, err)
		}
		entry.Vector = bytesToFloat32Slice(blob)
		if len(entry.Vector) != dims {
			return nil, fmt.Errorf("%w: chunk %s in %s has %d dimensions, header says %d",
				domain.ErrIndexNotFound, entry.ChunkID, path, len(entry.Vector), dims)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating entries of %s: %w", domain.ErrIndexNotFound, path, err)
	}

	if len(entries) != count {
		return nil, fmt.Errorf("%w: %s has %d entries, header says %d",
			domain.ErrIndexNotFound, path, len(entries), count)
	}

	loaded, err := b.Build(entries, metric)
	if err != nil {
		return nil, fmt.Errorf("%w: rebuilding from %s: %w", domain.ErrIndexNotFound, path, err)
	}
	if idx, ok := loaded.(*Index); ok {
		idx.builtAt = builtAt
	}
	return loaded, nil
}

// float32SliceToBytes converts a []float32 to a little-endian byte slice.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
