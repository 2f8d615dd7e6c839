// Package scanstore persists completed scans to sqlite so runs can be
// replayed and plotted offline.
package scanstore

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sensor_id TEXT NOT NULL,
	captured_at TEXT NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	channels INTEGER NOT NULL,
	format TEXT NOT NULL,
	angle_min REAL NOT NULL,
	angle_max REAL NOT NULL,
	samples BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scans_sensor ON scans(sensor_id, captured_at);
`

// ScanRecord is one persisted scan.
type ScanRecord struct {
	ID         int64
	SensorID   string
	CapturedAt time.Time
	Width      int
	Height     int
	Channels   int
	Format     string
	AngleMin   float64
	AngleMax   float64
	Samples    []float32
}

// Store provides scan persistence on a sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a scan database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening scan database %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing scan schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScan inserts a scan and returns its row ID.
func (s *Store) SaveScan(rec *ScanRecord) (int64, error) {
	if want := rec.Width * rec.Height * rec.Channels; len(rec.Samples) != want {
		return 0, fmt.Errorf("scan payload has %d samples, dimensions require %d", len(rec.Samples), want)
	}
	query := `
		INSERT INTO scans (sensor_id, captured_at, width, height, channels, format, angle_min, angle_max, samples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := s.db.Exec(query,
		rec.SensorID,
		rec.CapturedAt.UTC().Format(time.RFC3339Nano),
		rec.Width,
		rec.Height,
		rec.Channels,
		rec.Format,
		rec.AngleMin,
		rec.AngleMax,
		encodeSamples(rec.Samples),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting scan for %s: %w", rec.SensorID, err)
	}
	return res.LastInsertId()
}

// Scan loads one scan by row ID.
func (s *Store) Scan(id int64) (*ScanRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, sensor_id, captured_at, width, height, channels, format, angle_min, angle_max, samples
		FROM scans WHERE id = ?
	`, id)
	rec, err := scanRow(row)
	if err != nil {
		return nil, fmt.Errorf("loading scan %d: %w", id, err)
	}
	return rec, nil
}

// Scans lists all scans for a sensor in capture order.
func (s *Store) Scans(sensorID string) ([]*ScanRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, sensor_id, captured_at, width, height, channels, format, angle_min, angle_max, samples
		FROM scans WHERE sensor_id = ? ORDER BY captured_at, id
	`, sensorID)
	if err != nil {
		return nil, fmt.Errorf("listing scans for %s: %w", sensorID, err)
	}
	defer rows.Close()

	var out []*ScanRecord
	for rows.Next() {
		rec, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("listing scans for %s: %w", sensorID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(r rowScanner) (*ScanRecord, error) {
	var rec ScanRecord
	var capturedAt string
	var blob []byte
	err := r.Scan(&rec.ID, &rec.SensorID, &capturedAt, &rec.Width, &rec.Height,
		&rec.Channels, &rec.Format, &rec.AngleMin, &rec.AngleMax, &blob)
	if err != nil {
		return nil, err
	}
	rec.CapturedAt, err = time.Parse(time.RFC3339Nano, capturedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing capture time %q: %w", capturedAt, err)
	}
	rec.Samples = decodeSamples(blob)
	return &rec, nil
}

// encodeSamples serializes the scan payload as little-endian float32 bits.
func encodeSamples(samples []float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

func decodeSamples(blob []byte) []float32 {
	out := make([]float32, len(blob)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return out
}
