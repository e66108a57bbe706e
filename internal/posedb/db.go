// Package posedb provides the persisted container format for keypoint
// tables: a SQLite file holding the column label scheme and per-frame
// values under the fixed record name "pose".
package posedb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/kinematics.report/keypoints"
)

// RecordName is the fixed record a container file is keyed by. All tables
// in the schema carry it as their prefix.
const RecordName = "pose"

// ErrNoRecord indicates a container file that does not hold a pose record.
var ErrNoRecord = errors.New("posedb: no pose record in container")

// DB wraps a SQLite-backed pose container.
type DB struct {
	*sql.DB
	path string
}

// Open opens (creating if absent) the container at path and brings its
// schema up to date.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open container %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("apply %q to %s: %w", pragma, path, err)
		}
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Path returns the filesystem path of the container.
func (db *DB) Path() string {
	return db.path
}

// WriteTable replaces the pose record with t in a single transaction,
// stamping the dataset with a fresh id. Nothing is written if any step
// fails.
func (db *DB) WriteTable(t *keypoints.Table) error {
	scorer, err := t.Scorer()
	if err != nil && t.NumColumns() > 0 {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin write to %s: %w", db.path, err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM pose_values",
		"DELETE FROM pose_columns",
		"DELETE FROM pose_datasets",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear pose record: %w", err)
		}
	}

	_, err = tx.Exec(
		"INSERT INTO pose_datasets (id, scorer, frames, columns) VALUES (?, ?, ?, ?)",
		uuid.NewString(), scorer, t.NumRows(), t.NumColumns(),
	)
	if err != nil {
		return fmt.Errorf("record dataset: %w", err)
	}

	colStmt, err := tx.Prepare("INSERT INTO pose_columns (col_idx, scorer, bodypart, coord) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare column insert: %w", err)
	}
	defer colStmt.Close()
	for i, c := range t.Columns {
		if _, err := colStmt.Exec(i, c.Scorer, c.Bodypart, c.Coord); err != nil {
			return fmt.Errorf("write column %d: %w", i, err)
		}
	}

	valStmt, err := tx.Prepare("INSERT INTO pose_values (frame_idx, col_idx, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare value insert: %w", err)
	}
	defer valStmt.Close()
	for i, col := range t.Values {
		for frame, v := range col {
			if _, err := valStmt.Exec(frame, i, v); err != nil {
				return fmt.Errorf("write value frame=%d col=%d: %w", frame, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write to %s: %w", db.path, err)
	}
	return nil
}

// ReadTable loads the pose record. Frame order follows frame_idx, column
// order follows col_idx, so the time axis round-trips unchanged.
func (db *DB) ReadTable() (*keypoints.Table, error) {
	rows, err := db.Query("SELECT col_idx, scorer, bodypart, coord FROM pose_columns ORDER BY col_idx")
	if err != nil {
		return nil, fmt.Errorf("read columns from %s: %w", db.path, err)
	}
	defer rows.Close()

	t := &keypoints.Table{}
	for rows.Next() {
		var idx int
		var c keypoints.Column
		if err := rows.Scan(&idx, &c.Scorer, &c.Bodypart, &c.Coord); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		t.Columns = append(t.Columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read columns from %s: %w", db.path, err)
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrNoRecord, db.path)
	}

	var frames int
	if err := db.QueryRow("SELECT frames FROM pose_datasets").Scan(&frames); err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrNoRecord, db.path, err)
	}

	t.Values = make([][]float64, len(t.Columns))
	for i := range t.Values {
		t.Values[i] = make([]float64, frames)
	}

	valRows, err := db.Query("SELECT frame_idx, col_idx, value FROM pose_values ORDER BY col_idx, frame_idx")
	if err != nil {
		return nil, fmt.Errorf("read values from %s: %w", db.path, err)
	}
	defer valRows.Close()
	for valRows.Next() {
		var frame, col int
		var v float64
		if err := valRows.Scan(&frame, &col, &v); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		if col < 0 || col >= len(t.Values) || frame < 0 || frame >= frames {
			return nil, fmt.Errorf("%w: value at frame=%d col=%d outside recorded shape", keypoints.ErrBadFormat, frame, col)
		}
		t.Values[col][frame] = v
	}
	if err := valRows.Err(); err != nil {
		return nil, fmt.Errorf("read values from %s: %w", db.path, err)
	}

	return t, nil
}

// WriteFile writes t to a container at path in one shot, creating or
// overwriting the pose record.
func WriteFile(path string, t *keypoints.Table) error {
	db, err := Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.WriteTable(t)
}

// ReadFile reads the pose record from the container at path.
func ReadFile(path string) (*keypoints.Table, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.ReadTable()
}
