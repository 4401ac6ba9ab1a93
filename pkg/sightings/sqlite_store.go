/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sightings

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/carverauto/bleradar/pkg/models"
)

const (
	dbOperationTimeout = 5 * time.Second

	createTablesSQL = `
	CREATE TABLE IF NOT EXISTS sightings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scan_id TEXT NOT NULL,
		adapter TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL,
		discriminator INTEGER NOT NULL,
		vendor INTEGER NOT NULL,
		product INTEGER NOT NULL,
		seen_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sightings_address_time
		ON sightings(address, seen_at);
	CREATE INDEX IF NOT EXISTS idx_sightings_scan
		ON sightings(scan_id);
	`
)

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errOpenDB, err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("%w: %w", errEnableWAL, err)
	}

	if _, err := db.Exec(createTablesSQL); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("%w: %w", errInitSchema, err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveSighting(ctx context.Context, sighting *models.Sighting) error {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        INSERT INTO sightings (
            scan_id, adapter, address, discriminator, vendor, product, seen_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.ExecContext(ctx, query,
		sighting.ScanID, sighting.Adapter,
		sighting.Device.Address, sighting.Device.Discriminator,
		sighting.Device.Vendor, sighting.Device.Product,
		sighting.SeenAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", errSaveSighting, err)
	}

	return nil
}

// queryBuilder helps construct SQL queries with parameters.
type queryBuilder struct {
	query string
	args  []interface{}
}

// newQueryBuilder initializes a queryBuilder with base query.
func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		query: `
            SELECT scan_id, adapter, address, discriminator, vendor, product, seen_at
            FROM sightings
            WHERE 1=1
        `,
		args: make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addEquals(column string, value interface{}, set bool) {
	if set {
		qb.query += fmt.Sprintf(" AND %s = ?", column)
		qb.args = append(qb.args, value)
	}
}

// addTimeRangeFilter adds time range filters if specified.
func (qb *queryBuilder) addTimeRangeFilter(startTime, endTime time.Time) {
	if !startTime.IsZero() {
		qb.query += " AND seen_at >= ?"
		qb.args = append(qb.args, startTime.UTC())
	}

	if !endTime.IsZero() {
		qb.query += " AND seen_at <= ?"
		qb.args = append(qb.args, endTime.UTC())
	}
}

// finalize adds ordering and limit, and returns the complete query and args.
func (qb *queryBuilder) finalize(limit int) (queryString string, queryArgs []interface{}) {
	qb.query += " ORDER BY seen_at DESC, id DESC"

	if limit > 0 {
		qb.query += " LIMIT ?"
		qb.args = append(qb.args, limit)
	}

	return qb.query, qb.args
}

func buildQuery(filter *models.SightingFilter) (string, []interface{}) {
	qb := newQueryBuilder()

	if filter == nil {
		return qb.finalize(0)
	}

	qb.addEquals("scan_id", filter.ScanID, filter.ScanID != "")
	qb.addEquals("address", filter.Address, filter.Address != "")

	if filter.Discriminator != nil {
		qb.addEquals("discriminator", *filter.Discriminator, true)
	}

	if filter.Vendor != nil {
		qb.addEquals("vendor", *filter.Vendor, true)
	}

	qb.addTimeRangeFilter(filter.StartTime, filter.EndTime)

	return qb.finalize(filter.Limit)
}

// scanRow scans a single row into a Sighting.
func scanRow(rows *sql.Rows) (*models.Sighting, error) {
	var s models.Sighting

	err := rows.Scan(
		&s.ScanID,
		&s.Adapter,
		&s.Device.Address,
		&s.Device.Discriminator,
		&s.Device.Vendor,
		&s.Device.Product,
		&s.SeenAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errScanRow, err)
	}

	return &s, nil
}

func (s *SQLiteStore) GetSightings(ctx context.Context, filter *models.SightingFilter) ([]models.Sighting, error) {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	query, args := buildQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errQuerySightings, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			log.Print("Error closing rows: ", err)
		}
	}(rows)

	results := make([]models.Sighting, 0)

	for rows.Next() {
		sighting, err := scanRow(rows)
		if err != nil {
			return nil, err
		}

		results = append(results, *sighting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errQuerySightings, err)
	}

	return results, nil
}

// PruneSightings removes sightings older than the given age.
func (s *SQLiteStore) PruneSightings(ctx context.Context, age time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	cutoff := time.Now().Add(-age).UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", errBeginTx, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Error rolling back transaction: %v", rbErr)
			}
		}
	}()

	_, err = tx.ExecContext(ctx, "DELETE FROM sightings WHERE seen_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("%w: %w", errPruneSightings, err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
