package store

import (
	"database/sql"
	"errors"

	"github.com/ayusman/drishti/internal/gaze"
)

// CalibrationRepository persists the single gaze calibration record.
// The record is replaced as a whole; there is no partial field update.
type CalibrationRepository struct {
	db *sql.DB
}

// Calibration returns the calibration repository for this store.
func (s *Store) Calibration() *CalibrationRepository {
	return &CalibrationRepository{db: s.db}
}

// Get retrieves the persisted calibration record.
// Returns ErrNotFound when no calibration has been captured.
func (r *CalibrationRepository) Get() (*gaze.Calibration, error) {
	cal := &gaze.Calibration{}

	err := r.db.QueryRow(
		`SELECT center_x, center_y, deadzone_radius, captured_at_ms
		 FROM calibration WHERE id = 1`,
	).Scan(&cal.CenterX, &cal.CenterY, &cal.DeadzoneRadius, &cal.CapturedAtMs)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return cal, nil
}

// Put replaces the calibration record with the given one.
func (r *CalibrationRepository) Put(cal *gaze.Calibration) error {
	_, err := r.db.Exec(
		`INSERT INTO calibration (id, center_x, center_y, deadzone_radius, captured_at_ms)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			center_x = excluded.center_x,
			center_y = excluded.center_y,
			deadzone_radius = excluded.deadzone_radius,
			captured_at_ms = excluded.captured_at_ms`,
		cal.CenterX, cal.CenterY, cal.DeadzoneRadius, cal.CapturedAtMs,
	)
	return err
}

// Delete clears the calibration record, reverting the resolver to its
// geometric-center defaults.
func (r *CalibrationRepository) Delete() error {
	result, err := r.db.Exec(`DELETE FROM calibration WHERE id = 1`)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
