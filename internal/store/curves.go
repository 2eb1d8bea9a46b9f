package store

import (
	"database/sql"
	"fmt"

	"github.com/openrocket/motor-database/internal/curve"
)

// Curve is one thrust curve of a motor. Its identity key is the upstream
// simfile id when present, else (motor_id, source, format).
type Curve struct {
	ID           int64
	MotorID      int64
	TCSimfileID  string // upstream simfile id, empty for local-only curves
	Source       string // cert, mfr or user
	Format       string // rasp or rse
	License      string
	InfoURL      string
	DataURL      string
	TotalImpulse float64
	AvgThrust    float64
	MaxThrust    float64
	BurnTime     float64
}

const curveColumns = `
	id, motor_id, COALESCE(tc_simfile_id, ''), COALESCE(source, ''),
	COALESCE(format, ''), COALESCE(license, ''), COALESCE(info_url, ''),
	COALESCE(data_url, ''), COALESCE(total_impulse, 0),
	COALESCE(avg_thrust, 0), COALESCE(max_thrust, 0), COALESCE(burn_time, 0)`

func scanCurve(row interface{ Scan(...any) error }) (*Curve, error) {
	var c Curve
	err := row.Scan(&c.ID, &c.MotorID, &c.TCSimfileID, &c.Source, &c.Format,
		&c.License, &c.InfoURL, &c.DataURL,
		&c.TotalImpulse, &c.AvgThrust, &c.MaxThrust, &c.BurnTime)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCurveByTCSimfileID returns the curve with the given upstream simfile
// id, or nil
func (s *Store) GetCurveByTCSimfileID(q Execer, simfileID string) (*Curve, error) {
	c, err := scanCurve(q.QueryRow(
		`SELECT `+curveColumns+` FROM thrust_curves WHERE tc_simfile_id = ?`, simfileID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// GetCurveByKey returns the curve with the given (motor, source, format)
// identity, or nil
func (s *Store) GetCurveByKey(q Execer, motorID int64, source, format string) (*Curve, error) {
	c, err := scanCurve(q.QueryRow(
		`SELECT `+curveColumns+` FROM thrust_curves WHERE motor_id = ? AND source = ? AND format = ?`,
		motorID, source, format))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// InsertCurve inserts a thrust curve and returns its id
func (s *Store) InsertCurve(q Execer, c *Curve) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO thrust_curves
		(motor_id, tc_simfile_id, source, format, license, info_url, data_url,
		 total_impulse, avg_thrust, max_thrust, burn_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.MotorID, nullable(c.TCSimfileID), nullable(c.Source), nullable(c.Format),
		nullable(c.License), nullable(c.InfoURL), nullable(c.DataURL),
		c.TotalImpulse, c.AvgThrust, c.MaxThrust, c.BurnTime)
	if err != nil {
		return 0, wrapConstraint(fmt.Errorf("failed to insert curve for motor %d: %w", c.MotorID, err))
	}
	return res.LastInsertId()
}

// UpdateCurve updates an existing curve's metadata and metrics in place
func (s *Store) UpdateCurve(q Execer, c *Curve) error {
	_, err := q.Exec(`
		UPDATE thrust_curves SET
			motor_id = ?, tc_simfile_id = COALESCE(?, tc_simfile_id),
			source = ?, format = ?, license = ?, info_url = ?, data_url = ?,
			total_impulse = ?, avg_thrust = ?, max_thrust = ?, burn_time = ?
		WHERE id = ?
	`, c.MotorID, nullable(c.TCSimfileID), nullable(c.Source), nullable(c.Format),
		nullable(c.License), nullable(c.InfoURL), nullable(c.DataURL),
		c.TotalImpulse, c.AvgThrust, c.MaxThrust, c.BurnTime, c.ID)
	if err != nil {
		return wrapConstraint(fmt.Errorf("failed to update curve %d: %w", c.ID, err))
	}
	return nil
}

// ReplaceSamples swaps a curve's thrust samples wholesale. Partial updates
// of sample rows never happen; the old set goes away and the new set lands
// in one shot. Call inside a transaction when atomicity with other writes
// matters.
func (s *Store) ReplaceSamples(q Execer, curveID int64, samples []curve.Sample) error {
	if _, err := q.Exec(`DELETE FROM thrust_data WHERE curve_id = ?`, curveID); err != nil {
		return fmt.Errorf("failed to clear samples for curve %d: %w", curveID, err)
	}
	for _, sm := range samples {
		_, err := q.Exec(`
			INSERT INTO thrust_data (curve_id, time_seconds, force_newtons)
			VALUES (?, ?, ?)
		`, curveID, sm.Time, sm.Force)
		if err != nil {
			return wrapConstraint(fmt.Errorf("failed to insert sample for curve %d: %w", curveID, err))
		}
	}
	return nil
}

// GetSamples returns a curve's thrust samples ordered by time
func (s *Store) GetSamples(q Execer, curveID int64) ([]curve.Sample, error) {
	rows, err := q.Query(`
		SELECT time_seconds, force_newtons FROM thrust_data
		WHERE curve_id = ? ORDER BY time_seconds
	`, curveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []curve.Sample
	for rows.Next() {
		var sm curve.Sample
		if err := rows.Scan(&sm.Time, &sm.Force); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// ListCurvesByMotor returns all curves of a motor ordered by id
func (s *Store) ListCurvesByMotor(q Execer, motorID int64) ([]*Curve, error) {
	rows, err := q.Query(
		`SELECT `+curveColumns+` FROM thrust_curves WHERE motor_id = ? ORDER BY id`, motorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Curve
	for rows.Next() {
		c, err := scanCurve(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCurve removes a curve; its samples cascade
func (s *Store) DeleteCurve(q Execer, curveID int64) error {
	_, err := q.Exec(`DELETE FROM thrust_curves WHERE id = ?`, curveID)
	return err
}

// CountCurves returns the number of thrust curves
func (s *Store) CountCurves(q Execer) (int, error) {
	var count int
	err := q.QueryRow(`SELECT COUNT(*) FROM thrust_curves`).Scan(&count)
	return count, err
}

// CountSamples returns the number of thrust samples
func (s *Store) CountSamples(q Execer) (int, error) {
	var count int
	err := q.QueryRow(`SELECT COUNT(*) FROM thrust_data`).Scan(&count)
	return count, err
}
