package store

import (
	"database/sql"
	"fmt"
)

// Motor is one logical motor. Its identity key is the upstream id when
// present, else (manufacturer_id, designation). The four derived
// performance fields are recomputed from the preferred curve on every
// merge, never written directly by callers.
type Motor struct {
	ID             int64
	ManufacturerID int64
	TCMotorID      string // upstream motor id, empty when unknown upstream
	Designation    string
	CommonName     string
	ImpulseClass   string
	Diameter       float64 // mm
	Length         float64 // mm
	TotalImpulse   float64 // Ns, derived
	AvgThrust      float64 // N, derived
	MaxThrust      float64 // N, derived
	BurnTime       float64 // s, derived
	PropellantWt   float64 // g
	TotalWt        float64 // g
	Type           string
	Delays         string
	CaseInfo       string
	PropInfo       string
	Sparky         bool
	InfoURL        string
	UpdatedOn      string
}

const motorColumns = `
	id, manufacturer_id, COALESCE(tc_motor_id, ''), designation,
	COALESCE(common_name, ''), COALESCE(impulse_class, ''),
	COALESCE(diameter, 0), COALESCE(length, 0),
	COALESCE(total_impulse, 0), COALESCE(avg_thrust, 0),
	COALESCE(max_thrust, 0), COALESCE(burn_time, 0),
	COALESCE(propellant_weight, 0), COALESCE(total_weight, 0),
	COALESCE(type, ''), COALESCE(delays, ''), COALESCE(case_info, ''),
	COALESCE(prop_info, ''), sparky, COALESCE(info_url, ''),
	COALESCE(updated_on, '')`

func scanMotor(row interface{ Scan(...any) error }) (*Motor, error) {
	var m Motor
	var sparky int
	err := row.Scan(&m.ID, &m.ManufacturerID, &m.TCMotorID, &m.Designation,
		&m.CommonName, &m.ImpulseClass, &m.Diameter, &m.Length,
		&m.TotalImpulse, &m.AvgThrust, &m.MaxThrust, &m.BurnTime,
		&m.PropellantWt, &m.TotalWt, &m.Type, &m.Delays, &m.CaseInfo,
		&m.PropInfo, &sparky, &m.InfoURL, &m.UpdatedOn)
	if err != nil {
		return nil, err
	}
	m.Sparky = sparky == 1
	return &m, nil
}

// GetMotorByTCID returns the motor with the given upstream id, or nil
func (s *Store) GetMotorByTCID(q Execer, tcMotorID string) (*Motor, error) {
	m, err := scanMotor(q.QueryRow(
		`SELECT `+motorColumns+` FROM motors WHERE tc_motor_id = ?`, tcMotorID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return m, err
}

// GetMotorByKey returns the motor with the given (manufacturer, designation)
// identity, or nil
func (s *Store) GetMotorByKey(q Execer, manufacturerID int64, designation string) (*Motor, error) {
	m, err := scanMotor(q.QueryRow(
		`SELECT `+motorColumns+` FROM motors WHERE manufacturer_id = ? AND designation = ?`,
		manufacturerID, designation))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return m, err
}

// InsertMotor inserts a motor and returns its id
func (s *Store) InsertMotor(q Execer, m *Motor) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO motors
		(manufacturer_id, tc_motor_id, designation, common_name, impulse_class,
		 diameter, length, total_impulse, avg_thrust, max_thrust, burn_time,
		 propellant_weight, total_weight, type, delays, case_info, prop_info,
		 sparky, info_url, updated_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ManufacturerID, nullable(m.TCMotorID), m.Designation,
		nullable(m.CommonName), nullable(m.ImpulseClass),
		m.Diameter, m.Length, m.TotalImpulse, m.AvgThrust, m.MaxThrust,
		m.BurnTime, m.PropellantWt, m.TotalWt, nullable(m.Type),
		nullable(m.Delays), nullable(m.CaseInfo), nullable(m.PropInfo),
		boolInt(m.Sparky), nullable(m.InfoURL), nullable(m.UpdatedOn))
	if err != nil {
		return 0, wrapConstraint(fmt.Errorf("failed to insert motor %q: %w", m.Designation, err))
	}
	return res.LastInsertId()
}

// UpdateMotor updates the descriptive fields of an existing motor in place.
// Derived performance fields are left to UpdateMotorDerived.
func (s *Store) UpdateMotor(q Execer, m *Motor) error {
	_, err := q.Exec(`
		UPDATE motors SET
			tc_motor_id = COALESCE(?, tc_motor_id),
			common_name = ?, impulse_class = ?, diameter = ?, length = ?,
			propellant_weight = ?, total_weight = ?, type = ?, delays = ?,
			case_info = ?, prop_info = ?, sparky = ?, info_url = ?, updated_on = ?
		WHERE id = ?
	`, nullable(m.TCMotorID), nullable(m.CommonName), nullable(m.ImpulseClass),
		m.Diameter, m.Length, m.PropellantWt, m.TotalWt, nullable(m.Type),
		nullable(m.Delays), nullable(m.CaseInfo), nullable(m.PropInfo),
		boolInt(m.Sparky), nullable(m.InfoURL), nullable(m.UpdatedOn), m.ID)
	if err != nil {
		return wrapConstraint(fmt.Errorf("failed to update motor %d: %w", m.ID, err))
	}
	return nil
}

// UpdateMotorDerived writes the performance fields recomputed from the
// motor's preferred curve
func (s *Store) UpdateMotorDerived(q Execer, motorID int64, totalImpulse, avgThrust, maxThrust, burnTime float64) error {
	_, err := q.Exec(`
		UPDATE motors SET total_impulse = ?, avg_thrust = ?, max_thrust = ?, burn_time = ?
		WHERE id = ?
	`, totalImpulse, avgThrust, maxThrust, burnTime, motorID)
	if err != nil {
		return fmt.Errorf("failed to update derived fields for motor %d: %w", motorID, err)
	}
	return nil
}

// DeleteMotor removes a motor; its curves and samples cascade
func (s *Store) DeleteMotor(q Execer, motorID int64) error {
	_, err := q.Exec(`DELETE FROM motors WHERE id = ?`, motorID)
	return err
}

// CountMotors returns the number of motors
func (s *Store) CountMotors(q Execer) (int, error) {
	var count int
	err := q.QueryRow(`SELECT COUNT(*) FROM motors`).Scan(&count)
	return count, err
}

// MotorsByManufacturer returns (manufacturer name, motor count, curve count)
// rows ordered by manufacturer name
type ManufacturerStats struct {
	Name   string
	Motors int
	Curves int
}

// StatsByManufacturer summarizes the database per manufacturer
func (s *Store) StatsByManufacturer(q Execer) ([]ManufacturerStats, error) {
	rows, err := q.Query(`
		SELECT mf.name, COUNT(DISTINCT m.id), COUNT(tc.id)
		FROM manufacturers mf
		LEFT JOIN motors m ON m.manufacturer_id = mf.id
		LEFT JOIN thrust_curves tc ON tc.motor_id = m.id
		GROUP BY mf.id
		ORDER BY mf.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ManufacturerStats
	for rows.Next() {
		var st ManufacturerStats
		if err := rows.Scan(&st.Name, &st.Motors, &st.Curves); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
