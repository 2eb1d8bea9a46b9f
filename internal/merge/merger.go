// Package merge folds parsed thrust-curve records into the relational
// store: manufacturer resolution, motor and curve upserts, wholesale
// sample replacement and recomputation of derived motor fields.
package merge

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/openrocket/motor-database/internal/curve"
	"github.com/openrocket/motor-database/internal/mfr"
	"github.com/openrocket/motor-database/internal/store"
	"github.com/openrocket/motor-database/internal/thrustcurve"
	"github.com/openrocket/motor-database/internal/util"
)

// Input is one accepted record ready to merge, together with whatever
// upstream metadata the caller could attach to it.
type Input struct {
	File      string // originating file, for messages only
	Record    *curve.Record
	Metrics   curve.Metrics
	Source    curve.Source
	SimfileID string                     // upstream simfile id, empty when unmapped
	Simfile   *thrustcurve.SimfileInfo   // license and urls, nil when unmapped
	Meta      *thrustcurve.MotorMetadata // upstream motor metadata, nil when unknown
}

// Stats counts what one merge pass did to the database
type Stats struct {
	MotorsCreated int
	MotorsUpdated int
	CurvesCreated int
	CurvesUpdated int
}

// Merger applies inputs to the store. All writes of one Merge call happen
// in a single transaction; any structural error (ambiguous manufacturer,
// referential violation, database failure) rolls the whole merge back.
// The entity graph's consistency outranks partial progress.
type Merger struct {
	store    *store.Store
	resolver *mfr.Resolver
}

// NewMerger wires a merger onto an open store
func NewMerger(st *store.Store, resolver *mfr.Resolver) *Merger {
	return &Merger{store: st, resolver: resolver}
}

// Merge upserts all inputs and recomputes derived fields for every motor
// that was touched
func (m *Merger) Merge(inputs []Input) (*Stats, error) {
	stats := &Stats{}

	err := m.store.Transaction(func(tx *sql.Tx) error {
		touched := make(map[int64]bool)

		for _, in := range inputs {
			motorID, err := m.mergeOne(tx, in, stats)
			if err != nil {
				return fmt.Errorf("%s: %w", in.File, err)
			}
			touched[motorID] = true
		}

		// Sorted so repeated runs write the derived rows in the same order
		ids := make([]int64, 0, len(touched))
		for motorID := range touched {
			ids = append(ids, motorID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, motorID := range ids {
			if err := m.recomputeDerived(tx, motorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (m *Merger) mergeOne(tx *sql.Tx, in Input, stats *Stats) (int64, error) {
	mfrID, err := m.resolveManufacturer(tx, in)
	if err != nil {
		return 0, err
	}

	motorID, err := m.upsertMotor(tx, in, mfrID, stats)
	if err != nil {
		return 0, err
	}

	if err := m.upsertCurve(tx, in, motorID, stats); err != nil {
		return 0, err
	}
	return motorID, nil
}

// resolveManufacturer maps the record's manufacturer onto a canonical row.
// Upstream metadata wins over the header code; a name the alias table does
// not know is kept verbatim rather than dropped.
func (m *Merger) resolveManufacturer(tx *sql.Tx, in Input) (int64, error) {
	name := in.Record.Header.Manufacturer
	if in.Meta != nil && in.Meta.Manufacturer != "" {
		name = in.Meta.Manufacturer
	}

	canonical := mfr.Canonical{Name: strings.TrimSpace(name)}
	if canonical.Name == "" {
		canonical = mfr.Canonical{Name: "Unknown", Abbrev: "UNK"}
	} else if c, ok, err := m.resolver.Resolve(canonical.Name); err != nil {
		return 0, err
	} else if ok {
		canonical = c
	} else {
		util.DebugLog("Unrecognized manufacturer %q in %s, keeping as-is", canonical.Name, in.File)
	}

	return m.store.UpsertManufacturer(tx, canonical.Name, canonical.Abbrev)
}

func (m *Merger) upsertMotor(tx *sql.Tx, in Input, mfrID int64, stats *Stats) (int64, error) {
	var existing *store.Motor
	var err error

	if in.Meta != nil && in.Meta.MotorID != "" {
		existing, err = m.store.GetMotorByTCID(tx, in.Meta.MotorID)
		if err != nil {
			return 0, err
		}
	}
	if existing == nil {
		existing, err = m.store.GetMotorByKey(tx, mfrID, in.Record.Header.Designation)
		if err != nil {
			return 0, err
		}
	}

	motor := buildMotor(in, mfrID)
	if existing == nil {
		id, err := m.store.InsertMotor(tx, motor)
		if err != nil {
			return 0, err
		}
		stats.MotorsCreated++
		return id, nil
	}

	motor.ID = existing.ID
	if err := m.store.UpdateMotor(tx, motor); err != nil {
		return 0, err
	}
	stats.MotorsUpdated++
	return existing.ID, nil
}

// buildMotor combines header and upstream metadata into a motor row.
// Fields present in the parsed file override the API's copy of them.
func buildMotor(in Input, mfrID int64) *store.Motor {
	h := in.Record.Header
	motor := &store.Motor{
		ManufacturerID: mfrID,
		Designation:    h.Designation,
		CommonName:     h.CommonName,
		Diameter:       h.Diameter,
		Length:         h.Length,
		PropellantWt:   h.PropellantWeight,
		TotalWt:        h.TotalWeight,
		Type:           h.Type,
		Delays:         h.Delays,
	}

	if in.Meta != nil {
		meta := in.Meta
		motor.TCMotorID = meta.MotorID
		motor.ImpulseClass = meta.ImpulseClass
		motor.CaseInfo = meta.CaseInfo
		motor.PropInfo = meta.PropInfo
		motor.Sparky = meta.Sparky
		motor.InfoURL = meta.InfoURL
		motor.UpdatedOn = meta.UpdatedOn
		if motor.CommonName == "" {
			motor.CommonName = meta.CommonName
		}
		if motor.Type == "" {
			motor.Type = meta.Type
		}
		if motor.Delays == "" {
			motor.Delays = meta.Delays
		}
		if motor.Diameter == 0 {
			motor.Diameter = meta.Diameter
		}
		if motor.Length == 0 {
			motor.Length = meta.Length
		}
		if motor.PropellantWt == 0 {
			motor.PropellantWt = meta.PropWeightG
		}
		if motor.TotalWt == 0 {
			motor.TotalWt = meta.TotalWeightG
		}
	}

	if motor.ImpulseClass == "" && motor.CommonName != "" {
		motor.ImpulseClass = motor.CommonName[:1]
	}
	return motor
}

func (m *Merger) upsertCurve(tx *sql.Tx, in Input, motorID int64, stats *Stats) error {
	format := strings.ToLower(string(in.Record.Format))
	source := string(in.Source)

	var existing *store.Curve
	var err error
	if in.SimfileID != "" {
		existing, err = m.store.GetCurveByTCSimfileID(tx, in.SimfileID)
		if err != nil {
			return err
		}
	}
	if existing == nil {
		existing, err = m.store.GetCurveByKey(tx, motorID, source, format)
		if err != nil {
			return err
		}
	}

	c := &store.Curve{
		MotorID:      motorID,
		TCSimfileID:  in.SimfileID,
		Source:       source,
		Format:       format,
		TotalImpulse: in.Metrics.TotalImpulse,
		AvgThrust:    in.Metrics.AvgThrust,
		MaxThrust:    in.Metrics.MaxThrust,
		BurnTime:     in.Metrics.BurnTime,
	}
	if in.Simfile != nil {
		c.License = in.Simfile.License
		c.InfoURL = in.Simfile.InfoURL
		c.DataURL = in.Simfile.DataURL
	}

	if existing == nil {
		c.ID, err = m.store.InsertCurve(tx, c)
		if err != nil {
			return err
		}
		stats.CurvesCreated++
	} else {
		c.ID = existing.ID
		if err := m.store.UpdateCurve(tx, c); err != nil {
			return err
		}
		stats.CurvesUpdated++
	}

	return m.store.ReplaceSamples(tx, c.ID, in.Record.Samples)
}

// recomputeDerived refreshes a motor's performance fields from its
// preferred curve
func (m *Merger) recomputeDerived(tx *sql.Tx, motorID int64) error {
	curves, err := m.store.ListCurvesByMotor(tx, motorID)
	if err != nil {
		return err
	}
	best := PreferredCurve(curves)
	if best == nil {
		return nil
	}
	return m.store.UpdateMotorDerived(tx, motorID,
		best.TotalImpulse, best.AvgThrust, best.MaxThrust, best.BurnTime)
}
