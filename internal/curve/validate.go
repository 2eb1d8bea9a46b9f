package curve

import "fmt"

// validator accumulates samples for one entry and enforces the sequence
// invariants as each sample arrives:
//   - times strictly increase, measured from the implicit (0,0) origin
//   - zero force appears only on the final sample
//   - an explicit leading (0,0) is tolerated and stripped
type validator struct {
	samples []Sample
	sawZero bool
}

// add appends one sample, returning a validation error if the sample
// violates an invariant given everything seen so far.
func (v *validator) add(t, f float64) error {
	if len(v.samples) == 0 {
		// Common authoring mistake: an explicit origin point. Strip it.
		if t == 0 && f == 0 {
			return nil
		}
		if t <= 0 {
			return fmt.Errorf("first sample at t=%g: %w", t, ErrNonMonotonicTime)
		}
	} else {
		prev := v.samples[len(v.samples)-1]
		if v.sawZero {
			// A zero-force sample was not the last one after all.
			return fmt.Errorf("zero thrust at t=%g followed by more data: %w", prev.Time, ErrPrematureZeroThrust)
		}
		if t <= prev.Time {
			return fmt.Errorf("t=%g after t=%g: %w", t, prev.Time, ErrNonMonotonicTime)
		}
	}

	if f == 0 {
		v.sawZero = true
	}
	v.samples = append(v.samples, Sample{Time: t, Force: f})
	return nil
}

// finalize closes the entry and returns the validated sample sequence.
func (v *validator) finalize() ([]Sample, error) {
	if len(v.samples) == 0 {
		return nil, ErrZeroBurnTime
	}
	last := v.samples[len(v.samples)-1]
	if last.Force != 0 {
		return nil, fmt.Errorf("entry ends at t=%g with %gN: %w", last.Time, last.Force, ErrMissingTerminalZero)
	}
	return v.samples, nil
}
