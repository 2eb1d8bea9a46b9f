package curve

import "fmt"

// Metrics holds the performance figures derived from a thrust curve
type Metrics struct {
	TotalImpulse float64 // newton-seconds
	AvgThrust    float64 // newtons
	MaxThrust    float64 // newtons
	BurnTime     float64 // seconds
}

// ComputeMetrics derives impulse, average thrust, peak thrust, and burn time
// from a validated sample sequence. The curve is integrated with the
// trapezoidal rule over consecutive sample pairs, starting from the implicit
// (0,0) origin, accumulating strictly left to right so identical input
// always produces bit-identical output.
func ComputeMetrics(samples []Sample) (Metrics, error) {
	if len(samples) == 0 {
		return Metrics{}, ErrZeroBurnTime
	}

	burnTime := samples[len(samples)-1].Time
	if burnTime <= 0 {
		return Metrics{}, fmt.Errorf("burn time %g: %w", burnTime, ErrZeroBurnTime)
	}

	var impulse, maxThrust float64
	prev := Sample{} // implicit origin
	for _, s := range samples {
		impulse += (s.Force + prev.Force) / 2 * (s.Time - prev.Time)
		if s.Force > maxThrust {
			maxThrust = s.Force
		}
		prev = s
	}

	return Metrics{
		TotalImpulse: impulse,
		AvgThrust:    impulse / burnTime,
		MaxThrust:    maxThrust,
		BurnTime:     burnTime,
	}, nil
}
