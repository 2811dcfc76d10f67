package gesture

import "math"

// MaxSteps caps Steps so the result always fits in an int32.
const MaxSteps = math.MaxInt32

// StepConfig parameterizes the distance-to-steps scaling law
// steps(d) = floor(base * growthRate^(|d| / threshold)).
type StepConfig struct {
	Base       float64
	GrowthRate float64
	Threshold  float64
}

// DefaultStepConfig returns base 1, growth rate 1.15, threshold 50.
func DefaultStepConfig() StepConfig {
	return StepConfig{
		Base:       1,
		GrowthRate: 1.15,
		Threshold:  50,
	}
}

// Steps converts a drag distance into a discrete step count.
// The result is symmetric in sign and non-decreasing in |distance|.
func (c StepConfig) Steps(distance float64) int {
	d := math.Abs(distance)
	if math.IsNaN(d) {
		d = 0
	}
	if c.Threshold <= 0 {
		return 0
	}

	v := math.Floor(c.Base * math.Pow(c.GrowthRate, d/c.Threshold))
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= MaxSteps:
		return MaxSteps
	}
	return int(v)
}

// Steps applies the default scaling law.
func Steps(distance float64) int {
	return DefaultStepConfig().Steps(distance)
}
