package journal

import "time"

// Sample is one trace point.
type Sample struct {
	At     time.Duration
	Target float64 // joint spring target, degrees
	Angle  float64 // measured hinge angle, degrees
}

// Trace is the angle history of one gate.
type Trace struct {
	Gate    string
	Samples []Sample
}

// Len returns number of samples.
func (t Trace) Len() int { return len(t.Samples) }

// Final returns the last sample, zero if empty.
func (t Trace) Final() Sample {
	if len(t.Samples) == 0 {
		return Sample{}
	}
	return t.Samples[len(t.Samples)-1]
}
