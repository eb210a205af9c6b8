package timing

// Snapshot is the serializable form of a Recorder's state, consumed by the
// persist package.
type Snapshot struct {
	Timings map[string][]Attempt `yaml:"timings"`
}

// Snapshot copies the recorder's full attempt history.
func (r *Recorder) Snapshot() Snapshot {
	timings := make(map[string][]Attempt, len(r.timings))
	for k := range r.timings {
		timings[k] = r.Attempts(k)
	}
	return Snapshot{Timings: timings}
}

// Restore replaces the recorder's state with s. Keys with no attempts are
// dropped.
func (r *Recorder) Restore(s Snapshot) {
	r.timings = make(map[string][]Attempt, len(s.Timings))
	for k, seq := range s.Timings {
		if len(seq) == 0 {
			continue
		}
		attempts := make([]Attempt, len(seq))
		copy(attempts, seq)
		r.timings[k] = attempts
	}
}
